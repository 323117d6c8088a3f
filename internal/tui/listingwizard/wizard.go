// Package listingwizard is the five-step add-service TUI. It renders the
// steps, routes input, and drives the wizard controller; all listing state
// lives in the controller, the panels only hold live input widgets.
package listingwizard

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/khidmahq/khidma/internal/config"
	"github.com/khidmahq/khidma/internal/identity"
	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/logger"
	"github.com/khidmahq/khidma/internal/state"
	"github.com/khidmahq/khidma/internal/tui/theme"
	"github.com/khidmahq/khidma/internal/tui/widget"
	"github.com/khidmahq/khidma/internal/wizard"
)

// ProgramSender is an interface for sending messages to the Bubbletea program.
// This allows for easier testing by mocking the Send method.
type ProgramSender interface {
	Send(tea.Msg)
}

// WizardModel is the main BubbleTea model for the listing wizard. The step
// index lives in the controller; the model mirrors it into step components.
type WizardModel struct {
	ctrl      *wizard.Controller
	autosave  *wizard.AutoSave
	labels    locale.Labels
	seller    string
	cancelled bool
	published bool
	width     int
	height    int

	// Step components
	basicsStep      *BasicsStep
	descriptionStep *DescriptionStep
	pricingStep     *PricingStep
	portfolioStep   *PortfolioStep
	reviewStep      *ReviewStep
	completionStep  *CompletionStep

	// Button bar with focus tracking
	buttonBar     *widget.ButtonBar
	buttonFocused bool

	// Cached button bars per step (prevents focus reset on re-render)
	stepButtonBars map[int]*widget.ButtonBar

	// Draft save feedback for the footer stamp
	lastSaved  time.Time
	saveFailed bool

	// Persisted UI preferences
	uiState *state.UIState
	dataDir string

	// Program reference for sending messages from callbacks
	program ProgramSender
}

// NewWizardModel creates a wizard model over an initialized controller.
func NewWizardModel(ctrl *wizard.Controller, labels locale.Labels) *WizardModel {
	return &WizardModel{
		ctrl:           ctrl,
		labels:         labels,
		stepButtonBars: make(map[int]*widget.ButtonBar),
		uiState:        state.DefaultUIState(),
	}
}

// Run is the entry point for the listing wizard. It restores any saved draft,
// starts the auto-save task, runs the program, and saves the draft one last
// time on the way out unless the listing was published.
func Run(cfg *config.Config, ctrl *wizard.Controller) error {
	ctx := context.Background()
	ctrl.Initialize(ctx)

	m := NewWizardModel(ctrl, locale.For(cfg.Locale))
	m.seller = identity.SellerName(cfg.SellerName)
	m.uiState = state.Load(cfg.DataDir)
	m.dataDir = cfg.DataDir

	p := tea.NewProgram(m)
	m.program = p

	interval := time.Duration(cfg.AutosaveSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	m.autosave = wizard.NewAutoSave(interval, func() {
		// All aggregate writes happen on the update loop; the task only
		// asks for a save.
		p.Send(AutoSaveMsg{})
	})
	m.autosave.Start()
	defer m.autosave.Stop()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("listing wizard failed: %w", err)
	}

	wm, ok := finalModel.(*WizardModel)
	if !ok {
		return fmt.Errorf("unexpected model type")
	}

	if !wm.published {
		// Whatever was on screen when the user left is worth keeping.
		ctrl.SaveDraft(ctx)
		if wm.cancelled {
			logger.Info("Listing wizard interrupted, draft kept")
		} else {
			logger.Info("Listing wizard closed, draft kept")
		}
	}

	return nil
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return m.initCurrentStep()
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		// Handle button-focused keyboard input
		if m.buttonFocused && m.buttonBar != nil {
			switch msg.String() {
			case "tab", "right":
				if !m.buttonBar.FocusNext() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContentFirst()
				}
				return m, nil
			case "shift+tab", "left":
				if !m.buttonBar.FocusPrev() {
					m.buttonFocused = false
					m.buttonBar.Blur()
					m.focusStepContentLast()
				}
				return m, nil
			case "enter", " ":
				return m.activateButton(m.buttonBar.FocusedButton())
			}
		}

		// Global keybindings
		switch msg.String() {
		case "ctrl+c":
			m.syncActivePanel()
			m.cancelled = true
			return m, tea.Quit
		case "ctrl+s":
			m.syncActivePanel()
			return m, m.saveCmd()
		case "ctrl+h":
			m.uiState.Hints.Visible = !m.uiState.Hints.Visible
			if m.dataDir != "" {
				if err := state.Save(m.dataDir, m.uiState); err != nil {
					logger.Warn("Failed to persist UI state: %v", err)
				}
			}
			return m, nil
		case "esc":
			if m.published {
				return m, tea.Quit
			}
			if m.ctrl.Step() == listing.MinStep {
				// Leaving from the first step closes the wizard; the draft
				// is saved on the way out.
				m.syncActivePanel()
				return m, tea.Quit
			}
			return m.goBack()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateCurrentStepSize()
		return m, nil

	case BasicsSubmittedMsg:
		m.ctrl.SetBasicInfo(msg.Info)
		return m, m.advance()

	case DescriptionSubmittedMsg:
		m.ctrl.SetDescription(msg.Description)
		return m, m.advance()

	case PricingSubmittedMsg:
		m.ctrl.SetPricing(msg.Pricing)
		return m, m.advance()

	case PortfolioSubmittedMsg:
		m.ctrl.SetPortfolio(msg.Portfolio)
		return m, m.advance()

	case AutoSaveMsg:
		if m.published {
			// A tick that was already in flight when the draft was
			// cleared must not resurrect it.
			return m, nil
		}
		m.syncActivePanel()
		return m, m.saveCmd()

	case DraftSavedMsg:
		if msg.OK {
			m.lastSaved = msg.When
			m.saveFailed = false
		} else {
			m.saveFailed = true
		}
		return m, nil

	case PublishRequestedMsg:
		if m.reviewStep == nil {
			return m, nil
		}
		m.syncActivePanel()
		ctrl := m.ctrl
		return m, func() tea.Msg {
			return PublishResultMsg{Result: ctrl.Publish(context.Background())}
		}

	case PublishResultMsg:
		return m.handlePublishResult(msg.Result)

	case DescriptionEditedMsg:
		// Editor rework lands in the review step, then in the aggregate so
		// auto-save and a later retreat both see it.
		if m.reviewStep != nil {
			cmd := m.reviewStep.Update(msg)
			m.ctrl.SetDescription(m.reviewStep.Description())
			return m, cmd
		}
		return m, nil

	case TabExitForwardMsg:
		// Tab from last input - move to buttons
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusFirst()
		return m, nil

	case TabExitBackwardMsg:
		// Shift+Tab from first input - move to buttons from the end
		m.buttonFocused = true
		m.blurStepContent()
		m.ensureButtonBar()
		m.buttonBar.FocusLast()
		return m, nil
	}

	// Forward messages to current step
	return m.updateCurrentStep(msg)
}

// handlePublishResult routes the three publish outcomes: consent missing,
// collaborator failure (draft kept), and success.
func (m *WizardModel) handlePublishResult(r wizard.PublishResult) (tea.Model, tea.Cmd) {
	if !r.Ready {
		if m.reviewStep != nil {
			m.reviewStep.SetPublishError("both confirmations are required")
		}
		return m, nil
	}
	if r.Err != nil {
		if m.reviewStep != nil {
			m.reviewStep.SetPublishError(r.Err.Error())
		}
		return m, nil
	}

	m.published = true
	m.completionStep = NewCompletionStep(r.Location, m.labels)
	m.buttonFocused = true
	m.buttonBar = widget.NewButtonBar([]widget.Button{
		{ID: widget.ButtonDone, Label: m.labels.Get("button.done"), State: widget.ButtonNormal},
	})
	m.buttonBar.FocusFirst()
	m.updateCurrentStepSize()
	if m.autosave == nil {
		return m, nil
	}
	// The save task may be parked in Program.Send waiting on this very
	// loop. Stop waits for the task to exit, so it has to run from a
	// command, off the loop, while the loop keeps draining messages.
	autosave := m.autosave
	return m, func() tea.Msg {
		autosave.Stop()
		return nil
	}
}

// advance asks the controller to move forward and rebuilds the step panel.
// The controller re-checks the gate, so a stale Next press is a no-op.
func (m *WizardModel) advance() tea.Cmd {
	if !m.ctrl.Advance() {
		return nil
	}
	m.buttonFocused = false
	m.buttonBar = nil
	initCmd := m.initCurrentStep()
	// A completed step is a natural save point.
	return tea.Batch(initCmd, m.saveCmd())
}

// goBack moves to the previous step. Always allowed; a half-filled step keeps
// its slice in the aggregate.
func (m *WizardModel) goBack() (tea.Model, tea.Cmd) {
	m.syncActivePanel()
	m.ctrl.Retreat()
	m.buttonFocused = false
	m.buttonBar = nil
	return m, m.initCurrentStep()
}

// saveCmd persists the draft off the update loop and reports back.
func (m *WizardModel) saveCmd() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ok := ctrl.SaveDraft(context.Background())
		return DraftSavedMsg{When: time.Now(), OK: ok}
	}
}

// syncActivePanel pushes the active panel's live values into the controller
// so a save or publish captures edits that were never submitted.
func (m *WizardModel) syncActivePanel() {
	if m.published {
		return
	}
	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			m.ctrl.SetBasicInfo(m.basicsStep.Value())
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			m.ctrl.SetDescription(m.descriptionStep.Value())
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			m.ctrl.SetPricing(m.pricingStep.Value())
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			m.ctrl.SetPortfolio(m.portfolioStep.Value())
		}
	case listing.StepReview:
		if m.reviewStep != nil {
			m.ctrl.SetDescription(m.reviewStep.Description())
			m.ctrl.SetConsents(m.reviewStep.Consents())
		}
	}
}

// initCurrentStep builds the active step's panel from a fresh snapshot.
func (m *WizardModel) initCurrentStep() tea.Cmd {
	snapshot := m.ctrl.Snapshot()

	var cmd tea.Cmd
	switch m.ctrl.Step() {
	case listing.StepBasics:
		m.basicsStep = NewBasicsStep(snapshot.Basic, m.labels)
		cmd = m.basicsStep.Init()
	case listing.StepDescription:
		m.descriptionStep = NewDescriptionStep(snapshot.Description, m.labels)
		cmd = m.descriptionStep.Init()
	case listing.StepPricing:
		m.pricingStep = NewPricingStep(snapshot.Pricing, m.labels)
		cmd = m.pricingStep.Init()
	case listing.StepPortfolio:
		m.portfolioStep = NewPortfolioStep(snapshot.Portfolio, m.labels)
		cmd = m.portfolioStep.Init()
	case listing.StepReview:
		m.reviewStep = NewReviewStep(snapshot, m.labels)
		cmd = m.reviewStep.Init()
	}
	m.updateCurrentStepSize()
	return cmd
}

// updateCurrentStep forwards a message to the current step.
func (m *WizardModel) updateCurrentStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.published {
		if m.completionStep != nil {
			cmd = m.completionStep.Update(msg)
		}
		return m, cmd
	}

	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			cmd = m.basicsStep.Update(msg)
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			cmd = m.descriptionStep.Update(msg)
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			cmd = m.pricingStep.Update(msg)
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			cmd = m.portfolioStep.Update(msg)
		}
	case listing.StepReview:
		if m.reviewStep != nil {
			cmd = m.reviewStep.Update(msg)
		}
	}

	return m, cmd
}

// getModalContentSize returns the internal content dimensions for the modal.
func (m *WizardModel) getModalContentSize() (width, height int) {
	width = modalContentWidth

	height = m.height - 4
	if height < 20 {
		height = 20
	}
	if height > 40 {
		height = 40
	}
	// Subtract modal chrome: padding, border, header, footer.
	height -= 12
	if height < 10 {
		height = 10
	}
	return width, height
}

// updateCurrentStepSize updates the size of the current step.
func (m *WizardModel) updateCurrentStepSize() {
	contentWidth, contentHeight := m.getModalContentSize()

	if m.published {
		if m.completionStep != nil {
			m.completionStep.SetSize(contentWidth, contentHeight)
		}
		return
	}

	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			m.basicsStep.SetSize(contentWidth, contentHeight)
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			m.descriptionStep.SetSize(contentWidth, contentHeight)
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			m.pricingStep.SetSize(contentWidth, contentHeight)
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			m.portfolioStep.SetSize(contentWidth, contentHeight)
		}
	case listing.StepReview:
		if m.reviewStep != nil {
			m.reviewStep.SetSize(contentWidth, contentHeight)
		}
	}
}

// stepTitleKey maps a step number to its locale label key.
func stepTitleKey(step int) string {
	switch step {
	case listing.StepBasics:
		return "step.basics"
	case listing.StepDescription:
		return "step.description"
	case listing.StepPricing:
		return "step.pricing"
	case listing.StepPortfolio:
		return "step.portfolio"
	default:
		return "step.review"
	}
}

// ensureButtonBar creates the button bar if needed, using cached instances
// per step, and refreshes the gate-driven enabled states.
func (m *WizardModel) ensureButtonBar() {
	if m.published {
		return
	}

	step := m.ctrl.Step()
	bar, ok := m.stepButtonBars[step]
	if !ok {
		if step == listing.StepReview {
			bar = widget.NewButtonBar([]widget.Button{
				{ID: widget.ButtonBack, Label: "← " + m.labels.Get("button.back"), State: widget.ButtonNormal},
				{ID: widget.ButtonPublish, Label: m.labels.Get("button.publish"), State: widget.ButtonNormal},
			})
		} else {
			bar = widget.NewButtonBar(widget.BackNextButtons(
				m.labels.Get("button.back"), step > listing.MinStep,
				m.labels.Get("button.next"), true,
			))
		}
		bar.SetWidth(modalContentWidth)
		m.stepButtonBars[step] = bar
	}

	// The Next gate can flip as the user types; reflect it every render.
	bar.SetEnabled(widget.ButtonBack, step > listing.MinStep)
	bar.SetEnabled(widget.ButtonNext, m.ctrl.CurrentStepValid() || step == listing.StepPortfolio)

	m.buttonBar = bar
}

// activateButton handles button activation.
func (m *WizardModel) activateButton(btnID widget.ButtonID) (tea.Model, tea.Cmd) {
	if m.buttonBar != nil && !m.buttonBar.Enabled(btnID) {
		return m, nil
	}

	switch btnID {
	case widget.ButtonBack:
		return m.goBack()
	case widget.ButtonNext:
		return m, m.submitCurrentStep()
	case widget.ButtonPublish:
		if m.reviewStep != nil {
			return m, m.reviewStep.Submit()
		}
	case widget.ButtonDone:
		return m, tea.Quit
	}
	return m, nil
}

// submitCurrentStep runs the active panel's validation and emits its message.
func (m *WizardModel) submitCurrentStep() tea.Cmd {
	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			return m.basicsStep.Submit()
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			return m.descriptionStep.Submit()
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			return m.pricingStep.Submit()
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			return m.portfolioStep.Submit()
		}
	}
	return nil
}

// focusStepContentFirst focuses the first element in step content.
func (m *WizardModel) focusStepContentFirst() {
	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			m.basicsStep.Focus()
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			m.descriptionStep.Focus()
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			m.pricingStep.Focus()
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			m.portfolioStep.Focus()
		}
	case listing.StepReview:
		if m.reviewStep != nil {
			m.reviewStep.Focus()
		}
	}
}

// focusStepContentLast focuses the last element in step content.
func (m *WizardModel) focusStepContentLast() {
	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			m.basicsStep.FocusLast()
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			m.descriptionStep.FocusLast()
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			m.pricingStep.FocusLast()
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			m.portfolioStep.FocusLast()
		}
	case listing.StepReview:
		if m.reviewStep != nil {
			m.reviewStep.FocusLast()
		}
	}
}

// blurStepContent blurs all step content.
func (m *WizardModel) blurStepContent() {
	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			m.basicsStep.Blur()
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			m.descriptionStep.Blur()
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			m.pricingStep.Blur()
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			m.portfolioStep.Blur()
		}
	case listing.StepReview:
		if m.reviewStep != nil {
			m.reviewStep.Blur()
		}
	}
}

// View renders the wizard.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 || m.height == 0 {
		// Not ready to render
		view.Content = lipgloss.NewLayer("")
		return view
	}

	content := m.renderCurrentStep()

	centered := lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(centered).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderCurrentStep renders the modal for the current step.
func (m *WizardModel) renderCurrentStep() string {
	t := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Primary)).
		MarginBottom(1)
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))

	var stepTitle, stepContent, progress string
	if m.published {
		stepTitle = m.labels.Get("wizard.title")
		if m.completionStep != nil {
			stepContent = m.completionStep.View()
		}
	} else {
		step := m.ctrl.Step()
		stepTitle = fmt.Sprintf("%s · %d/%d · %s",
			m.labels.Get("wizard.title"), step, listing.MaxStep,
			m.labels.Get(stepTitleKey(step)))
		progress = widget.StepProgress(step, listing.MaxStep)
		stepContent = m.renderStepContent()
	}

	parts := []string{titleStyle.Render(stepTitle)}
	if m.seller != "" {
		parts = append(parts, mutedStyle.Render(m.seller))
	}
	if progress != "" {
		parts = append(parts, progress, "")
	}

	if banner := m.renderBanner(); banner != "" {
		parts = append(parts, banner, "")
	}

	parts = append(parts, stepContent, "")

	m.ensureButtonBar()
	if m.buttonBar != nil {
		parts = append(parts, m.buttonBar.Render(), "")
	}

	parts = append(parts, mutedStyle.Render(m.footerLine()))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	modalStyle := lipgloss.NewStyle().
		Width(modalWidth).
		Padding(modalPadding).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.BorderDefault))

	// The review step scrolls, so pin the modal height there.
	if !m.published && m.ctrl.Step() == listing.StepReview {
		modalHeight := m.height - 4
		if modalHeight < 20 {
			modalHeight = 20
		}
		if modalHeight > 40 {
			modalHeight = 40
		}
		modalStyle = modalStyle.Height(modalHeight)
	}

	return modalStyle.Render(content)
}

// renderStepContent renders the active panel's body.
func (m *WizardModel) renderStepContent() string {
	switch m.ctrl.Step() {
	case listing.StepBasics:
		if m.basicsStep != nil {
			return m.basicsStep.View()
		}
	case listing.StepDescription:
		if m.descriptionStep != nil {
			return m.descriptionStep.View()
		}
	case listing.StepPricing:
		if m.pricingStep != nil {
			return m.pricingStep.View()
		}
	case listing.StepPortfolio:
		if m.portfolioStep != nil {
			return m.portfolioStep.View()
		}
	case listing.StepReview:
		if m.reviewStep != nil {
			return m.reviewStep.View()
		}
	}
	return ""
}

// renderBanner shows the restored-draft notice on the first step.
func (m *WizardModel) renderBanner() string {
	if m.published || !m.ctrl.Restored() || m.ctrl.Step() != listing.MinStep {
		return ""
	}
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Info)).
		Render("↻ " + m.labels.Get("banner.restored"))
}

// footerLine renders the save stamp and global key hints. The hints half can
// be dismissed with ctrl+h, which is remembered across sessions.
func (m *WizardModel) footerLine() string {
	if m.published {
		return "enter to close"
	}

	var stamp string
	if m.saveFailed {
		stamp = "⚠ draft save failed, retrying on next auto-save"
	} else if !m.lastSaved.IsZero() {
		stamp = m.labels.Get("banner.saved") + " " + m.lastSaved.Format("15:04:05")
	}

	if !m.uiState.Hints.Visible {
		return stamp
	}

	hints := "ctrl+s save · ctrl+h hints · esc back · ctrl+c quit"
	if stamp == "" {
		return hints
	}
	return stamp + " · " + hints
}
