package listingwizard

import (
	"os"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/editor"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/logger"
	"github.com/khidmahq/khidma/internal/publish"
	"github.com/khidmahq/khidma/internal/tui/theme"
	"github.com/khidmahq/khidma/internal/tui/widget"
)

// ReviewStep shows the rendered listing exactly as it will be published,
// plus the two consent checkboxes that gate publishing. The description can
// be reworked in $EDITOR from here; everything else requires going back to
// its step.
type ReviewStep struct {
	viewport viewport.Model
	snapshot *listing.Listing

	termsAgreed       bool
	originalityAgreed bool

	labels     locale.Labels
	width      int
	height     int
	tmpFile    string // temp file for the editor round trip
	publishErr string
}

// NewReviewStep creates a review step over a snapshot of the listing.
func NewReviewStep(snapshot *listing.Listing, labels locale.Labels) *ReviewStep {
	vp := viewport.New(
		viewport.WithWidth(60),
		viewport.WithHeight(10),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	vp.SetContent(renderMarkdown(publish.Markdown(snapshot), 60))

	return &ReviewStep{
		viewport: vp,
		snapshot: snapshot,
		labels:   labels,
		width:    60,
		height:   20,
	}
}

// Init initializes the review step.
func (s *ReviewStep) Init() tea.Cmd {
	return nil
}

// Consents returns the state of the two checkboxes.
func (s *ReviewStep) Consents() (terms, originality bool) {
	return s.termsAgreed, s.originalityAgreed
}

// Description returns the description slice, including editor rework.
func (s *ReviewStep) Description() listing.Description {
	return s.snapshot.Description
}

// SetPublishError shows a publish failure banner. The draft is untouched;
// the user can fix the cause and try again.
func (s *ReviewStep) SetPublishError(message string) {
	s.publishErr = message
}

// SetSize updates the dimensions for the review step.
func (s *ReviewStep) SetSize(width, height int) {
	s.width = width
	s.height = height

	s.viewport.SetWidth(width)

	// Reserve space for the consent block and hint bar.
	viewportHeight := height - 6
	if viewportHeight < 5 {
		viewportHeight = 5
	}
	s.viewport.SetHeight(viewportHeight)

	s.refresh()
}

// refresh re-renders the markdown summary into the viewport.
func (s *ReviewStep) refresh() {
	s.viewport.SetContent(renderMarkdown(publish.Markdown(s.snapshot), s.width))
}

// Update handles messages for the review step.
func (s *ReviewStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "1":
			s.termsAgreed = !s.termsAgreed
			s.publishErr = ""
			return nil
		case "2":
			s.originalityAgreed = !s.originalityAgreed
			s.publishErr = ""
			return nil
		case "e":
			if os.Getenv("EDITOR") != "" {
				return s.openEditor()
			}
		}

	case DescriptionEditedMsg:
		old := s.snapshot.Description.Text
		if diff := udiff.Unified("before", "after", old, msg.Text); diff != "" {
			logger.Debug("Description edited in external editor:\n%s", diff)
		}
		s.snapshot.Description.Text = msg.Text
		s.refresh()
		s.viewport.GotoTop()
		if s.tmpFile != "" {
			_ = os.Remove(s.tmpFile)
			s.tmpFile = ""
		}
		return nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

// openEditor launches $EDITOR with the description text.
func (s *ReviewStep) openEditor() tea.Cmd {
	tmpfile, err := os.CreateTemp("", "khidma_description_*.md")
	if err != nil {
		return nil // editor unavailable, stay in the TUI
	}

	if _, err := tmpfile.WriteString(s.snapshot.Description.Text); err != nil {
		_ = tmpfile.Close()
		_ = os.Remove(tmpfile.Name())
		return nil
	}
	_ = tmpfile.Close()

	s.tmpFile = tmpfile.Name()

	cmd, err := editor.Command("khidma", tmpfile.Name())
	if err != nil {
		_ = os.Remove(tmpfile.Name())
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return nil
		}

		content, err := os.ReadFile(tmpfile.Name())
		if err != nil {
			return nil
		}

		return DescriptionEditedMsg{Text: string(content)}
	})
}

// View renders the review step.
func (s *ReviewStep) View() string {
	t := theme.Current()

	checkbox := func(checked bool, label string) string {
		box := "[ ]"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
		if checked {
			box = "[x]"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
		}
		return style.Render(box + " " + label)
	}

	parts := []string{
		s.viewport.View(),
		"",
		checkbox(s.termsAgreed, "1 "+s.labels.Get("consent.terms")),
		checkbox(s.originalityAgreed, "2 "+s.labels.Get("consent.originality")),
	}

	if s.publishErr != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true)
		parts = append(parts, "", errStyle.Render("✗ "+s.labels.Get("banner.publish_err")+" ("+s.publishErr+")"))
	}

	hints := []string{"↑↓", "scroll", "1/2", "toggle consent"}
	if os.Getenv("EDITOR") != "" {
		hints = append(hints, "e", "edit description")
	}
	hints = append(hints, "tab", "buttons")
	parts = append(parts, "", widget.HintBar(hints...))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Focus is a no-op: the viewport scrolls without per-field focus.
func (s *ReviewStep) Focus() {}

// FocusLast is a no-op for the same reason as Focus.
func (s *ReviewStep) FocusLast() {}

// Blur is a no-op: there is nothing to blur.
func (s *ReviewStep) Blur() {}

// Submit requests publishing. Consent checking happens in the controller,
// which owns the gate; the step only reports what was ticked.
func (s *ReviewStep) Submit() tea.Cmd {
	return func() tea.Msg {
		return PublishRequestedMsg{}
	}
}
