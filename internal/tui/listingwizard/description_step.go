package listingwizard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/tui/theme"
	"github.com/khidmahq/khidma/internal/tui/widget"
)

// Focus positions within the description step.
const (
	descFocusText = iota
	descFocusFeature
	descFocusInstructions
	descFocusCount
)

// DescriptionStep collects the long description, the feature list, and the
// buyer instructions. Features are added one per enter press and removed
// with backspace on an empty feature input.
type DescriptionStep struct {
	textArea          textarea.Model
	featureInput      textinput.Model
	instructionsInput textinput.Model

	features   []string
	focusIndex int
	labels     locale.Labels
	width      int
	height     int
	err        string
}

// NewDescriptionStep creates the description step pre-filled from the slice.
func NewDescriptionStep(d listing.Description, labels locale.Labels) *DescriptionStep {
	ta := textarea.New()
	ta.Placeholder = "Describe what you deliver, your process, and why buyers should pick you..."
	ta.CharLimit = 5000
	ta.SetHeight(6)
	ta.SetWidth(60)
	ta.SetValue(d.Text)

	styles := inputStyles()

	feature := textinput.New()
	feature.Placeholder = "e.g., 'Source files included' (enter to add)"
	feature.CharLimit = 80
	feature.Prompt = ""
	feature.SetStyles(styles)

	instructions := textinput.New()
	instructions.Placeholder = "What should the buyer send you to get started?"
	instructions.CharLimit = 500
	instructions.Prompt = ""
	instructions.SetStyles(styles)
	instructions.SetValue(d.BuyerInstructions)

	return &DescriptionStep{
		textArea:          ta,
		featureInput:      feature,
		instructionsInput: instructions,
		features:          append([]string(nil), d.Features...),
		labels:            labels,
	}
}

// Init initializes the description step.
func (s *DescriptionStep) Init() tea.Cmd {
	s.focusIndex = descFocusText
	return s.textArea.Focus()
}

// Value returns the slice as currently edited.
func (s *DescriptionStep) Value() listing.Description {
	return listing.Description{
		Text:              strings.TrimSpace(s.textArea.Value()),
		Features:          append([]string(nil), s.features...),
		BuyerInstructions: strings.TrimSpace(s.instructionsInput.Value()),
	}
}

// Update handles messages for the description step.
func (s *DescriptionStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "tab":
		if s.focusIndex == descFocusCount-1 {
			return func() tea.Msg { return TabExitForwardMsg{} }
		}
		s.setFocus(s.focusIndex + 1)
		return nil

	case "shift+tab":
		if s.focusIndex == 0 {
			return func() tea.Msg { return TabExitBackwardMsg{} }
		}
		s.setFocus(s.focusIndex - 1)
		return nil

	case "enter":
		if s.focusIndex == descFocusFeature {
			feature := strings.TrimSpace(s.featureInput.Value())
			if feature == "" {
				return nil
			}
			s.features = append(s.features, feature)
			s.featureInput.SetValue("")
			s.err = ""
			return nil
		}

	case "backspace":
		if s.focusIndex == descFocusFeature && s.featureInput.Value() == "" && len(s.features) > 0 {
			s.features = s.features[:len(s.features)-1]
			return nil
		}

	default:
		if s.err != "" {
			s.err = ""
		}
	}

	return s.updateFocusedInput(msg)
}

func (s *DescriptionStep) setFocus(idx int) {
	s.focusIndex = idx
	s.textArea.Blur()
	s.featureInput.Blur()
	s.instructionsInput.Blur()
	switch idx {
	case descFocusText:
		s.textArea.Focus()
	case descFocusFeature:
		s.featureInput.Focus()
	case descFocusInstructions:
		s.instructionsInput.Focus()
	}
}

func (s *DescriptionStep) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focusIndex {
	case descFocusText:
		s.textArea, cmd = s.textArea.Update(msg)
	case descFocusFeature:
		s.featureInput, cmd = s.featureInput.Update(msg)
	case descFocusInstructions:
		s.instructionsInput, cmd = s.instructionsInput.Update(msg)
	}
	return cmd
}

// View renders the description step content.
func (s *DescriptionStep) View() string {
	t := theme.Current()
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))

	count := utf8.RuneCountInString(strings.TrimSpace(s.textArea.Value()))
	counterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	if count >= listing.MinDescriptionRunes {
		counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
	}

	featureCounterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	if len(s.features) >= listing.MinFeatures {
		featureCounterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
	}

	var featureLines []string
	for _, f := range s.features {
		featureLines = append(featureLines, "    "+valueStyle.Render("• "+f))
	}

	rows := []string{
		fieldLabel(s.labels.Get("field.description"), s.focusIndex == descFocusText) +
			" " + counterStyle.Render(fmt.Sprintf("(%d/%d)", count, listing.MinDescriptionRunes)),
		"    " + s.textArea.View(),
		"",
		fieldLabel(s.labels.Get("field.features"), s.focusIndex == descFocusFeature) +
			" " + featureCounterStyle.Render(fmt.Sprintf("(%d/%d)", len(s.features), listing.MinFeatures)),
	}
	rows = append(rows, featureLines...)
	rows = append(rows,
		"    "+s.featureInput.View(),
		"",
		fieldLabel(s.labels.Get("field.instructions"), s.focusIndex == descFocusInstructions),
		"    "+s.instructionsInput.View(),
	)

	parts := []string{strings.Join(rows, "\n")}
	if e := errorLine(s.err); e != "" {
		parts = append(parts, "", e)
	}
	parts = append(parts, "", widget.HintBar(
		"tab", "next field",
		"enter", "add feature",
		"backspace", "remove last",
	))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the size of the description step.
func (s *DescriptionStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.textArea.SetWidth(width - 8)
	s.featureInput.SetWidth(width - 8)
	s.instructionsInput.SetWidth(width - 8)

	taHeight := height - 14
	if taHeight < 4 {
		taHeight = 4
	}
	if taHeight > 10 {
		taHeight = 10
	}
	s.textArea.SetHeight(taHeight)
}

// Focus focuses the first input.
func (s *DescriptionStep) Focus() {
	s.setFocus(descFocusText)
}

// FocusLast focuses the last input.
func (s *DescriptionStep) FocusLast() {
	s.setFocus(descFocusInstructions)
}

// Blur blurs all inputs.
func (s *DescriptionStep) Blur() {
	s.textArea.Blur()
	s.featureInput.Blur()
	s.instructionsInput.Blur()
}

// Submit validates the slice and emits DescriptionSubmittedMsg when it passes.
func (s *DescriptionStep) Submit() tea.Cmd {
	d := s.Value()
	if err := validateDescriptionSlice(d); err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return func() tea.Msg {
		return DescriptionSubmittedMsg{Description: d}
	}
}

// validateDescriptionSlice explains what the step gate still needs.
func validateDescriptionSlice(d listing.Description) error {
	if utf8.RuneCountInString(strings.TrimSpace(d.Text)) < listing.MinDescriptionRunes {
		return fmt.Errorf("description needs at least %d characters", listing.MinDescriptionRunes)
	}
	if len(d.Features) < listing.MinFeatures {
		return fmt.Errorf("list at least %d features", listing.MinFeatures)
	}
	return nil
}
