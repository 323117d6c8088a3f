package listingwizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/tui/theme"
)

// CompletionStep is the closing screen after a successful publish. It shows
// where the listing landed and waits for the Done button.
type CompletionStep struct {
	location string
	labels   locale.Labels
	width    int
	height   int
}

// NewCompletionStep creates the completion screen for a published listing.
func NewCompletionStep(location string, labels locale.Labels) *CompletionStep {
	return &CompletionStep{
		location: location,
		labels:   labels,
	}
}

// Init initializes the completion step.
func (s *CompletionStep) Init() tea.Cmd {
	return nil
}

// Update ignores everything; the wizard owns the Done button.
func (s *CompletionStep) Update(msg tea.Msg) tea.Cmd {
	return nil
}

// View renders the completion step.
func (s *CompletionStep) View() string {
	t := theme.Current()

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Success)).
		Bold(true)
	locationStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Primary))
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))

	lines := []string{
		titleStyle.Render("✓ " + s.labels.Get("completion.title")),
		"",
		mutedStyle.Render("Your listing is live at:"),
		"    " + locationStyle.Render(s.location),
		"",
		mutedStyle.Render("The draft has been cleared."),
	}

	return strings.Join(lines, "\n")
}

// SetSize updates the size of the completion step.
func (s *CompletionStep) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus is a no-op: there are no inputs here.
func (s *CompletionStep) Focus() {}

// FocusLast is a no-op for the same reason as Focus.
func (s *CompletionStep) FocusLast() {}

// Blur is a no-op.
func (s *CompletionStep) Blur() {}

// Submit closes the wizard.
func (s *CompletionStep) Submit() tea.Cmd {
	return tea.Quit
}
