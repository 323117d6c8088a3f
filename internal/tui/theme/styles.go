package theme

import "charm.land/lipgloss/v2"

// Styles contains pre-built lipgloss styles shared across the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	Label       lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
}
