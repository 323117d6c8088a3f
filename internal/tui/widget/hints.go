package widget

import (
	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/tui/theme"
)

// HintBar renders a hint bar with the given key-description pairs.
// Example: HintBar("↑↓", "navigate", "enter", "select", "esc", "back")
// Returns: "↑↓ navigate • enter select • esc back"
func HintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	t := theme.Current()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgSubtle)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted))
	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgSurface1))

	var result string
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result += " " + sepStyle.Render("•") + " "
		}
		result += keyStyle.Render(pairs[i]) + " " + descStyle.Render(pairs[i+1])
	}

	return result
}
