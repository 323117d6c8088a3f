package widget

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/tui/theme"
)

// StepProgress renders a segmented progress indicator for an n-step flow.
// Completed and current segments fade from the secondary to the primary
// accent; remaining segments stay muted.
func StepProgress(current, total int) string {
	if total <= 0 {
		return ""
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	t := theme.Current()
	var segments []string
	for i := 1; i <= total; i++ {
		var pos float64
		if total > 1 {
			pos = float64(i-1) / float64(total-1)
		}
		color := theme.InterpolateColor(t.Secondary, t.Primary, pos)

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
		seg := "○"
		if i < current {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			seg = "●"
		} else if i == current {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
			seg = "◉"
		}
		segments = append(segments, style.Render(seg))
	}
	return strings.Join(segments, "─")
}
