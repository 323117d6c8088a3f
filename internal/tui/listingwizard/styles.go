package listingwizard

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/tui/theme"
)

// Modal layout constants
const (
	modalWidth        = 74                                                       // Total modal width including border
	modalPadding      = 2                                                        // Horizontal padding on each side
	modalBorderWidth  = 1                                                        // Border width on each side
	modalContentWidth = modalWidth - (modalPadding * 2) - (modalBorderWidth * 2) // 68
)

// inputStyles returns the shared textinput styling for wizard fields.
func inputStyles() textinput.Styles {
	t := theme.Current()
	return textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderFocused)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}
}

// fieldLabel renders a form field label, marking the focused one.
func fieldLabel(text string, focused bool) string {
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle))
	marker := "  "
	if focused {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.BorderFocused)).Bold(true)
		marker = "> "
	}
	return style.Render(marker + text)
}

// errorLine renders a validation error, or nothing when err is empty.
func errorLine(err string) string {
	if err == "" {
		return ""
	}
	t := theme.Current()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Error)).
		Bold(true).
		Render("✗ " + err)
}

// renderMarkdown renders markdown content with glamour.
// Falls back to plain text if rendering fails.
func renderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSuffix(rendered, "\n")
}
