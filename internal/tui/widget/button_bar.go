// Package widget holds small reusable TUI pieces shared by the wizard steps.
package widget

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonID identifies a button's action.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
	ButtonPublish
	ButtonDone
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with focus tracking and consistent
// styling. Focus moves linearly; FocusNext/FocusPrev report false when focus
// runs off the end so the caller can hand it back to step content.
type ButtonBar struct {
	buttons []Button
	focused int // index of focused button, -1 when blurred
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// SetEnabled enables or disables the button with the given ID. Disabling a
// focused button keeps the focus so keyboard navigation stays predictable;
// activation is the caller's decision.
func (b *ButtonBar) SetEnabled(id ButtonID, enabled bool) {
	for i := range b.buttons {
		if b.buttons[i].ID != id {
			continue
		}
		if enabled && b.buttons[i].State == ButtonDisabled {
			b.buttons[i].State = ButtonNormal
		} else if !enabled && b.buttons[i].State != ButtonDisabled {
			b.buttons[i].State = ButtonDisabled
		}
	}
}

// Enabled reports whether the button with the given ID accepts activation.
func (b *ButtonBar) Enabled(id ButtonID) bool {
	for _, btn := range b.buttons {
		if btn.ID == id {
			return btn.State != ButtonDisabled
		}
	}
	return false
}

// FocusFirst moves focus to the first button.
func (b *ButtonBar) FocusFirst() {
	if len(b.buttons) > 0 {
		b.focused = 0
	}
}

// FocusLast moves focus to the last button.
func (b *ButtonBar) FocusLast() {
	if len(b.buttons) > 0 {
		b.focused = len(b.buttons) - 1
	}
}

// FocusNext moves focus forward. Returns false when focus falls off the end.
func (b *ButtonBar) FocusNext() bool {
	if b.focused < 0 || b.focused >= len(b.buttons)-1 {
		b.focused = -1
		return false
	}
	b.focused++
	return true
}

// FocusPrev moves focus backward. Returns false when focus falls off the front.
func (b *ButtonBar) FocusPrev() bool {
	if b.focused <= 0 {
		b.focused = -1
		return false
	}
	b.focused--
	return true
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

// IsFocused reports whether any button has focus.
func (b *ButtonBar) IsFocused() bool {
	return b.focused >= 0
}

// FocusedButton returns the ID of the focused button, or ButtonBack when
// nothing has focus.
func (b *ButtonBar) FocusedButton() ButtonID {
	if b.focused < 0 || b.focused >= len(b.buttons) {
		return ButtonBack
	}
	return b.buttons[b.focused].ID
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	t := theme.Current()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgBase)).
		Background(lipgloss.Color(t.BgSurface0)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	disabledStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgMuted)).
		Background(lipgloss.Color(t.BgMantle)).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	focusedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.BorderFocused)).
		Bold(true).
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	var renderedButtons []string
	for i, btn := range b.buttons {
		state := btn.State
		if i == b.focused && state != ButtonDisabled {
			state = ButtonFocused
		}
		var rendered string
		switch state {
		case ButtonDisabled:
			rendered = disabledStyle.Render(btn.Label)
		case ButtonFocused:
			rendered = focusedStyle.Render(btn.Label)
		default: // ButtonNormal
			rendered = normalStyle.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")

	// Center the button bar
	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, result)
}

// BackNextButtons creates the standard Back/Next button set.
// backEnabled: whether Back button is enabled
// nextEnabled: whether Next button is enabled (false if step invalid)
// nextLabel: label for the forward button (e.g., "Next", "Publish")
func BackNextButtons(backLabel string, backEnabled bool, nextLabel string, nextEnabled bool) []Button {
	backState := ButtonNormal
	if !backEnabled {
		backState = ButtonDisabled
	}
	nextState := ButtonNormal
	if !nextEnabled {
		nextState = ButtonDisabled
	}
	return []Button{
		{ID: ButtonBack, Label: "← " + backLabel, State: backState},
		{ID: ButtonNext, Label: nextLabel + " →", State: nextState},
	}
}
