package listingwizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/tui/theme"
	"github.com/khidmahq/khidma/internal/tui/widget"
)

// Focus positions within the portfolio step.
const (
	portfolioFocusImage = iota
	portfolioFocusVideo
	portfolioFocusCount
)

// PortfolioStep collects up to five work samples and an optional video URL.
// The whole step is optional; its gate always passes.
type PortfolioStep struct {
	imageInput textinput.Model
	videoInput textinput.Model

	portfolio  listing.Portfolio
	focusIndex int
	labels     locale.Labels
	width      int
	height     int
	err        string
	notice     string
}

// NewPortfolioStep creates the portfolio step pre-filled from the slice.
func NewPortfolioStep(p listing.Portfolio, labels locale.Labels) *PortfolioStep {
	styles := inputStyles()

	image := textinput.New()
	image.Placeholder = "path/to/sample.png (enter to add, globs ok)"
	image.Prompt = ""
	image.SetStyles(styles)

	video := textinput.New()
	video.Placeholder = "https://..."
	video.CharLimit = 300
	video.Prompt = ""
	video.SetStyles(styles)
	video.SetValue(p.VideoURL)

	return &PortfolioStep{
		imageInput: image,
		videoInput: video,
		portfolio:  p,
		labels:     labels,
	}
}

// Init initializes the portfolio step.
func (s *PortfolioStep) Init() tea.Cmd {
	s.focusIndex = portfolioFocusImage
	return s.imageInput.Focus()
}

// Value returns the slice as currently edited.
func (s *PortfolioStep) Value() listing.Portfolio {
	p := s.portfolio
	p.Images = append([]listing.Image(nil), p.Images...)
	p.VideoURL = strings.TrimSpace(s.videoInput.Value())
	return p
}

// Update handles messages for the portfolio step.
func (s *PortfolioStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "tab":
		if s.focusIndex == portfolioFocusCount-1 {
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
		if s.focusIndex == portfolioFocusImage {
			return s.addImages()
		}

	case "backspace":
		if s.focusIndex == portfolioFocusImage && s.imageInput.Value() == "" {
			if n := len(s.portfolio.Images); n > 0 {
				s.portfolio.RemoveImage(n - 1)
				s.notice = ""
			}
			return nil
		}

	default:
		if s.err != "" {
			s.err = ""
		}
	}

	return s.updateFocusedInput(msg)
}

// addImages loads the files matched by the image input and appends them.
// Matches past the five-image cap are discarded, and the user is told.
func (s *PortfolioStep) addImages() tea.Cmd {
	pattern := strings.TrimSpace(s.imageInput.Value())
	if pattern == "" {
		return nil
	}

	images, err := listing.LoadImages(pattern)
	if err != nil {
		s.err = err.Error()
		return nil
	}

	kept := s.portfolio.AddImages(images...)
	if kept < len(images) {
		s.notice = fmt.Sprintf("kept %d of %d, portfolio holds at most %d images",
			kept, len(images), listing.MaxPortfolioImages)
	} else {
		s.notice = ""
	}
	s.imageInput.SetValue("")
	s.err = ""
	return nil
}

func (s *PortfolioStep) setFocus(idx int) {
	s.focusIndex = idx
	s.imageInput.Blur()
	s.videoInput.Blur()
	switch idx {
	case portfolioFocusImage:
		s.imageInput.Focus()
	case portfolioFocusVideo:
		s.videoInput.Focus()
	}
}

func (s *PortfolioStep) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focusIndex {
	case portfolioFocusImage:
		s.imageInput, cmd = s.imageInput.Update(msg)
	case portfolioFocusVideo:
		s.videoInput, cmd = s.videoInput.Update(msg)
	}
	return cmd
}

// View renders the portfolio step content.
func (s *PortfolioStep) View() string {
	t := theme.Current()
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	noticeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))

	var imageLines []string
	for _, img := range s.portfolio.Images {
		name := img.Name
		if img.Data == nil {
			// Restored from a draft: preview only, bytes gone.
			name += " (preview only)"
		}
		imageLines = append(imageLines, "    "+valueStyle.Render("• "+name))
	}
	if len(imageLines) == 0 {
		imageLines = []string{"    " + mutedStyle.Render("no samples yet, this step is optional")}
	}

	rows := []string{
		fieldLabel("Work samples", s.focusIndex == portfolioFocusImage) +
			" " + mutedStyle.Render(fmt.Sprintf("(%d/%d)", len(s.portfolio.Images), listing.MaxPortfolioImages)),
	}
	rows = append(rows, imageLines...)
	rows = append(rows,
		"    "+s.imageInput.View(),
		"",
		fieldLabel(s.labels.Get("field.video"), s.focusIndex == portfolioFocusVideo),
		"    "+s.videoInput.View(),
	)

	parts := []string{strings.Join(rows, "\n")}
	if s.notice != "" {
		parts = append(parts, "", noticeStyle.Render(s.notice))
	}
	if e := errorLine(s.err); e != "" {
		parts = append(parts, "", e)
	}
	parts = append(parts, "", widget.HintBar(
		"enter", "add images",
		"backspace", "remove last",
		"tab", "next field",
	))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the size of the portfolio step.
func (s *PortfolioStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.imageInput.SetWidth(width - 8)
	s.videoInput.SetWidth(width - 8)
}

// Focus focuses the first input.
func (s *PortfolioStep) Focus() {
	s.setFocus(portfolioFocusImage)
}

// FocusLast focuses the last input.
func (s *PortfolioStep) FocusLast() {
	s.setFocus(portfolioFocusVideo)
}

// Blur blurs all inputs.
func (s *PortfolioStep) Blur() {
	s.imageInput.Blur()
	s.videoInput.Blur()
}

// Submit emits PortfolioSubmittedMsg. The portfolio has no gate.
func (s *PortfolioStep) Submit() tea.Cmd {
	p := s.Value()
	return func() tea.Msg {
		return PortfolioSubmittedMsg{Portfolio: p}
	}
}
