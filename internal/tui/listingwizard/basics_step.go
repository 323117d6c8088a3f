package listingwizard

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/tui/theme"
	"github.com/khidmahq/khidma/internal/tui/widget"
)

// Focus positions within the basics step.
const (
	basicsFocusTitle = iota
	basicsFocusCategory
	basicsFocusSubcategory
	basicsFocusTags
	basicsFocusImage
	basicsFocusCount
)

// BasicsStep collects the title, category pair, search tags and main image.
// Category and subcategory are cycled with left/right; the rest are text
// inputs. Tags are added with enter and removed with backspace on an empty
// tags input.
type BasicsStep struct {
	titleInput textinput.Model
	tagInput   textinput.Model
	imageInput textinput.Model

	categoryIdx    int
	subcategoryIdx int

	info       listing.BasicInfo
	focusIndex int
	labels     locale.Labels
	width      int
	height     int
	err        string
}

// NewBasicsStep creates the basics step pre-filled from the given slice
// (empty for a new listing, populated when resuming a draft).
func NewBasicsStep(info listing.BasicInfo, labels locale.Labels) *BasicsStep {
	styles := inputStyles()

	title := textinput.New()
	title.Placeholder = "e.g., 'Professional logo design for your brand'"
	title.CharLimit = 120
	title.Prompt = ""
	title.SetStyles(styles)
	title.SetValue(info.Title)

	tags := textinput.New()
	tags.Placeholder = "type a tag and press enter"
	tags.CharLimit = 30
	tags.Prompt = ""
	tags.SetStyles(styles)

	image := textinput.New()
	image.Placeholder = "path/to/cover-image.png"
	image.Prompt = ""
	image.SetStyles(styles)

	s := &BasicsStep{
		titleInput: title,
		tagInput:   tags,
		imageInput: image,
		info:       info,
		labels:     labels,
	}
	s.syncCatalogIndices()
	return s
}

// syncCatalogIndices aligns the selector positions with the slice values.
func (s *BasicsStep) syncCatalogIndices() {
	cats := listing.Categories()
	for i, c := range cats {
		if c.ID == s.info.Category {
			s.categoryIdx = i
			break
		}
	}
	if s.info.Category == "" {
		s.info.Category = cats[s.categoryIdx].ID
	}
	for i, sub := range listing.SubcategoriesFor(s.info.Category) {
		if sub == s.info.Subcategory {
			s.subcategoryIdx = i
			break
		}
	}
}

// Init initializes the basics step.
func (s *BasicsStep) Init() tea.Cmd {
	s.focusIndex = basicsFocusTitle
	return s.titleInput.Focus()
}

// Value returns the slice as currently edited. The category pair always
// reflects the selector positions; a pending tag or image path that was
// never confirmed with enter is not included.
func (s *BasicsStep) Value() listing.BasicInfo {
	info := s.info
	info.Title = strings.TrimSpace(s.titleInput.Value())
	return info
}

// Update handles messages for the basics step.
func (s *BasicsStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "tab":
		if s.focusIndex == basicsFocusCount-1 {
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

	case "left", "right":
		switch s.focusIndex {
		case basicsFocusCategory:
			s.cycleCategory(keyMsg.String() == "right")
			return nil
		case basicsFocusSubcategory:
			s.cycleSubcategory(keyMsg.String() == "right")
			return nil
		}

	case "enter":
		switch s.focusIndex {
		case basicsFocusTags:
			tag := s.tagInput.Value()
			if strings.TrimSpace(tag) == "" {
				return nil
			}
			if !s.info.AddTag(tag) {
				if len(s.info.Tags) >= listing.MaxTags {
					s.err = fmt.Sprintf("at most %d tags", listing.MaxTags)
				}
				return nil
			}
			s.err = ""
			s.tagInput.SetValue("")
			return nil
		case basicsFocusImage:
			return s.attachImage()
		}

	case "backspace":
		// Backspace on an empty tags input removes the last tag.
		if s.focusIndex == basicsFocusTags && s.tagInput.Value() == "" && len(s.info.Tags) > 0 {
			s.info.RemoveTag(s.info.Tags[len(s.info.Tags)-1])
			return nil
		}

	default:
		if s.err != "" {
			s.err = ""
		}
	}

	return s.updateFocusedInput(msg)
}

// attachImage loads the file at the image input's path as the main image.
func (s *BasicsStep) attachImage() tea.Cmd {
	path := strings.TrimSpace(s.imageInput.Value())
	if path == "" {
		return nil
	}
	img, err := listing.LoadImage(path)
	if err != nil {
		s.err = err.Error()
		return nil
	}
	s.info.MainImage = &img
	s.imageInput.SetValue("")
	s.err = ""
	return nil
}

func (s *BasicsStep) cycleCategory(forward bool) {
	cats := listing.Categories()
	if forward {
		s.categoryIdx = (s.categoryIdx + 1) % len(cats)
	} else {
		s.categoryIdx = (s.categoryIdx + len(cats) - 1) % len(cats)
	}
	// SetCategory resets the subcategory when the category changes.
	s.info.SetCategory(cats[s.categoryIdx].ID)
	s.subcategoryIdx = 0
}

func (s *BasicsStep) cycleSubcategory(forward bool) {
	subs := listing.SubcategoriesFor(s.info.Category)
	if len(subs) == 0 {
		return
	}
	if s.info.Subcategory == "" {
		s.subcategoryIdx = 0
	} else if forward {
		s.subcategoryIdx = (s.subcategoryIdx + 1) % len(subs)
	} else {
		s.subcategoryIdx = (s.subcategoryIdx + len(subs) - 1) % len(subs)
	}
	s.info.Subcategory = subs[s.subcategoryIdx]
}

func (s *BasicsStep) setFocus(idx int) {
	s.focusIndex = idx
	s.titleInput.Blur()
	s.tagInput.Blur()
	s.imageInput.Blur()
	switch idx {
	case basicsFocusTitle:
		s.titleInput.Focus()
	case basicsFocusTags:
		s.tagInput.Focus()
	case basicsFocusImage:
		s.imageInput.Focus()
	}
}

func (s *BasicsStep) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focusIndex {
	case basicsFocusTitle:
		s.titleInput, cmd = s.titleInput.Update(msg)
	case basicsFocusTags:
		s.tagInput, cmd = s.tagInput.Update(msg)
	case basicsFocusImage:
		s.imageInput, cmd = s.imageInput.Update(msg)
	}
	return cmd
}

// View renders the basics step content.
func (s *BasicsStep) View() string {
	t := theme.Current()
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))

	info := s.Value()

	// Title counter turns green once the minimum is met.
	count := utf8.RuneCountInString(strings.TrimSpace(info.Title))
	counterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	if count >= listing.MinTitleRunes {
		counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success))
	}

	subcategory := info.Subcategory
	if subcategory == "" {
		subcategory = "←/→ to choose"
	}

	tags := "none yet"
	if len(info.Tags) > 0 {
		tags = strings.Join(info.Tags, ", ")
	}

	mainImage := "none attached"
	if info.MainImage != nil {
		mainImage = info.MainImage.Name
	}

	rows := []string{
		fieldLabel(s.labels.Get("field.title"), s.focusIndex == basicsFocusTitle) +
			" " + counterStyle.Render(fmt.Sprintf("(%d/%d)", count, listing.MinTitleRunes)),
		"    " + s.titleInput.View(),
		"",
		fieldLabel(s.labels.Get("field.category"), s.focusIndex == basicsFocusCategory) +
			" " + valueStyle.Render("◂ "+info.Category+" ▸"),
		fieldLabel(s.labels.Get("field.subcategory"), s.focusIndex == basicsFocusSubcategory) +
			" " + valueStyle.Render("◂ "+subcategory+" ▸"),
		"",
		fieldLabel(s.labels.Get("field.tags"), s.focusIndex == basicsFocusTags) +
			" " + mutedStyle.Render(fmt.Sprintf("(%d/%d)", len(info.Tags), listing.MaxTags)),
		"    " + valueStyle.Render(tags),
		"    " + s.tagInput.View(),
		"",
		fieldLabel(s.labels.Get("field.main_image"), s.focusIndex == basicsFocusImage) +
			" " + valueStyle.Render(mainImage),
		"    " + s.imageInput.View(),
	}

	parts := []string{strings.Join(rows, "\n")}
	if e := errorLine(s.err); e != "" {
		parts = append(parts, "", e)
	}
	parts = append(parts, "", widget.HintBar(
		"tab", "next field",
		"←→", "pick category",
		"enter", "add tag/image",
	))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the size of the basics step.
func (s *BasicsStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.titleInput.SetWidth(width - 8)
	s.tagInput.SetWidth(width - 8)
	s.imageInput.SetWidth(width - 8)
}

// Focus focuses the first input.
func (s *BasicsStep) Focus() {
	s.setFocus(basicsFocusTitle)
}

// FocusLast focuses the last input.
func (s *BasicsStep) FocusLast() {
	s.setFocus(basicsFocusImage)
}

// Blur blurs all inputs.
func (s *BasicsStep) Blur() {
	s.titleInput.Blur()
	s.tagInput.Blur()
	s.imageInput.Blur()
}

// Submit validates the slice and emits BasicsSubmittedMsg when it passes.
func (s *BasicsStep) Submit() tea.Cmd {
	info := s.Value()
	if err := validateBasics(info); err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return func() tea.Msg {
		return BasicsSubmittedMsg{Info: info}
	}
}

// validateBasics explains what the step gate still needs.
func validateBasics(info listing.BasicInfo) error {
	if utf8.RuneCountInString(strings.TrimSpace(info.Title)) < listing.MinTitleRunes {
		return fmt.Errorf("title needs at least %d characters", listing.MinTitleRunes)
	}
	if info.Subcategory == "" {
		return fmt.Errorf("pick a subcategory")
	}
	if len(info.Tags) == 0 {
		return fmt.Errorf("add at least one search tag")
	}
	if info.MainImage == nil || info.MainImage.Preview == "" {
		return fmt.Errorf("attach a main image")
	}
	return nil
}
