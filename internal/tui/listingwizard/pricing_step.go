package listingwizard

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/tui/theme"
	"github.com/khidmahq/khidma/internal/tui/widget"
)

// Focus positions within the pricing step. The tier inputs edit whichever
// tier tab is active; the extras pair sits below them.
const (
	pricingFocusPrice = iota
	pricingFocusDelivery
	pricingFocusRevisions
	pricingFocusFeature
	pricingFocusExtraName
	pricingFocusExtraPrice
	pricingFocusCount
)

var tierKeys = []string{"tier.basic", "tier.standard", "tier.premium"}

// PricingStep edits the three pricing tiers and the optional extras.
// Left/right switches the active tier tab while a tier input is focused;
// the inputs always show and write the active tier.
type PricingStep struct {
	priceInput      textinput.Model
	deliveryInput   textinput.Model
	revisionsInput  textinput.Model
	featureInput    textinput.Model
	extraNameInput  textinput.Model
	extraPriceInput textinput.Model

	pricing    listing.Pricing
	tierIdx    int // 0=basic 1=standard 2=premium
	focusIndex int
	labels     locale.Labels
	width      int
	height     int
	err        string
}

// NewPricingStep creates the pricing step pre-filled from the slice.
func NewPricingStep(p listing.Pricing, labels locale.Labels) *PricingStep {
	styles := inputStyles()

	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Prompt = ""
		in.SetStyles(styles)
		return in
	}

	s := &PricingStep{
		priceInput:      newInput("5.00", 10),
		deliveryInput:   newInput("1", 4),
		revisionsInput:  newInput("0", 4),
		featureInput:    newInput("what this tier includes (enter to add)", 80),
		extraNameInput:  newInput("e.g., 'Extra fast delivery'", 60),
		extraPriceInput: newInput("10.00", 10),
		pricing:         p,
		labels:          labels,
	}
	s.loadTierInputs()
	return s
}

// activeTier returns a pointer to the tier the tab selector points at.
func (s *PricingStep) activeTier() *listing.Package {
	switch s.tierIdx {
	case 1:
		return &s.pricing.Standard
	case 2:
		return &s.pricing.Premium
	default:
		return &s.pricing.Basic
	}
}

// loadTierInputs fills the tier inputs from the active tier.
func (s *PricingStep) loadTierInputs() {
	tier := s.activeTier()
	if tier.Price > 0 {
		s.priceInput.SetValue(strconv.FormatFloat(tier.Price, 'f', -1, 64))
	} else {
		s.priceInput.SetValue("")
	}
	if tier.DeliveryDays > 0 {
		s.deliveryInput.SetValue(strconv.Itoa(tier.DeliveryDays))
	} else {
		s.deliveryInput.SetValue("")
	}
	if tier.Revisions > 0 {
		s.revisionsInput.SetValue(strconv.Itoa(tier.Revisions))
	} else {
		s.revisionsInput.SetValue("")
	}
}

// storeTierInputs parses the tier inputs back into the active tier.
// Unparseable numbers become zero, which the gate then rejects.
func (s *PricingStep) storeTierInputs() {
	tier := s.activeTier()
	tier.Price, _ = strconv.ParseFloat(strings.TrimSpace(s.priceInput.Value()), 64)
	tier.DeliveryDays, _ = strconv.Atoi(strings.TrimSpace(s.deliveryInput.Value()))
	tier.Revisions, _ = strconv.Atoi(strings.TrimSpace(s.revisionsInput.Value()))
}

// Init initializes the pricing step.
func (s *PricingStep) Init() tea.Cmd {
	s.focusIndex = pricingFocusPrice
	return s.priceInput.Focus()
}

// Value returns the slice as currently edited.
func (s *PricingStep) Value() listing.Pricing {
	s.storeTierInputs()
	p := s.pricing
	p.Basic = clonePackage(p.Basic)
	p.Standard = clonePackage(p.Standard)
	p.Premium = clonePackage(p.Premium)
	p.Extras = append([]listing.Extra(nil), p.Extras...)
	return p
}

func clonePackage(p listing.Package) listing.Package {
	p.Features = append([]string(nil), p.Features...)
	return p
}

// Update handles messages for the pricing step.
func (s *PricingStep) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "tab":
		if s.focusIndex == pricingFocusCount-1 {
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
		// Tier tabs only react while a tier field is focused; the extras
		// inputs need the arrow keys for cursor movement.
		if s.focusIndex <= pricingFocusFeature {
			s.storeTierInputs()
			if keyMsg.String() == "right" {
				s.tierIdx = (s.tierIdx + 1) % len(tierKeys)
			} else {
				s.tierIdx = (s.tierIdx + len(tierKeys) - 1) % len(tierKeys)
			}
			s.loadTierInputs()
			return nil
		}

	case "enter":
		switch s.focusIndex {
		case pricingFocusFeature:
			if s.activeTier().AddFeature(s.featureInput.Value()) {
				s.featureInput.SetValue("")
				s.err = ""
			}
			return nil
		case pricingFocusExtraName, pricingFocusExtraPrice:
			return s.addExtra()
		}

	case "backspace":
		if s.focusIndex == pricingFocusFeature && s.featureInput.Value() == "" {
			tier := s.activeTier()
			if n := len(tier.Features); n > 0 {
				tier.Features = tier.Features[:n-1]
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

// addExtra appends an extra from the name/price pair.
func (s *PricingStep) addExtra() tea.Cmd {
	name := strings.TrimSpace(s.extraNameInput.Value())
	if name == "" {
		return nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(s.extraPriceInput.Value()), 64)
	if err != nil || price < 0 {
		s.err = "extra needs a valid price"
		return nil
	}
	if s.pricing.AddExtra(name, price, "") {
		s.extraNameInput.SetValue("")
		s.extraPriceInput.SetValue("")
		s.err = ""
	}
	return nil
}

func (s *PricingStep) setFocus(idx int) {
	s.focusIndex = idx
	s.priceInput.Blur()
	s.deliveryInput.Blur()
	s.revisionsInput.Blur()
	s.featureInput.Blur()
	s.extraNameInput.Blur()
	s.extraPriceInput.Blur()
	switch idx {
	case pricingFocusPrice:
		s.priceInput.Focus()
	case pricingFocusDelivery:
		s.deliveryInput.Focus()
	case pricingFocusRevisions:
		s.revisionsInput.Focus()
	case pricingFocusFeature:
		s.featureInput.Focus()
	case pricingFocusExtraName:
		s.extraNameInput.Focus()
	case pricingFocusExtraPrice:
		s.extraPriceInput.Focus()
	}
}

func (s *PricingStep) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focusIndex {
	case pricingFocusPrice:
		s.priceInput, cmd = s.priceInput.Update(msg)
	case pricingFocusDelivery:
		s.deliveryInput, cmd = s.deliveryInput.Update(msg)
	case pricingFocusRevisions:
		s.revisionsInput, cmd = s.revisionsInput.Update(msg)
	case pricingFocusFeature:
		s.featureInput, cmd = s.featureInput.Update(msg)
	case pricingFocusExtraName:
		s.extraNameInput, cmd = s.extraNameInput.Update(msg)
	case pricingFocusExtraPrice:
		s.extraPriceInput, cmd = s.extraPriceInput.Update(msg)
	}
	return cmd
}

// View renders the pricing step content.
func (s *PricingStep) View() string {
	t := theme.Current()
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted))
	activeTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BgBase)).
		Background(lipgloss.Color(t.Primary)).
		Bold(true).
		Padding(0, 1)
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.FgSubtle)).
		Padding(0, 1)

	var tabs []string
	for i, key := range tierKeys {
		label := s.labels.Get(key)
		if i == s.tierIdx {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	tabBar := strings.Join(tabs, " ")

	tier := s.activeTier()
	var featureLines []string
	for _, f := range tier.Features {
		featureLines = append(featureLines, "    "+valueStyle.Render("• "+f))
	}

	rows := []string{
		tabBar + "  " + mutedStyle.Render("(only the basic tier is required)"),
		"",
		fieldLabel("Price ($)", s.focusIndex == pricingFocusPrice) + " " + s.priceInput.View(),
		fieldLabel("Delivery (days)", s.focusIndex == pricingFocusDelivery) + " " + s.deliveryInput.View(),
		fieldLabel("Revisions", s.focusIndex == pricingFocusRevisions) + " " + s.revisionsInput.View(),
		fieldLabel("Features", s.focusIndex == pricingFocusFeature),
	}
	rows = append(rows, featureLines...)
	rows = append(rows, "    "+s.featureInput.View(), "")

	extrasHeader := fieldLabel("Extras", s.focusIndex >= pricingFocusExtraName)
	if len(s.pricing.Extras) > 0 {
		extrasHeader += " " + mutedStyle.Render(fmt.Sprintf("(%d added)", len(s.pricing.Extras)))
	}
	rows = append(rows, extrasHeader)
	for _, e := range s.pricing.Extras {
		rows = append(rows, "    "+valueStyle.Render(fmt.Sprintf("• %s (+$%.2f)", e.Name, e.Price)))
	}
	rows = append(rows,
		"    "+s.extraNameInput.View(),
		"    "+s.extraPriceInput.View(),
	)

	parts := []string{strings.Join(rows, "\n")}
	if e := errorLine(s.err); e != "" {
		parts = append(parts, "", e)
	}
	parts = append(parts, "", widget.HintBar(
		"←→", "switch tier",
		"tab", "next field",
		"enter", "add feature/extra",
	))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetSize updates the size of the pricing step.
func (s *PricingStep) SetSize(width, height int) {
	s.width = width
	s.height = height
	inputWidth := width - 24
	if inputWidth < 10 {
		inputWidth = 10
	}
	s.priceInput.SetWidth(inputWidth)
	s.deliveryInput.SetWidth(inputWidth)
	s.revisionsInput.SetWidth(inputWidth)
	s.featureInput.SetWidth(width - 8)
	s.extraNameInput.SetWidth(width - 8)
	s.extraPriceInput.SetWidth(inputWidth)
}

// Focus focuses the first input.
func (s *PricingStep) Focus() {
	s.setFocus(pricingFocusPrice)
}

// FocusLast focuses the last input.
func (s *PricingStep) FocusLast() {
	s.setFocus(pricingFocusExtraPrice)
}

// Blur blurs all inputs.
func (s *PricingStep) Blur() {
	s.priceInput.Blur()
	s.deliveryInput.Blur()
	s.revisionsInput.Blur()
	s.featureInput.Blur()
	s.extraNameInput.Blur()
	s.extraPriceInput.Blur()
}

// Submit validates the slice and emits PricingSubmittedMsg when it passes.
func (s *PricingStep) Submit() tea.Cmd {
	p := s.Value()
	if err := validatePricing(p); err != nil {
		s.err = err.Error()
		return nil
	}
	s.err = ""
	return func() tea.Msg {
		return PricingSubmittedMsg{Pricing: p}
	}
}

// validatePricing explains what the step gate still needs. Only the basic
// tier is checked; standard and premium may stay empty.
func validatePricing(p listing.Pricing) error {
	if p.Basic.Price < listing.MinBasicPrice {
		return fmt.Errorf("basic price must be at least $%d", listing.MinBasicPrice)
	}
	if p.Basic.DeliveryDays < listing.MinDeliveryDays {
		return fmt.Errorf("basic delivery must be at least %d day", listing.MinDeliveryDays)
	}
	if len(p.Basic.Features) == 0 {
		return fmt.Errorf("basic tier needs at least one feature")
	}
	return nil
}
