package listingwizard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/locale"
	"github.com/khidmahq/khidma/internal/tui/testfixtures"
)

func newPricingStep(p listing.Pricing) *PricingStep {
	s := NewPricingStep(p, locale.For("en"))
	s.Init()
	return s
}

func TestPricingTierSwitchKeepsEdits(t *testing.T) {
	s := newPricingStep(listing.Pricing{})
	s.priceInput.SetValue("25")
	s.deliveryInput.SetValue("2")

	// Right while a tier field is focused moves to the standard tab.
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	require.Equal(t, 1, s.tierIdx)
	require.Empty(t, s.priceInput.Value())

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	require.Equal(t, 0, s.tierIdx)
	require.Equal(t, "25", s.priceInput.Value())

	v := s.Value()
	require.Equal(t, float64(25), v.Basic.Price)
	require.Equal(t, 2, v.Basic.DeliveryDays)
}

func TestPricingSubmitRequiresBasicTier(t *testing.T) {
	s := newPricingStep(listing.Pricing{})

	require.Nil(t, s.Submit())
	require.Contains(t, s.err, "basic price")

	s.priceInput.SetValue("25")
	require.Nil(t, s.Submit())
	require.Contains(t, s.err, "basic delivery")

	s.deliveryInput.SetValue("2")
	require.Nil(t, s.Submit())
	require.Contains(t, s.err, "at least one feature")
}

func TestPricingSubmitEmitsMessage(t *testing.T) {
	p := testfixtures.CompleteListing().Pricing
	s := newPricingStep(p)

	cmd := s.Submit()
	require.NotNil(t, cmd)

	msg, ok := cmd().(PricingSubmittedMsg)
	require.True(t, ok)
	require.Equal(t, p.Basic.Price, msg.Pricing.Basic.Price)
	require.Equal(t, p.Premium.Features, msg.Pricing.Premium.Features)
	require.Len(t, msg.Pricing.Extras, 1)
}

func TestPricingUnparseablePriceBecomesZero(t *testing.T) {
	s := newPricingStep(listing.Pricing{})
	s.priceInput.SetValue("twenty")

	require.Zero(t, s.Value().Basic.Price)
}

func TestPricingAddTierFeature(t *testing.T) {
	s := newPricingStep(listing.Pricing{})
	s.setFocus(pricingFocusFeature)
	s.featureInput.SetValue("1 concept")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	require.Equal(t, []string{"1 concept"}, s.Value().Basic.Features)
	require.Empty(t, s.featureInput.Value())
}

func TestPricingAddExtra(t *testing.T) {
	s := newPricingStep(listing.Pricing{})
	s.setFocus(pricingFocusExtraName)
	s.extraNameInput.SetValue("Extra fast delivery")
	s.extraPriceInput.SetValue("10")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	v := s.Value()
	require.Len(t, v.Extras, 1)
	require.Equal(t, "Extra fast delivery", v.Extras[0].Name)
	require.Equal(t, float64(10), v.Extras[0].Price)
}

func TestPricingExtraRejectsBadPrice(t *testing.T) {
	s := newPricingStep(listing.Pricing{})
	s.setFocus(pricingFocusExtraName)
	s.extraNameInput.SetValue("Rush order")
	s.extraPriceInput.SetValue("free")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	require.Empty(t, s.Value().Extras)
	require.Contains(t, s.err, "valid price")
}

func TestPricingValueDoesNotAliasFeatures(t *testing.T) {
	p := testfixtures.CompleteListing().Pricing
	s := newPricingStep(p)

	v := s.Value()
	v.Basic.Features[0] = "mutated"

	require.Equal(t, "1 concept", s.Value().Basic.Features[0])
}
