package listing

import (
	"strings"
	"unicode/utf8"
)

// Validation thresholds. These are locale-independent: the bilingual UI never
// changes them.
const (
	MinTitleRunes       = 10
	MinDescriptionRunes = 100
	MinFeatures         = 3
	MinBasicPrice       = 5
	MinDeliveryDays     = 1
)

// StepValid reports whether the slice owned by the given step is complete
// enough to advance. It is a pure predicate: no side effects, deterministic
// for a given listing. Step 4 is never gated (portfolio is optional) and
// step 5 is gated by the consent booleans at publish time, not here.
func StepValid(step int, l *Listing) bool {
	switch step {
	case StepBasics:
		return BasicInfoValid(l.Basic)
	case StepDescription:
		return DescriptionValid(l.Description)
	case StepPricing:
		return PricingValid(l.Pricing)
	case StepPortfolio, StepReview:
		return true
	default:
		return false
	}
}

// BasicInfoValid requires a title of at least MinTitleRunes (trimmed), a
// category and subcategory, at least one tag, and a main-image preview.
func BasicInfoValid(b BasicInfo) bool {
	if utf8.RuneCountInString(strings.TrimSpace(b.Title)) < MinTitleRunes {
		return false
	}
	if b.Category == "" || b.Subcategory == "" {
		return false
	}
	if len(b.Tags) == 0 {
		return false
	}
	return b.MainImage != nil && b.MainImage.Preview != ""
}

// DescriptionValid requires at least MinDescriptionRunes of trimmed text and
// MinFeatures feature lines.
func DescriptionValid(d Description) bool {
	if utf8.RuneCountInString(strings.TrimSpace(d.Text)) < MinDescriptionRunes {
		return false
	}
	return len(d.Features) >= MinFeatures
}

// PricingValid gates only the basic tier: price of at least MinBasicPrice,
// delivery of at least one day, and at least one feature. Standard and
// premium tiers are freely editable and may remain zero.
func PricingValid(p Pricing) bool {
	b := p.Basic
	return b.Price >= MinBasicPrice && b.DeliveryDays >= MinDeliveryDays && len(b.Features) >= 1
}
