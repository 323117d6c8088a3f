// Package listing holds the service-listing aggregate edited by the add-service
// wizard: four data slices (basics, description, pricing, portfolio), the
// category catalog, per-step validity predicates, and the binary-stripped
// draft projection.
package listing

import (
	"strings"

	"github.com/google/uuid"
)

// Wizard step numbers. The flow is strictly linear: 1 through 5.
const (
	StepBasics      = 1
	StepDescription = 2
	StepPricing     = 3
	StepPortfolio   = 4
	StepReview      = 5

	MinStep = StepBasics
	MaxStep = StepReview
)

// Limits enforced by the slice operations and validators.
const (
	MaxTags            = 5
	MaxPortfolioImages = 5
)

// Listing is the full form aggregate for one service listing.
// It is owned by the wizard controller; step panels receive copies and emit
// whole-slice replacements, never mutating shared state directly.
type Listing struct {
	Basic       BasicInfo   `json:"basic"`
	Description Description `json:"description"`
	Pricing     Pricing     `json:"pricing"`
	Portfolio   Portfolio   `json:"portfolio"`
}

// BasicInfo is the step-1 slice: identity of the service.
type BasicInfo struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Tags        []string `json:"tags"`
	MainImage   *Image   `json:"main_image,omitempty"`
}

// Description is the step-2 slice.
type Description struct {
	Text              string   `json:"text"`
	Features          []string `json:"features"`
	BuyerInstructions string   `json:"buyer_instructions"`
}

// Pricing is the step-3 slice: three fixed tiers plus optional extras.
// Only the basic tier is gated; standard and premium may stay zero.
type Pricing struct {
	Basic    Package `json:"basic"`
	Standard Package `json:"standard"`
	Premium  Package `json:"premium"`
	Extras   []Extra `json:"extras"`
}

// Package is one pricing tier.
type Package struct {
	Price        float64  `json:"price"`
	DeliveryDays int      `json:"delivery_days"`
	Revisions    int      `json:"revisions"`
	Features     []string `json:"features"`
}

// Extra is an optional add-on service.
type Extra struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Icon  string  `json:"icon"`
}

// Portfolio is the step-4 slice. Entirely optional.
type Portfolio struct {
	Images   []Image `json:"images"`
	VideoURL string  `json:"video_url"`
}

// New returns an empty listing with zero defaults for every slice.
func New() *Listing {
	return &Listing{}
}

// Clone returns a deep copy of the listing. Image bytes are shared (they are
// immutable once attached); all slices are copied.
func (l *Listing) Clone() *Listing {
	c := &Listing{
		Basic: BasicInfo{
			Title:       l.Basic.Title,
			Category:    l.Basic.Category,
			Subcategory: l.Basic.Subcategory,
			Tags:        append([]string(nil), l.Basic.Tags...),
		},
		Description: Description{
			Text:              l.Description.Text,
			Features:          append([]string(nil), l.Description.Features...),
			BuyerInstructions: l.Description.BuyerInstructions,
		},
		Pricing: Pricing{
			Basic:    l.Pricing.Basic.clone(),
			Standard: l.Pricing.Standard.clone(),
			Premium:  l.Pricing.Premium.clone(),
			Extras:   append([]Extra(nil), l.Pricing.Extras...),
		},
		Portfolio: Portfolio{
			Images:   append([]Image(nil), l.Portfolio.Images...),
			VideoURL: l.Portfolio.VideoURL,
		},
	}
	if l.Basic.MainImage != nil {
		img := *l.Basic.MainImage
		c.Basic.MainImage = &img
	}
	return c
}

func (p Package) clone() Package {
	p.Features = append([]string(nil), p.Features...)
	return p
}

// SetCategory selects a category, resetting the subcategory whenever the
// category actually changes. Subcategories are only meaningful within the
// category that owns them.
func (b *BasicInfo) SetCategory(id string) {
	if b.Category == id {
		return
	}
	b.Category = id
	b.Subcategory = ""
}

// AddTag appends a trimmed tag. Empty input, duplicates, and additions past
// the tag cap are silent no-ops. Returns true if the tag was added.
func (b *BasicInfo) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || len(b.Tags) >= MaxTags {
		return false
	}
	for _, existing := range b.Tags {
		if existing == tag {
			return false
		}
	}
	b.Tags = append(b.Tags, tag)
	return true
}

// RemoveTag deletes a tag by value. Unknown tags are ignored.
func (b *BasicInfo) RemoveTag(tag string) {
	for i, existing := range b.Tags {
		if existing == tag {
			b.Tags = append(b.Tags[:i], b.Tags[i+1:]...)
			return
		}
	}
}

// AddFeature appends a trimmed feature line. Empty input is a silent no-op.
// Returns true if the feature was added.
func (d *Description) AddFeature(feature string) bool {
	feature = strings.TrimSpace(feature)
	if feature == "" {
		return false
	}
	d.Features = append(d.Features, feature)
	return true
}

// RemoveFeature deletes the feature at index i. Out-of-range is ignored.
func (d *Description) RemoveFeature(i int) {
	if i < 0 || i >= len(d.Features) {
		return
	}
	d.Features = append(d.Features[:i], d.Features[i+1:]...)
}

// AddFeature appends a trimmed feature line to a pricing tier.
// Empty input is a silent no-op.
func (p *Package) AddFeature(feature string) bool {
	feature = strings.TrimSpace(feature)
	if feature == "" {
		return false
	}
	p.Features = append(p.Features, feature)
	return true
}

// AddExtra appends an add-on service with a fresh ID. Empty names are
// rejected as a no-op.
func (p *Pricing) AddExtra(name string, price float64, icon string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	p.Extras = append(p.Extras, Extra{
		ID:    uuid.NewString(),
		Name:  name,
		Price: price,
		Icon:  icon,
	})
	return true
}

// RemoveExtra deletes an extra by ID. Unknown IDs are ignored.
func (p *Pricing) RemoveExtra(id string) {
	for i, e := range p.Extras {
		if e.ID == id {
			p.Extras = append(p.Extras[:i], p.Extras[i+1:]...)
			return
		}
	}
}

// AddImages appends images up to the portfolio cap. Images beyond the
// remaining capacity are discarded, not queued. Returns how many were kept.
func (pf *Portfolio) AddImages(images ...Image) int {
	remaining := MaxPortfolioImages - len(pf.Images)
	if remaining <= 0 {
		return 0
	}
	if len(images) > remaining {
		images = images[:remaining]
	}
	pf.Images = append(pf.Images, images...)
	return len(images)
}

// RemoveImage deletes the portfolio image at index i. Out-of-range is ignored.
func (pf *Portfolio) RemoveImage(i int) {
	if i < 0 || i >= len(pf.Images) {
		return
	}
	pf.Images = append(pf.Images[:i], pf.Images[i+1:]...)
}
