package testfixtures

import (
	"strings"
	"time"

	"github.com/khidmahq/khidma/internal/listing"
)

// Fixed test values for consistent golden files
const (
	FixedSellerName = "Layla Hassan"
	FixedTitle      = "Professional logo design for you"
	FixedPreview    = "data:image/png;base64,AQID"
)

var (
	FixedTime = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
)

// EmptyListing returns a fresh, untouched aggregate.
func EmptyListing() *listing.Listing {
	return listing.New()
}

// ListingWithBasics returns a listing whose first step passes validation.
func ListingWithBasics() *listing.Listing {
	l := listing.New()
	l.Basic = listing.BasicInfo{
		Title:       FixedTitle,
		Category:    "design",
		Subcategory: "logo",
		Tags:        []string{"logo", "branding"},
		MainImage: &listing.Image{
			Name:    "cover.png",
			Data:    []byte{1, 2, 3},
			Preview: FixedPreview,
		},
	}
	return l
}

// CompleteListing returns a listing that passes every step gate.
func CompleteListing() *listing.Listing {
	l := ListingWithBasics()
	l.Description = listing.Description{
		Text:              strings.TrimSpace(strings.Repeat("Clean, modern logo design tailored to your brand. ", 3)),
		Features:          []string{"Source files", "Vector formats", "Commercial license"},
		BuyerInstructions: "Send your company name and color preferences.",
	}
	l.Pricing = listing.Pricing{
		Basic: listing.Package{
			Price:        25,
			DeliveryDays: 2,
			Revisions:    1,
			Features:     []string{"1 concept"},
		},
		Standard: listing.Package{
			Price:        60,
			DeliveryDays: 3,
			Revisions:    3,
			Features:     []string{"3 concepts", "Social media kit"},
		},
		Premium: listing.Package{
			Price:        120,
			DeliveryDays: 5,
			Revisions:    5,
			Features:     []string{"5 concepts", "Stationery design"},
		},
		Extras: []listing.Extra{
			{ID: "ex-1", Name: "Extra fast delivery", Price: 10},
		},
	}
	l.Portfolio = listing.Portfolio{
		Images: []listing.Image{
			{Name: "work1.png", Data: []byte{4, 5, 6}, Preview: FixedPreview},
			{Name: "work2.png", Data: []byte{7, 8, 9}, Preview: FixedPreview},
		},
		VideoURL: "https://example.com/reel",
	}
	return l
}

// RestoredListing returns CompleteListing after a persistence round trip:
// previews kept, raw bytes gone.
func RestoredListing() *listing.Listing {
	return listing.Project(CompleteListing()).Hydrate()
}
