package listing

import (
	"encoding/json"
	"reflect"
	"testing"
)

// filledListing builds a listing with every slice populated, including raw
// image bytes that must not survive projection.
func filledListing() *Listing {
	l := New()
	l.Basic = BasicInfo{
		Title:       "Professional logo design for you",
		Category:    "design",
		Subcategory: "logo",
		Tags:        []string{"logo", "brand"},
		MainImage: &Image{
			Name:    "cover.png",
			Data:    []byte{0x89, 0x50, 0x4e, 0x47},
			Preview: "data:image/png;base64,iVBO",
		},
	}
	l.Description = Description{
		Text:              "A very long description of the service offering.",
		Features:          []string{"source files", "three concepts", "fast delivery"},
		BuyerInstructions: "Send your brand name",
	}
	l.Pricing = Pricing{
		Basic:    Package{Price: 5, DeliveryDays: 1, Revisions: 1, Features: []string{"one concept"}},
		Standard: Package{Price: 15, DeliveryDays: 3, Revisions: 3, Features: []string{"three concepts"}},
		Premium:  Package{Price: 30, DeliveryDays: 5, Revisions: 10, Features: []string{"full identity"}},
		Extras:   []Extra{{ID: "e1", Name: "Express", Price: 10, Icon: "bolt"}},
	}
	l.Portfolio = Portfolio{
		Images: []Image{
			{Name: "p1.png", Data: []byte{1, 2}, Preview: "data:image/png;base64,AQI="},
			{Name: "p2.png", Data: []byte{3, 4}, Preview: "data:image/png;base64,AwQ="},
		},
		VideoURL: "https://example.com/v.mp4",
	}
	return l
}

// stripBinaries returns a copy of l with every binary handle nilled, which is
// exactly what a draft round trip should produce.
func stripBinaries(l *Listing) *Listing {
	c := l.Clone()
	if c.Basic.MainImage != nil {
		c.Basic.MainImage.Data = nil
	}
	for i := range c.Portfolio.Images {
		c.Portfolio.Images[i].Data = nil
	}
	return c
}

func TestProjectionRoundTrip(t *testing.T) {
	l := filledListing()

	p := Project(l)

	// Serialize and parse, as the draft store would.
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var restored Projection
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	got := restored.Hydrate()
	want := stripBinaries(l)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, want)
	}
}

func TestProjectStripsBinaryHandles(t *testing.T) {
	l := filledListing()
	p := Project(l)

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	// The serialized draft must not contain raw bytes in any form; the only
	// image payloads are the preview URIs.
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	basic := generic["basic"].(map[string]any)
	if _, ok := basic["main_image"]; ok {
		t.Error("projection should not carry a main_image handle field")
	}
	if basic["main_image_preview"] != "data:image/png;base64,iVBO" {
		t.Errorf("main_image_preview = %v", basic["main_image_preview"])
	}
}

func TestProjectDoesNotAliasInput(t *testing.T) {
	l := filledListing()
	p := Project(l)

	p.Basic.Tags[0] = "changed"
	p.Description.Features[0] = "changed"
	p.Pricing.Basic.Features[0] = "changed"

	if l.Basic.Tags[0] == "changed" || l.Description.Features[0] == "changed" ||
		l.Pricing.Basic.Features[0] == "changed" {
		t.Error("Project shares slices with the input listing")
	}
}

func TestHydrateEmptyProjection(t *testing.T) {
	var p Projection
	l := p.Hydrate()

	if l.Basic.MainImage != nil {
		t.Error("empty projection should hydrate with no main image")
	}
	if len(l.Portfolio.Images) != 0 {
		t.Error("empty projection should hydrate with no portfolio images")
	}
}

func TestHydrateRestoresPreviewWithoutBytes(t *testing.T) {
	p := Projection{
		Basic: BasicProjection{
			Title:            "Professional logo design",
			MainImageName:    "cover.png",
			MainImagePreview: "data:image/png;base64,iVBO",
		},
	}

	l := p.Hydrate()
	if l.Basic.MainImage == nil {
		t.Fatal("expected main image to be rebuilt from preview")
	}
	if l.Basic.MainImage.Data != nil {
		t.Error("binary handle must be nil after hydration")
	}
	if l.Basic.MainImage.Preview != "data:image/png;base64,iVBO" {
		t.Errorf("Preview = %q", l.Basic.MainImage.Preview)
	}
}
