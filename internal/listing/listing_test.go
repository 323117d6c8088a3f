package listing

import (
	"reflect"
	"testing"
)

func TestAddTag(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		input    string
		want     bool
		wantTags []string
	}{
		{
			name:     "adds trimmed tag",
			existing: nil,
			input:    "  logo  ",
			want:     true,
			wantTags: []string{"logo"},
		},
		{
			name:     "empty input is a no-op",
			existing: []string{"logo"},
			input:    "   ",
			want:     false,
			wantTags: []string{"logo"},
		},
		{
			name:     "duplicate is a no-op",
			existing: []string{"logo", "brand"},
			input:    "logo",
			want:     false,
			wantTags: []string{"logo", "brand"},
		},
		{
			name:     "cap of five is a no-op",
			existing: []string{"a", "b", "c", "d", "e"},
			input:    "f",
			want:     false,
			wantTags: []string{"a", "b", "c", "d", "e"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BasicInfo{Tags: append([]string(nil), tt.existing...)}
			got := b.AddTag(tt.input)
			if got != tt.want {
				t.Errorf("AddTag(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !reflect.DeepEqual(b.Tags, tt.wantTags) {
				t.Errorf("Tags = %v, want %v", b.Tags, tt.wantTags)
			}
		})
	}
}

func TestRemoveTag(t *testing.T) {
	b := BasicInfo{Tags: []string{"a", "b", "c"}}
	b.RemoveTag("b")
	if !reflect.DeepEqual(b.Tags, []string{"a", "c"}) {
		t.Errorf("Tags = %v, want [a c]", b.Tags)
	}
	b.RemoveTag("missing")
	if !reflect.DeepEqual(b.Tags, []string{"a", "c"}) {
		t.Errorf("Tags = %v after removing unknown tag, want [a c]", b.Tags)
	}
}

func TestSetCategoryResetsSubcategory(t *testing.T) {
	b := BasicInfo{Category: "design", Subcategory: "logo"}

	// Re-selecting the same category keeps the subcategory.
	b.SetCategory("design")
	if b.Subcategory != "logo" {
		t.Errorf("Subcategory = %q after re-select, want %q", b.Subcategory, "logo")
	}

	b.SetCategory("writing")
	if b.Subcategory != "" {
		t.Errorf("Subcategory = %q after category change, want empty", b.Subcategory)
	}
}

func TestAddFeature(t *testing.T) {
	var d Description
	if !d.AddFeature("  fast delivery ") {
		t.Error("AddFeature should accept non-empty input")
	}
	if d.AddFeature("\t") {
		t.Error("AddFeature should reject whitespace-only input")
	}
	if !reflect.DeepEqual(d.Features, []string{"fast delivery"}) {
		t.Errorf("Features = %v", d.Features)
	}
}

func TestAddExtra(t *testing.T) {
	var p Pricing
	if p.AddExtra("  ", 10, "star") {
		t.Error("AddExtra should reject empty names")
	}
	if !p.AddExtra("Express delivery", 15, "bolt") {
		t.Error("AddExtra should accept a valid extra")
	}
	if len(p.Extras) != 1 {
		t.Fatalf("Extras length = %d, want 1", len(p.Extras))
	}
	if p.Extras[0].ID == "" {
		t.Error("expected extra ID to be set")
	}
	if p.Extras[0].Name != "Express delivery" || p.Extras[0].Price != 15 {
		t.Errorf("Extra = %+v", p.Extras[0])
	}
}

func TestPortfolioAddImagesTruncates(t *testing.T) {
	var pf Portfolio
	imgs := make([]Image, 7)
	for i := range imgs {
		imgs[i] = Image{Name: string(rune('a' + i))}
	}

	added := pf.AddImages(imgs[:3]...)
	if added != 3 || len(pf.Images) != 3 {
		t.Fatalf("first add: added=%d len=%d, want 3/3", added, len(pf.Images))
	}

	// Four more offered, only two fit; extras discarded, not queued.
	added = pf.AddImages(imgs[3:]...)
	if added != 2 {
		t.Errorf("second add: added=%d, want 2", added)
	}
	if len(pf.Images) != MaxPortfolioImages {
		t.Errorf("len = %d, want %d", len(pf.Images), MaxPortfolioImages)
	}

	if added = pf.AddImages(Image{Name: "z"}); added != 0 {
		t.Errorf("add at cap: added=%d, want 0", added)
	}
}

func TestClone(t *testing.T) {
	l := New()
	l.Basic = completeBasics()
	l.Description = Description{Text: "text", Features: []string{"a", "b", "c"}}
	l.Pricing.Basic = Package{Price: 5, DeliveryDays: 1, Features: []string{"x"}}
	l.Pricing.AddExtra("extra", 5, "")
	l.Portfolio.AddImages(Image{Name: "p1", Preview: "data:image/png;base64,cDE="})

	c := l.Clone()
	if !reflect.DeepEqual(c, l) {
		t.Fatal("Clone should be deep-equal to the original")
	}

	// Mutating the clone must not leak into the original.
	c.Basic.Tags[0] = "changed"
	c.Description.Features[0] = "changed"
	c.Pricing.Basic.Features[0] = "changed"
	c.Basic.MainImage.Preview = "changed"
	if l.Basic.Tags[0] == "changed" || l.Description.Features[0] == "changed" ||
		l.Pricing.Basic.Features[0] == "changed" || l.Basic.MainImage.Preview == "changed" {
		t.Error("Clone shares mutable state with the original")
	}
}
