package listing

import "testing"

func TestSubcategoriesFor(t *testing.T) {
	if subs := SubcategoriesFor("design"); len(subs) == 0 {
		t.Error("design should have subcategories")
	}
	if subs := SubcategoriesFor("unknown"); subs != nil {
		t.Errorf("unknown category returned %v", subs)
	}
}

func TestValidSubcategory(t *testing.T) {
	tests := []struct {
		category string
		sub      string
		want     bool
	}{
		{"design", "logo", true},
		{"design", "seo", false}, // belongs to marketing
		{"marketing", "seo", true},
		{"unknown", "logo", false},
		{"design", "", false},
	}

	for _, tt := range tests {
		if got := ValidSubcategory(tt.category, tt.sub); got != tt.want {
			t.Errorf("ValidSubcategory(%q, %q) = %v, want %v", tt.category, tt.sub, got, tt.want)
		}
	}
}

func TestCategoryIDsMatchCatalogOrder(t *testing.T) {
	ids := CategoryIDs()
	cats := Categories()
	if len(ids) != len(cats) {
		t.Fatalf("len(ids)=%d len(cats)=%d", len(ids), len(cats))
	}
	for i, c := range cats {
		if ids[i] != c.ID {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], c.ID)
		}
	}
}
