package listing

// Category is one entry of the marketplace category catalog. Display names
// are a locale concern; the aggregate stores IDs only.
type Category struct {
	ID            string
	Subcategories []string
}

// catalog mirrors the marketplace's fixed category tree. Order matters for
// the UI, so this is a slice, not a map.
var catalog = []Category{
	{ID: "design", Subcategories: []string{"logo", "ui-ux", "branding", "illustration"}},
	{ID: "writing", Subcategories: []string{"articles", "translation", "proofreading", "copywriting"}},
	{ID: "programming", Subcategories: []string{"web-development", "mobile-apps", "wordpress", "ecommerce"}},
	{ID: "marketing", Subcategories: []string{"social-media", "seo", "email-marketing", "paid-ads"}},
	{ID: "video", Subcategories: []string{"editing", "motion-graphics", "intros", "voice-over"}},
}

// Categories returns the category catalog in display order.
func Categories() []Category {
	return catalog
}

// CategoryIDs returns the category IDs in display order.
func CategoryIDs() []string {
	ids := make([]string, len(catalog))
	for i, c := range catalog {
		ids[i] = c.ID
	}
	return ids
}

// SubcategoriesFor returns the subcategory IDs for a category, or nil if the
// category is unknown.
func SubcategoriesFor(categoryID string) []string {
	for _, c := range catalog {
		if c.ID == categoryID {
			return c.Subcategories
		}
	}
	return nil
}

// ValidCategory reports whether id names a known category.
func ValidCategory(id string) bool {
	return SubcategoriesFor(id) != nil
}

// ValidSubcategory reports whether sub belongs to the given category.
func ValidSubcategory(categoryID, sub string) bool {
	for _, s := range SubcategoriesFor(categoryID) {
		if s == sub {
			return true
		}
	}
	return false
}
