package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/khidmahq/khidma/internal/listing"
)

func completedListing() *listing.Listing {
	l := listing.New()
	l.Basic = listing.BasicInfo{
		Title:       "Professional logo design for you",
		Category:    "design",
		Subcategory: "logo",
		Tags:        []string{"logo", "branding"},
		MainImage: &listing.Image{
			Name:    "cover.png",
			Data:    []byte{1, 2, 3},
			Preview: "data:image/png;base64,AQID",
		},
	}
	l.Description = listing.Description{
		Text:              "A detailed description of the logo design service on offer.",
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
		Premium: listing.Package{
			Price:        120,
			DeliveryDays: 5,
			Revisions:    5,
			Features:     []string{"5 concepts", "Stationery design"},
		},
	}
	l.Pricing.Extras = []listing.Extra{{ID: "x1", Name: "Extra fast delivery", Price: 10}}
	l.Portfolio = listing.Portfolio{
		Images:   []listing.Image{{Name: "work1.png", Preview: "data:image/png;base64,AQID"}},
		VideoURL: "https://example.com/reel",
	}
	return l
}

func TestMarkdownStructure(t *testing.T) {
	md := Markdown(completedListing())

	for _, want := range []string{
		"# Professional logo design for you",
		"**Category:** design / logo",
		"**Tags:** logo, branding",
		"## Description",
		"### What you get",
		"- Source files",
		"### Before you order",
		"## Packages",
		"### Basic",
		"- Price: $25.00",
		"### Premium",
		"### Extras",
		"- Extra fast delivery (+$10.00)",
		"## Portfolio",
		"- Video: https://example.com/reel",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownSkipsEmptyTiers(t *testing.T) {
	md := Markdown(completedListing())

	// Standard was left all zero and must not render.
	if strings.Contains(md, "### Standard") {
		t.Error("empty Standard tier rendered")
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	l := completedListing()
	l.Pricing.Extras = nil
	l.Portfolio = listing.Portfolio{}
	l.Description.BuyerInstructions = "   "

	md := Markdown(l)
	if strings.Contains(md, "### Extras") {
		t.Error("Extras section rendered with no extras")
	}
	if strings.Contains(md, "## Portfolio") {
		t.Error("Portfolio section rendered with no items")
	}
	if strings.Contains(md, "### Before you order") {
		t.Error("buyer instructions rendered although blank")
	}
}

func TestWriteListingCreatesFileAndIndex(t *testing.T) {
	dataDir := t.TempDir()
	l := completedListing()

	path, err := WriteListing(dataDir, l)
	if err != nil {
		t.Fatalf("WriteListing() failed: %v", err)
	}

	wantPath := filepath.Join(dataDir, "published", "professional-logo-design-for-you.md")
	if path != wantPath {
		t.Errorf("path = %q, want %q", path, wantPath)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read listing file: %v", err)
	}
	if string(content) != Markdown(l) {
		t.Error("written file differs from rendered markdown")
	}

	index, err := os.ReadFile(filepath.Join(dataDir, "published", "README.md"))
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}
	idx := string(index)
	if !strings.Contains(idx, indexMarker) {
		t.Error("index missing marker")
	}
	if !strings.Contains(idx, "professional-logo-design-for-you.md") {
		t.Error("index missing listing filename")
	}
	if !strings.Contains(idx, "$25.00") {
		t.Error("index missing starting price")
	}
	if !strings.Contains(idx, time.Now().Format("2006-01-02")) {
		t.Error("index missing publish date")
	}
}

func TestWriteListingInsertsNewestFirst(t *testing.T) {
	dataDir := t.TempDir()

	first := completedListing()
	if _, err := WriteListing(dataDir, first); err != nil {
		t.Fatalf("WriteListing() failed: %v", err)
	}

	second := completedListing()
	second.Basic.Title = "Minimalist brand identity package"
	if _, err := WriteListing(dataDir, second); err != nil {
		t.Fatalf("WriteListing() failed: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(dataDir, "published", "README.md"))
	if err != nil {
		t.Fatalf("failed to read index: %v", err)
	}
	idx := string(index)

	firstIdx := strings.Index(idx, "Professional logo design")
	secondIdx := strings.Index(idx, "Minimalist brand identity")
	if firstIdx == -1 || secondIdx == -1 {
		t.Fatal("index missing an entry")
	}
	if secondIdx >= firstIdx {
		t.Error("newer listing should appear above the older one")
	}
}

func TestWriteListingEmptyTitleFallback(t *testing.T) {
	dataDir := t.TempDir()
	l := completedListing()
	l.Basic.Title = "!!!"

	path, err := WriteListing(dataDir, l)
	if err != nil {
		t.Fatalf("WriteListing() failed: %v", err)
	}
	if filepath.Base(path) != "unnamed-service.md" {
		t.Errorf("path = %q, want unnamed-service.md fallback", path)
	}
}

func TestInsertRowWithoutMarkerAppends(t *testing.T) {
	content := "# Published services\n\nIntro text.\n"
	row := "| [X](x.md) | design / logo | $5.00 | 2026-08-29 |"

	got := insertRow(content, row)
	if !strings.Contains(got, indexMarker) {
		t.Error("marker not appended")
	}
	if !strings.Contains(got, tableHeader) {
		t.Error("table header not appended")
	}
	if strings.Index(got, "Intro text.") > strings.Index(got, indexMarker) {
		t.Error("existing content should precede the appended table")
	}
}

func TestEscapeCellEscapesPipes(t *testing.T) {
	if got := escapeCell("a | b"); got != "a \\| b" {
		t.Errorf("escapeCell() = %q", got)
	}
}

func TestTruncateRunesUnicodeSafe(t *testing.T) {
	long := strings.Repeat("خدمة", 30) // 120 runes
	got := truncateRunes(long, 100)
	if r := []rune(got); len(r) != 100 {
		t.Errorf("truncated length = %d runes, want 100", len(r))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated title should end with ...")
	}
}
