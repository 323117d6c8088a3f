// Package publish turns a completed listing into its published artifact: a
// markdown file under the data directory plus a row in the published-services
// index.
package publish

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/logger"
)

const (
	indexMarker = "<!-- SERVICES -->"
	tableHeader = "| Service | Category | Price from | Published |"
	tableSep    = "|---------|----------|------------|-----------|"
)

// WriteListing writes the listing as markdown under <dataDir>/published/ and
// records it in that directory's README index. Returns the path of the
// written file.
func WriteListing(dataDir string, l *listing.Listing) (string, error) {
	dir := filepath.Join(dataDir, "published")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create published directory: %w", err)
	}

	name := slug.Make(l.Basic.Title)
	if name == "" {
		name = "unnamed-service"
	}
	path := filepath.Join(dir, name+".md")

	logger.Debug("Writing listing to %s", path)
	if err := os.WriteFile(path, []byte(Markdown(l)), 0644); err != nil {
		return "", fmt.Errorf("failed to write listing file: %w", err)
	}

	if err := updateIndex(filepath.Join(dir, "README.md"), name+".md", l); err != nil {
		return "", fmt.Errorf("failed to update index: %w", err)
	}

	return path, nil
}

// Markdown renders the full listing as a markdown document. The review step
// renders the same document through glamour, so what the seller approves is
// byte for byte what gets published.
func Markdown(l *listing.Listing) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l.Basic.Title)
	fmt.Fprintf(&b, "**Category:** %s / %s\n\n", l.Basic.Category, l.Basic.Subcategory)
	if len(l.Basic.Tags) > 0 {
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(l.Basic.Tags, ", "))
	}
	if l.Basic.MainImage != nil {
		fmt.Fprintf(&b, "**Cover image:** %s\n\n", l.Basic.MainImage.Name)
	}

	b.WriteString("## Description\n\n")
	b.WriteString(strings.TrimSpace(l.Description.Text))
	b.WriteString("\n")
	if len(l.Description.Features) > 0 {
		b.WriteString("\n### What you get\n\n")
		for _, f := range l.Description.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	if strings.TrimSpace(l.Description.BuyerInstructions) != "" {
		b.WriteString("\n### Before you order\n\n")
		b.WriteString(strings.TrimSpace(l.Description.BuyerInstructions))
		b.WriteString("\n")
	}

	b.WriteString("\n## Packages\n\n")
	writePackage(&b, "Basic", l.Pricing.Basic)
	writePackage(&b, "Standard", l.Pricing.Standard)
	writePackage(&b, "Premium", l.Pricing.Premium)

	if len(l.Pricing.Extras) > 0 {
		b.WriteString("### Extras\n\n")
		for _, e := range l.Pricing.Extras {
			fmt.Fprintf(&b, "- %s (+$%.2f)\n", e.Name, e.Price)
		}
		b.WriteString("\n")
	}

	if len(l.Portfolio.Images) > 0 || l.Portfolio.VideoURL != "" {
		b.WriteString("## Portfolio\n\n")
		for _, img := range l.Portfolio.Images {
			fmt.Fprintf(&b, "- %s\n", img.Name)
		}
		if l.Portfolio.VideoURL != "" {
			fmt.Fprintf(&b, "- Video: %s\n", l.Portfolio.VideoURL)
		}
	}

	return b.String()
}

// writePackage renders one pricing tier. Tiers the seller left empty are
// skipped rather than rendered as zeros.
func writePackage(b *strings.Builder, name string, p listing.Package) {
	if p.Price <= 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", name)
	fmt.Fprintf(b, "- Price: $%.2f\n", p.Price)
	fmt.Fprintf(b, "- Delivery: %d day(s)\n", p.DeliveryDays)
	fmt.Fprintf(b, "- Revisions: %d\n", p.Revisions)
	for _, f := range p.Features {
		fmt.Fprintf(b, "- %s\n", f)
	}
	b.WriteString("\n")
}

// updateIndex adds a row for the listing to the published-services README.
// A fresh README is created when none exists; an existing one gets the row
// inserted under the marker, newest first.
func updateIndex(readmePath, filename string, l *listing.Listing) error {
	title := escapeCell(truncateRunes(l.Basic.Title, 100))
	category := escapeCell(l.Basic.Category + " / " + l.Basic.Subcategory)
	price := fmt.Sprintf("$%.2f", l.Pricing.Basic.Price)
	date := time.Now().Format("2006-01-02")

	newRow := fmt.Sprintf("| [%s](%s) | %s | %s | %s |", title, filename, category, price, date)

	existing, err := os.ReadFile(readmePath)
	var content string
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read index: %w", err)
		}
		logger.Debug("Creating new index at %s", readmePath)
		content = newIndex(newRow)
	} else {
		content = insertRow(string(existing), newRow)
	}

	if err := os.WriteFile(readmePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

func newIndex(newRow string) string {
	return fmt.Sprintf(`# Published services

Service listings published with khidma.

%s

%s
%s
%s
`, indexMarker, tableHeader, tableSep, newRow)
}

// insertRow puts the new row at the top of the index table, creating the
// marker and table when the file predates them.
func insertRow(content, newRow string) string {
	lines := strings.Split(content, "\n")

	markerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == indexMarker {
			markerIdx = i
			break
		}
	}

	if markerIdx == -1 {
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if len(strings.TrimSpace(content)) > 0 {
			content += "\n"
		}
		return content + indexMarker + "\n\n" + tableHeader + "\n" + tableSep + "\n" + newRow + "\n"
	}

	insertIdx := markerIdx + 1
	for insertIdx < len(lines) && strings.TrimSpace(lines[insertIdx]) == "" {
		insertIdx++
	}

	hasTable := insertIdx < len(lines) && strings.TrimSpace(lines[insertIdx]) == tableHeader
	if hasTable {
		insertIdx++
		if insertIdx < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[insertIdx]), "|--") {
			insertIdx++
		}
	}

	var block []string
	if !hasTable {
		block = []string{"", tableHeader, tableSep, newRow}
	} else {
		block = []string{newRow}
	}

	newLines := make([]string, 0, len(lines)+len(block))
	newLines = append(newLines, lines[:insertIdx]...)
	newLines = append(newLines, block...)
	newLines = append(newLines, lines[insertIdx:]...)
	return strings.Join(newLines, "\n")
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
