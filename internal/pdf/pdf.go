// Package pdf lays out the extracted page structure into a paginated A4
// document. Every string is cleaned to the Latin-1 range before it reaches
// the layout engine; render and write failures are fatal to the run.
package pdf

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/gopagepdf/internal/page"
	"github.com/hyperifyio/gopagepdf/internal/sanitize"
)

const (
	titleSize   = 16
	headingSize = 14
	bodySize    = 12

	// bottomMargin is reserved on every page for the automatic break.
	bottomMargin = 15
)

// Render writes doc as a PDF to outPath.
func Render(doc page.Document, outPath string) error {
	f := compose(doc)
	if err := f.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("pdf: write %s: %w", outPath, err)
	}
	return nil
}

// compose builds the in-memory document so tests can probe pagination
// without touching disk.
func compose(doc page.Document) *gofpdf.Fpdf {
	f := gofpdf.New("P", "mm", "A4", "")
	f.SetAutoPageBreak(true, bottomMargin)
	f.AddPage()

	// Core fonts are cp1252; the translator maps the sanitized UTF-8 text
	// onto that byte range.
	tr := f.UnicodeTranslatorFromDescriptor("")
	clean := func(s string) string { return tr(sanitize.Clean(s)) }

	pageW, _ := f.GetPageSize()
	left, _, right, _ := f.GetMargins()
	w := pageW - left - right

	// Title block: title, URL, description, centered.
	f.SetFont("Helvetica", "B", titleSize)
	f.MultiCell(w, 10, clean(doc.Meta.Title), "", "C", false)
	f.Ln(2)
	f.SetFont("Helvetica", "", bodySize)
	f.MultiCell(w, 8, clean(doc.Meta.URL), "", "C", false)
	f.Ln(2)
	f.MultiCell(w, 8, clean(doc.Meta.Description), "", "C", false)
	f.Ln(8)

	for _, s := range doc.Sections {
		f.SetFont("Helvetica", "B", headingSize)
		f.MultiCell(w, 9, clean(s.Heading), "", "L", false)
		f.Ln(1)
		f.SetFont("Helvetica", "", bodySize)
		f.MultiCell(w, 8, clean(strings.Join(s.Body, "\n")), "", "L", false)
		f.Ln(4)
	}

	if len(doc.Links) > 0 {
		f.SetFont("Helvetica", "B", headingSize)
		f.MultiCell(w, 9, "Links", "", "L", false)
		f.Ln(1)
		f.SetFont("Helvetica", "", bodySize)
		f.SetTextColor(0, 0, 255)
		for _, l := range doc.Links {
			f.MultiCell(w, 8, clean(l.Text+" -> "+l.URL), "", "L", false)
		}
		f.SetTextColor(0, 0, 0)
		f.Ln(2)
	}

	if len(doc.Tabs) > 0 {
		f.AddPage()
		f.SetFont("Helvetica", "B", titleSize)
		f.MultiCell(w, 10, "Tabbed Content", "", "L", false)
		f.Ln(4)
		for _, tab := range doc.Tabs {
			f.SetFont("Helvetica", "B", headingSize)
			f.MultiCell(w, 9, clean(tab.Label), "", "L", false)
			f.Ln(1)
			f.SetFont("Helvetica", "", bodySize)
			f.MultiCell(w, 8, clean(tab.Content), "", "L", false)
			f.Ln(4)
		}
	}

	return f
}
