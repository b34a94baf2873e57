// Package export renders a finished document to a printable PDF.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/kenimay/billdesk/internal/models"
)

// SummaryField is one "Label: value" line rendered above the item table.
// Order matters, so the summary is a slice rather than a map.
type SummaryField struct {
	Label string
	Value string
}

// PDF writes printable documents into Dir.
type PDF struct {
	Dir string
}

// Export renders the title, summary lines and item table to a PDF file and
// returns its path.
func (e *PDF) Export(title string, items []models.LineItem, summary []SummaryField) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	for _, f := range summary {
		pdf.Cell(0, 8, fmt.Sprintf("%s: %s", f.Label, f.Value))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	widths := []float64{25, 90, 35, 35}
	pdf.SetFont("Arial", "B", 11)
	for i, head := range []string{"Qty", "Description", "Unit Price", "Total"} {
		pdf.CellFormat(widths[i], 8, head, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, it := range items {
		for i, cell := range []string{it.Quantity, it.Description, it.UnitPrice, it.LineTotal} {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	path := filepath.Join(e.Dir, Filename(title, summary))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}

// Filename picks the output name: the Number summary value when present,
// else the title with whitespace collapsed to underscores.
func Filename(title string, summary []SummaryField) string {
	for _, f := range summary {
		if f.Label == "Number" && f.Value != "" {
			return sanitize(f.Value) + ".pdf"
		}
	}
	return sanitize(strings.Join(strings.Fields(title), "_")) + ".pdf"
}

// sanitize strips path separators so a stored value can never escape the
// export directory.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
}
