package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"transit-admin/internal/ports"
)

// PDFExporter renders a tabular report as a landscape A4 PDF. It always
// receives the full filtered row set, never a single page of it.
type PDFExporter struct{}

// NewPDFExporter constructs a PDFExporter.
func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

// ensure PDFExporter implements the DocumentExporter port
var _ ports.DocumentExporter = (*PDFExporter)(nil)

const (
	pageWidthMM  = 297.0 // A4 landscape
	pageMarginMM = 10.0
	headerRowMM  = 8.0
	bodyRowMM    = 7.0
)

// Render draws the title and a bordered table, one row per record.
func (e *PDFExporter) Render(title string, columns []string, rows [][]string) ([]byte, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("export: no columns for %q", title)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.AddPage()

	// title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	colWidth := (pageWidthMM - 2*pageMarginMM) / float64(len(columns))

	// header row, repeated after page breaks
	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, h := range columns {
			pdf.CellFormat(colWidth, headerRowMM, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		if pdf.GetY()+bodyRowMM > 210.0-pageMarginMM {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 8)
		}
		for i := 0; i < len(columns); i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colWidth, bodyRowMM, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type served with the rendered document.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// FileExtension returns the download extension.
func (e *PDFExporter) FileExtension() string { return "pdf" }
