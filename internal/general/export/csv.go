package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"transit-admin/internal/ports"
)

// CSVExporter renders a tabular report as RFC 4180 CSV. The title becomes
// a comment-style first record so exported files stay self-describing.
type CSVExporter struct{}

// NewCSVExporter constructs a CSVExporter.
func NewCSVExporter() *CSVExporter { return &CSVExporter{} }

// ensure CSVExporter implements the DocumentExporter port
var _ ports.DocumentExporter = (*CSVExporter)(nil)

// Render writes the header row followed by every data row.
func (e *CSVExporter) Render(title string, columns []string, rows [][]string) ([]byte, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("export: no columns for %q", title)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type served with the rendered document.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// FileExtension returns the download extension.
func (e *CSVExporter) FileExtension() string { return "csv" }
