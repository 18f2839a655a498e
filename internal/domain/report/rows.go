package report

import (
	"strconv"
	"strings"
	"time"
)

// Missing is the uniform placeholder for absent fields in report rows.
// Rows never carry empty cells: every missing value renders as Missing.
const Missing = "N/A"

// Table is a display-ready tabular report: a fixed column order and rows
// with the Missing fallback already applied. The same structure feeds both
// the on-screen table (one page) and the document exporter (full set).
type Table struct {
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// BuildTable flattens row cells into a Table. A sequence-number column is
// prepended: row i numbers as pageOffset+i+1. The number is a display
// sequence recomputed per page, never a stable identifier. Cell order is
// preserved from upstream; no re-sorting happens here.
func BuildTable(title string, columns []string, cells [][]string, pageOffset int) Table {
	table := Table{
		Title:   title,
		Columns: append([]string{"No."}, columns...),
		Rows:    make([][]string, 0, len(cells)),
	}

	for i, cell := range cells {
		row := make([]string, 0, len(cell)+1)
		row = append(row, strconv.Itoa(pageOffset+i+1))
		for _, c := range cell {
			row = append(row, Fallback(c))
		}
		// short rows still fill every declared column
		for len(row) < len(table.Columns) {
			row = append(row, Missing)
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// Fallback substitutes Missing for empty or whitespace-only values.
func Fallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return Missing
	}
	return s
}

// FallbackFloat formats an optional amount, or Missing when absent.
func FallbackFloat(f *float64, decimals int) string {
	if f == nil {
		return Missing
	}
	return strconv.FormatFloat(*f, 'f', decimals, 64)
}

// FallbackTime formats an optional timestamp as a calendar date, or Missing.
func FallbackTime(t *time.Time) string {
	if t == nil {
		return Missing
	}
	return t.UTC().Format("2006-01-02")
}

// Paginate slices items for a 1-based page of the given size and returns
// the page slice, the absolute offset of its first row, and the total
// count. Out-of-range pages yield an empty slice, not an error.
func Paginate[T any](items []T, page, pageSize int) (pageItems []T, offset, total int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	total = len(items)
	offset = (page - 1) * pageSize
	if offset >= total {
		return nil, offset, total
	}

	end := offset + pageSize
	if end > total {
		end = total
	}
	return items[offset:end], offset, total
}
