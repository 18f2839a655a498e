package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildTableNumbersRowsFromOffset(t *testing.T) {
	table := BuildTable("Drivers", []string{"Name"}, [][]string{{"Alice"}, {"Bob"}}, 20)

	assert.Equal(t, []string{"No.", "Name"}, table.Columns)
	assert.Equal(t, "21", table.Rows[0][0])
	assert.Equal(t, "22", table.Rows[1][0])
}

func TestBuildTableAppliesMissingFallback(t *testing.T) {
	table := BuildTable("Drivers", []string{"Name", "Phone"}, [][]string{{"Alice", ""}, {"  ", "123"}}, 0)

	assert.Equal(t, []string{"1", "Alice", Missing}, table.Rows[0])
	assert.Equal(t, []string{"2", Missing, "123"}, table.Rows[1])
}

func TestBuildTablePadsShortRows(t *testing.T) {
	table := BuildTable("Drivers", []string{"Name", "Phone", "Status"}, [][]string{{"Alice"}}, 0)
	assert.Equal(t, []string{"1", "Alice", Missing, Missing}, table.Rows[0])
}

func TestBuildTableEmptyInput(t *testing.T) {
	table := BuildTable("Drivers", []string{"Name"}, nil, 0)
	assert.Empty(t, table.Rows)
	assert.Equal(t, []string{"No.", "Name"}, table.Columns)
}

func TestFallbackHelpers(t *testing.T) {
	assert.Equal(t, Missing, Fallback("  "))
	assert.Equal(t, "x", Fallback("x"))

	assert.Equal(t, Missing, FallbackFloat(nil, 2))
	assert.Equal(t, "2.50", FallbackFloat(f(2.5), 2))

	assert.Equal(t, Missing, FallbackTime(nil))
	ts := time.Date(2026, time.April, 2, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-04-02", FallbackTime(&ts))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, offset, total := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, 2, offset)
	assert.Equal(t, 5, total)

	// defaults applied for out-of-range inputs
	page, offset, total = Paginate(items, 0, 0)
	assert.Equal(t, items, page)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 5, total)

	// past the end is empty, not an error
	page, _, total = Paginate(items, 4, 2)
	assert.Empty(t, page)
	assert.Equal(t, 5, total)
}
