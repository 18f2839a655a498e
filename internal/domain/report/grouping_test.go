package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type rec struct {
	key   string
	name  string
	image string
	score *float64
}

func f(v float64) *float64 { return &v }

func groupRecs(records []rec) []*Aggregate[rec] {
	return GroupBy(records,
		func(r rec) string { return r.key },
		func(r rec) (string, string) { return r.name, r.image },
		func(r rec) (float64, bool) {
			if r.score == nil {
				return 0, false
			}
			return *r.score, true
		},
	)
}

func TestGroupByCountsReconcileWithInput(t *testing.T) {
	records := []rec{
		{key: "d1", name: "Alice"},
		{key: "d1", name: "Alice"},
		{key: "", name: ""},
		{key: "d2", name: "Bob"},
		{key: "", name: ""},
	}

	groups := groupRecs(records)

	total := 0
	for _, g := range groups {
		total += g.Count
		assert.Len(t, g.Members, g.Count)
	}
	assert.Equal(t, len(records), total)
}

func TestGroupByMissingKeyGoesToUnknown(t *testing.T) {
	records := []rec{
		{key: "d1", name: "Alice"},
		{key: "d1", name: "Alice"},
		{key: "", name: ""},
	}

	groups := groupRecs(records)
	assert.Len(t, groups, 2)

	assert.Equal(t, "d1", groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)

	assert.Equal(t, UnknownKey, groups[1].Key)
	assert.Equal(t, "Unknown", groups[1].Label)
	assert.Equal(t, 1, groups[1].Count)
}

func TestGroupByWhitespaceKeyIsUnknown(t *testing.T) {
	groups := groupRecs([]rec{{key: "   "}})
	assert.Len(t, groups, 1)
	assert.Equal(t, UnknownKey, groups[0].Key)
}

func TestGroupBySeedsFromFirstMember(t *testing.T) {
	records := []rec{
		{key: "d1", name: "Alice", image: "a.png"},
		{key: "d1", name: "Renamed", image: "b.png"},
	}

	groups := groupRecs(records)
	assert.Equal(t, "Alice", groups[0].Label)
	assert.Equal(t, "a.png", groups[0].Image)
}

func TestGroupBySumsOnlyPresentMeasures(t *testing.T) {
	records := []rec{
		{key: "d1", name: "Alice", score: f(4)},
		{key: "d1", name: "Alice", score: f(5)},
		{key: "d1", name: "Alice"}, // counted, not summed
	}

	groups := groupRecs(records)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, 9.0, groups[0].Sum)
}

func TestGroupByPreservesFirstSeenOrder(t *testing.T) {
	records := []rec{
		{key: "c"}, {key: "a"}, {key: "b"}, {key: "a"},
	}

	groups := groupRecs(records)
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"c", "a", "b"}, keys)
}

func TestGroupByEmptyInput(t *testing.T) {
	assert.Empty(t, groupRecs(nil))
}
