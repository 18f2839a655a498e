package report

import "strings"

// UnknownKey is the reserved group for records whose derived key is
// missing. Keeping such records grouped (instead of dropped) means the
// sum of member counts always reconciles with the input length.
const UnknownKey = "unknown"

// Aggregate is a per-group accumulator: representative display fields
// seeded from the first member, a member count, a summed measure, and the
// member records kept for detail drill-down.
type Aggregate[T any] struct {
	Key     string
	Label   string // representative name (driver name, passenger+route, ...)
	Image   string // representative picture URL, when the record carries one
	Count   int
	Sum     float64
	Members []T
}

// GroupBy folds records into aggregates in a single pass.
//
//   - keyFn derives the grouping key; an empty key collapses into UnknownKey.
//   - seedFn supplies the representative label/image on first occurrence.
//   - measureFn returns the numeric measure and whether the record carries
//     one; records without a measure still count as members but are
//     excluded from the sum.
//
// The returned slice preserves first-seen group order. No further ordering
// is guaranteed; ranking is imposed separately by TopN.
func GroupBy[T any](
	records []T,
	keyFn func(T) string,
	seedFn func(T) (label, image string),
	measureFn func(T) (float64, bool),
) []*Aggregate[T] {
	var out []*Aggregate[T]
	index := make(map[string]*Aggregate[T], len(records))

	for _, rec := range records {
		key := strings.TrimSpace(keyFn(rec))
		if key == "" {
			key = UnknownKey
		}

		agg, ok := index[key]
		if !ok {
			label, image := seedFn(rec)
			if key == UnknownKey && label == "" {
				label = "Unknown"
			}
			agg = &Aggregate[T]{Key: key, Label: label, Image: image}
			index[key] = agg
			out = append(out, agg)
		}

		agg.Count++
		agg.Members = append(agg.Members, rec)
		if v, ok := measureFn(rec); ok {
			agg.Sum += v
		}
	}

	return out
}

// NoMeasure is a measureFn for groupings that only count members.
func NoMeasure[T any](T) (float64, bool) { return 0, false }
