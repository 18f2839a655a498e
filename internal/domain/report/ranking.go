package report

import "sort"

// TopN returns the min(n, len) highest-ranked aggregates by the given
// measure, sorted descending. The sort is stable: ties keep the grouping
// engine's first-seen order, which makes rankings reproducible without a
// secondary key. The input slice is not modified.
func TopN[T any](aggregates []*Aggregate[T], n int, measure func(*Aggregate[T]) float64) []*Aggregate[T] {
	if n < 0 {
		n = 0
	}

	ranked := make([]*Aggregate[T], len(aggregates))
	copy(ranked, aggregates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return measure(ranked[i]) > measure(ranked[j])
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// BySum ranks aggregates by their summed measure.
func BySum[T any](a *Aggregate[T]) float64 { return a.Sum }

// ByCount ranks aggregates by their member count.
func ByCount[T any](a *Aggregate[T]) float64 { return float64(a.Count) }
