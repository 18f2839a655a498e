package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Granularity selects the period size for time-bucketed series.
type Granularity string

const (
	GranularityDaily    Granularity = "daily"
	GranularityWeekly   Granularity = "weekly"
	GranularityMonthly  Granularity = "monthly"
	GranularityAnnually Granularity = "annually"
)

var ErrInvalidGranularity = errors.New("invalid granularity")

// ParseGranularity normalizes (lowercases+trims) and validates a granularity string.
func ParseGranularity(in string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(in)))
	if g.Valid() {
		return g, nil
	}
	return "", ErrInvalidGranularity
}

// Valid reports whether granularity is one of the allowed constants.
func (granularity Granularity) Valid() bool {
	switch granularity {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityAnnually:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Granularity.
func (granularity Granularity) String() string {
	return string(granularity)
}

// BucketKey classifies a timestamp into a period label.
//
// The weekly key is ceil(dayOfYear/7) on purpose — a plain day-of-year
// bucketing, not ISO-8601 week numbering. Weeks do not start on Monday and
// do not span year boundaries. Downstream consumers rely on these exact
// labels, so the definition must not be "fixed" to true ISO weeks.
func BucketKey(t time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityDaily:
		return t.Format("2006-01-02")
	case GranularityWeekly:
		week := (t.YearDay() + 6) / 7
		return fmt.Sprintf("%d-W%d", t.Year(), week)
	case GranularityMonthly:
		return t.Format("January 2006")
	case GranularityAnnually:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// Window is an inclusive [From, To] time filter. A zero bound is open.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// Series is a charting-ready pair of parallel label/value arrays.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// BucketSeries sums a measure per period bucket over the records that fall
// inside the window.
//
//   - at extracts the record timestamp; records without one are skipped.
//   - measureFn extracts the summed measure; records without one are
//     excluded from the sum but do not error.
//
// Buckets are emitted in chronological order (by the earliest record seen
// in each bucket), so labels and data line up stably across refetches.
func BucketSeries[T any](
	records []T,
	granularity Granularity,
	window Window,
	at func(T) (time.Time, bool),
	measureFn func(T) (float64, bool),
) Series {
	sums := make(map[string]float64)
	first := make(map[string]time.Time)

	for _, rec := range records {
		ts, ok := at(rec)
		if !ok || !window.Contains(ts) {
			continue
		}

		key := BucketKey(ts, granularity)
		if cur, seen := first[key]; !seen || ts.Before(cur) {
			first[key] = ts
		}

		if v, ok := measureFn(rec); ok {
			sums[key] += v
		} else if _, seen := sums[key]; !seen {
			sums[key] = 0
		}
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return first[keys[i]].Before(first[keys[j]]) })

	series := Series{Labels: make([]string, 0, len(keys)), Data: make([]float64, 0, len(keys))}
	for _, k := range keys {
		series.Labels = append(series.Labels, k)
		series.Data = append(series.Data, sums[k])
	}
	return series
}
