package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestBucketKeyWeeklyIsDayOfYearBased(t *testing.T) {
	// weeks are ceil(dayOfYear/7), anchored to Jan 1 rather than Monday
	assert.Equal(t, "2026-W1", BucketKey(day(2026, time.January, 1), GranularityWeekly))
	assert.Equal(t, "2026-W1", BucketKey(day(2026, time.January, 7), GranularityWeekly))
	assert.Equal(t, "2026-W2", BucketKey(day(2026, time.January, 8), GranularityWeekly))
	assert.Equal(t, "2026-W53", BucketKey(day(2026, time.December, 31), GranularityWeekly))

	// weeks never span a year boundary
	assert.Equal(t, "2027-W1", BucketKey(day(2027, time.January, 1), GranularityWeekly))
}

func TestBucketKeyOtherGranularities(t *testing.T) {
	ts := day(2026, time.March, 9)
	assert.Equal(t, "2026-03-09", BucketKey(ts, GranularityDaily))
	assert.Equal(t, "March 2026", BucketKey(ts, GranularityMonthly))
	assert.Equal(t, "2026", BucketKey(ts, GranularityAnnually))
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("  Weekly ")
	assert.NoError(t, err)
	assert.Equal(t, GranularityWeekly, g)

	_, err = ParseGranularity("hourly")
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

type payment struct {
	at     *time.Time
	amount *float64
}

func pt(ts time.Time) *time.Time { return &ts }

func paymentSeries(records []payment, g Granularity, w Window) Series {
	return BucketSeries(records, g, w,
		func(p payment) (time.Time, bool) {
			if p.at == nil {
				return time.Time{}, false
			}
			return *p.at, true
		},
		func(p payment) (float64, bool) {
			if p.amount == nil {
				return 0, false
			}
			return *p.amount, true
		},
	)
}

func TestBucketSeriesSumsPerBucketInChronologicalOrder(t *testing.T) {
	records := []payment{
		{at: pt(day(2026, time.February, 10)), amount: f(200)},
		{at: pt(day(2026, time.January, 5)), amount: f(100)},
		{at: pt(day(2026, time.February, 20)), amount: f(50)},
		{at: pt(day(2026, time.January, 25)), amount: f(25)},
	}

	series := paymentSeries(records, GranularityMonthly, Window{})
	assert.Equal(t, []string{"January 2026", "February 2026"}, series.Labels)
	assert.Equal(t, []float64{125, 250}, series.Data)
}

func TestBucketSeriesSkipsUndatedAndKeepsUnpriced(t *testing.T) {
	records := []payment{
		{at: pt(day(2026, time.January, 5)), amount: f(100)},
		{amount: f(999)}, // no timestamp: skipped entirely
		{at: pt(day(2026, time.January, 9))}, // no amount: bucket exists, adds zero
	}

	series := paymentSeries(records, GranularityMonthly, Window{})
	assert.Equal(t, []string{"January 2026"}, series.Labels)
	assert.Equal(t, []float64{100}, series.Data)
}

func TestBucketSeriesWindowIsInclusive(t *testing.T) {
	from := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)

	records := []payment{
		{at: pt(from), amount: f(1)},
		{at: pt(to), amount: f(2)},
		{at: pt(day(2026, time.January, 9)), amount: f(4)},
		{at: pt(day(2026, time.January, 21)), amount: f(8)},
	}

	series := paymentSeries(records, GranularityAnnually, Window{From: from, To: to})
	assert.Equal(t, []float64{3}, series.Data)
}

func TestBucketSeriesEmptyInput(t *testing.T) {
	series := paymentSeries(nil, GranularityDaily, Window{})
	assert.Empty(t, series.Labels)
	assert.Empty(t, series.Data)
}
