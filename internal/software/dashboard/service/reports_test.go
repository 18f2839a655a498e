package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-admin/internal/domain/booking"
	"transit-admin/internal/domain/driver"
	"transit-admin/internal/domain/report"
	"transit-admin/internal/ports"
)

func TestBookingReportGroupsByPassengerAndRoute(t *testing.T) {
	f := newFixture(&fakeGateway{bookings: []booking.Booking{
		{ID: "b1", PassengerName: "Alice", Pickup: gpoint(14.5, 121.0), Destination: gpoint(14.6, 121.1)},
		{ID: "b2", PassengerName: "Alice", Pickup: gpoint(14.5, 121.0), Destination: gpoint(14.6, 121.1)},
		{ID: "b3", PassengerName: "Bob", Pickup: gpoint(10.0, 120.0), Destination: gpoint(10.1, 120.1)},
	}})

	res, err := f.svc.BookingReport(context.Background(), ports.ListQuery{})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 2)

	alice := res.Table.Rows[0]
	assert.Equal(t, "Alice", alice[1])
	assert.Equal(t, "Addr(14.5,121.0)", alice[2])
	assert.Equal(t, "Addr(14.6,121.1)", alice[3])
	assert.Equal(t, "2", alice[4])

	bob := res.Table.Rows[1]
	assert.Equal(t, "Bob", bob[1])
	assert.Equal(t, "1", bob[4])
}

func TestBookingReportCoPassengersCountSeparately(t *testing.T) {
	f := newFixture(&fakeGateway{bookings: []booking.Booking{
		{
			ID: "b1", PassengerName: "Alice",
			Pickup: gpoint(14.5, 121.0), Destination: gpoint(14.6, 121.1),
			CoPassengers: []booking.Booking{{ID: "b2", PassengerName: "Bob"}},
		},
	}})

	res, err := f.svc.BookingReport(context.Background(), ports.ListQuery{})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 2)

	// the co-passenger inherits the parent's route but groups by own name
	assert.Equal(t, "Alice", res.Table.Rows[0][1])
	assert.Equal(t, "Bob", res.Table.Rows[1][1])
	assert.Equal(t, res.Table.Rows[0][2], res.Table.Rows[1][2])
}

func TestBookingReportInvalidCoordinatesUseFallbackAddress(t *testing.T) {
	f := newFixture(&fakeGateway{bookings: []booking.Booking{
		{ID: "b1", PassengerName: "Alice"},
	}})

	res, err := f.svc.BookingReport(context.Background(), ports.ListQuery{})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 1)

	assert.Equal(t, "Address not found", res.Table.Rows[0][2])
	assert.Equal(t, "Address not found", res.Table.Rows[0][3])
}

func TestBookingReportFetchFailure(t *testing.T) {
	f := newFixture(&fakeGateway{failing: map[string]bool{"bookings": true}})

	res, err := f.svc.BookingReport(context.Background(), ports.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, fetchErrMsg, res.Error)
	assert.Empty(t, res.Table.Rows)
}

func TestViolationReportCountsPerDriverWithUnknownGroup(t *testing.T) {
	reportedAt := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)

	f := newFixture(&fakeGateway{violations: []driver.Violation{
		{ID: "v1", Driver: ref("d1", "Alice"), Report: "overspeeding"},
		{ID: "v2", Driver: ref("d1", "Alice"), Report: "reckless", ReportedAt: tptr(reportedAt)},
		{ID: "v3", Report: "unattributed"}, // no driver reference
	}})

	res, err := f.svc.ViolationReport(context.Background(), ports.ListQuery{})
	require.NoError(t, err)
	require.Len(t, res.Table.Rows, 2)

	assert.Equal(t, "Alice", res.Table.Rows[0][1])
	assert.Equal(t, "2", res.Table.Rows[0][2])
	assert.Equal(t, "2026-05-02", res.Table.Rows[0][3])

	// the driverless record is kept under the reserved group, not dropped
	assert.Equal(t, "Unknown", res.Table.Rows[1][1])
	assert.Equal(t, "1", res.Table.Rows[1][2])
}

func TestTopDriversRanksBySummedScore(t *testing.T) {
	f := newFixture(&fakeGateway{ratings: []driver.Rating{
		{ID: "r1", Driver: ref("d2", "Bob"), Rating: fptr(5)},
		{ID: "r2", Driver: ref("d1", "Alice"), Rating: fptr(4)},
		{ID: "r3", Driver: ref("d1", "Alice"), Rating: fptr(5)},
		{ID: "r4", Rating: fptr(5)}, // driverless: excluded from the ranking
	}})

	res, err := f.svc.TopDrivers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)

	top := res.Entries[0]
	assert.Equal(t, "d1", top.DriverID)
	assert.Equal(t, "Alice", top.Name)
	assert.Equal(t, 9.0, top.RatingSum)
	assert.Equal(t, 2, top.RatingCount)
	assert.Equal(t, 4.5, top.Average)
}

func TestTopDriversDefaultsAndBounds(t *testing.T) {
	f := newFixture(&fakeGateway{ratings: []driver.Rating{
		{ID: "r1", Driver: ref("d1", "Alice"), Rating: fptr(3)},
	}})

	// n defaults when unset and is bounded by the data
	res, err := f.svc.TopDrivers(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, res.Entries, 1)
}

func TestTopDriversFetchFailure(t *testing.T) {
	f := newFixture(&fakeGateway{failing: map[string]bool{"ratings": true}})

	res, err := f.svc.TopDrivers(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, fetchErrMsg, res.Error)
	assert.Empty(t, res.Entries)
}

func TestRevenueSeriesBucketsSubscriptionPayments(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	f := newFixture(&fakeGateway{subscriptions: []driver.Subscription{
		{ID: "s1", StartDate: tptr(jan), Price: fptr(1000)},
		{ID: "s2", StartDate: tptr(jan.AddDate(0, 0, 5)), Price: fptr(500)},
		{ID: "s3", StartDate: tptr(feb), Price: fptr(2000)},
		{ID: "s4", Price: fptr(9999)}, // undated: skipped
	}})

	res, err := f.svc.RevenueSeries(context.Background(), "monthly", "", "")
	require.NoError(t, err)

	assert.Equal(t, "monthly", res.Granularity)
	assert.Equal(t, report.Series{
		Labels: []string{"January 2026", "February 2026"},
		Data:   []float64{1500, 2000},
	}, res.Series)
}

func TestRevenueSeriesWindowAndDefaults(t *testing.T) {
	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	f := newFixture(&fakeGateway{subscriptions: []driver.Subscription{
		{ID: "s1", StartDate: tptr(jan), Price: fptr(1000)},
		{ID: "s2", StartDate: tptr(feb), Price: fptr(2000)},
	}})

	// granularity defaults to monthly; "to" is inclusive of the whole day
	res, err := f.svc.RevenueSeries(context.Background(), "", "2026-02-01", "2026-02-05")
	require.NoError(t, err)
	assert.Equal(t, "monthly", res.Granularity)
	assert.Equal(t, []float64{2000}, res.Series.Data)
}

func TestRevenueSeriesRejectsBadInputs(t *testing.T) {
	f := newFixture(&fakeGateway{})

	_, err := f.svc.RevenueSeries(context.Background(), "hourly", "", "")
	assert.ErrorIs(t, err, report.ErrInvalidGranularity)

	_, err = f.svc.RevenueSeries(context.Background(), "daily", "02/01/2026", "")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}
