package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-admin/internal/domain/booking"
	"transit-admin/internal/domain/commuter"
	"transit-admin/internal/domain/driver"
)

func TestOverviewDerivesMetrics(t *testing.T) {
	today := fixedNow.Add(-2 * time.Hour) // same day, earlier hour
	yesterday := fixedNow.AddDate(0, 0, -1)
	future := fixedNow.AddDate(0, 1, 0)
	past := fixedNow.AddDate(0, -1, 0)

	f := newFixture(&fakeGateway{
		commuters: []commuter.Commuter{{ID: "c1"}, {ID: "c2"}},
		drivers:   []driver.Driver{{ID: "d1"}},
		applications: []driver.Application{
			{ID: "a1", Status: "PENDING"},
			{ID: "a2", Status: "APPROVED"},
		},
		subscriptions: []driver.Subscription{
			{ID: "s1", Status: "ACTIVE", EndDate: tptr(future), StartDate: tptr(today), Price: fptr(1500)},
			{ID: "s2", Status: "ACTIVE", EndDate: tptr(past)},
			{ID: "s3", Status: "PENDING", StartDate: tptr(yesterday), Price: fptr(900)},
		},
		violations: []driver.Violation{{ID: "v1"}},
		bookings: []booking.Booking{
			{ID: "b1", StartDate: tptr(today), CoPassengers: []booking.Booking{{ID: "b2"}}},
			{ID: "b3", StartDate: tptr(yesterday)},
		},
	})

	res, err := f.svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fixedNow, res.Timestamp)
	assert.Empty(t, res.Errors)

	m := res.Metrics
	assert.Equal(t, 2, m.TotalCommuters)
	assert.Equal(t, 1, m.TotalDrivers)
	assert.Equal(t, 1, m.PendingApplications)
	assert.Equal(t, 1, m.ActiveSubscriptions)
	assert.Equal(t, 1, m.ExpiredSubscriptions)
	assert.Equal(t, 1, m.OpenViolations)

	// the co-passenger counts as its own booking row
	assert.Equal(t, 2, m.BookingsToday)
	assert.Equal(t, 1500.0, m.RevenueToday)
}

func TestOverviewPartialFailuresLandInErrors(t *testing.T) {
	f := newFixture(&fakeGateway{
		commuters: []commuter.Commuter{{ID: "c1"}},
		failing:   map[string]bool{"drivers": true, "bookings": true},
	})

	res, err := f.svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Metrics.TotalCommuters)
	assert.Equal(t, 0, res.Metrics.TotalDrivers)
	assert.Len(t, res.Errors, 2)
}
