package service

import (
	"context"
	"sync"
	"time"

	"transit-admin/internal/domain/booking"
	"transit-admin/internal/domain/commuter"
	"transit-admin/internal/domain/driver"
	"transit-admin/internal/ports"
)

// Overview collects the KPI metrics for the dashboard landing screen. All
// platform collections are fetched concurrently; a failed fetch zeroes its
// metrics and lands in Errors instead of failing the whole overview.
func (service *dashboardService) Overview(ctx context.Context) (ports.OverviewResult, error) {
	now := service.now()
	res := ports.OverviewResult{Timestamp: now}

	// define the start and end of the day
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	var (
		commuters     []commuter.Commuter
		drivers       []driver.Driver
		applications  []driver.Application
		subscriptions []driver.Subscription
		violations    []driver.Violation
		bookings      []booking.Booking
	)

	// ----- concurrent fan-out over the platform collections -----

	var mu sync.Mutex
	var wg sync.WaitGroup

	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				service.logger.Error(ctx, "overview_fetch_failed", "Failed to fetch "+name+" for overview", err, nil)
				mu.Lock()
				res.Errors = append(res.Errors, fetchErrMsg+": "+name)
				mu.Unlock()
			}
		}()
	}

	fetch("commuters", func() (err error) { commuters, err = service.gateway.Commuters(ctx); return })
	fetch("drivers", func() (err error) { drivers, err = service.gateway.Drivers(ctx); return })
	fetch("applications", func() (err error) { applications, err = service.gateway.Applications(ctx); return })
	fetch("subscriptions", func() (err error) { subscriptions, err = service.gateway.Subscriptions(ctx); return })
	fetch("violations", func() (err error) { violations, err = service.gateway.Violations(ctx); return })
	fetch("bookings", func() (err error) { bookings, err = service.gateway.Bookings(ctx); return })

	wg.Wait()

	// ----- derive the metrics -----

	res.Metrics.TotalCommuters = len(commuters)
	res.Metrics.TotalDrivers = len(drivers)
	res.Metrics.OpenViolations = len(violations)

	for _, app := range applications {
		if isPending(app.Status) {
			res.Metrics.PendingApplications++
		}
	}

	for i := range subscriptions {
		switch subscriptions[i].EffectiveStatus(now) {
		case driver.SubscriptionActive:
			res.Metrics.ActiveSubscriptions++
		case driver.SubscriptionExpired:
			res.Metrics.ExpiredSubscriptions++
		}

		// revenue recognized on the day the subscription started
		sub := subscriptions[i]
		if sub.StartDate != nil && sub.Price != nil &&
			!sub.StartDate.Before(startOfDay) && sub.StartDate.Before(endOfDay) {
			res.Metrics.RevenueToday += *sub.Price
		}
	}

	// co-passengers count as their own booking rows, same as in reports
	for _, b := range booking.Flatten(bookings) {
		if b.StartDate != nil && !b.StartDate.Before(startOfDay) && b.StartDate.Before(endOfDay) {
			res.Metrics.BookingsToday++
		}
	}

	return res, nil
}

// isPending matches the platform's pending markers case-insensitively.
func isPending(status string) bool {
	switch status {
	case "PENDING", "pending", "Pending":
		return true
	default:
		return false
	}
}
