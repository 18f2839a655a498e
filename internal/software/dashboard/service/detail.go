package service

import (
	"context"
	"strings"
	"sync"

	"transit-admin/internal/domain/driver"
	"transit-admin/internal/ports"
)

// DriverProfile joins a driver with their ratings, violations, and current
// subscription. The driver record itself must load; the three side fetches
// run concurrently and fail soft into Errors.
func (service *dashboardService) DriverProfile(ctx context.Context, driverID string) (ports.DriverProfileResult, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return ports.DriverProfileResult{}, ErrDriverNotFound
	}

	drivers, err := service.gateway.Drivers(ctx)
	if err != nil {
		return ports.DriverProfileResult{}, err
	}

	var res ports.DriverProfileResult
	found := false
	for _, d := range drivers {
		if d.ID == driverID {
			res.Driver = d
			found = true
			break
		}
	}
	if !found {
		return ports.DriverProfileResult{}, ErrDriverNotFound
	}

	var (
		ratings       []driver.Rating
		violations    []driver.Violation
		subscriptions []driver.Subscription
	)

	var mu sync.Mutex
	var wg sync.WaitGroup

	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				service.logger.Error(ctx, "driver_profile_fetch_failed", "Failed to fetch "+name+" for driver profile", err,
					map[string]any{"driver_id": driverID})
				mu.Lock()
				res.Errors = append(res.Errors, fetchErrMsg+": "+name)
				mu.Unlock()
			}
		}()
	}

	fetch("ratings", func() (err error) { ratings, err = service.gateway.Ratings(ctx); return })
	fetch("violations", func() (err error) { violations, err = service.gateway.Violations(ctx); return })
	fetch("subscriptions", func() (err error) { subscriptions, err = service.gateway.Subscriptions(ctx); return })

	wg.Wait()

	// ----- ratings summary -----
	for i := range ratings {
		r := ratings[i]
		if r.Driver.Key() != driverID {
			continue
		}
		res.RatingCount++
		if v, ok := r.Value(); ok {
			res.RatingSum += v
		}
	}
	if res.RatingCount > 0 {
		res.Average = res.RatingSum / float64(res.RatingCount)
	}

	// ----- violation history -----
	for i := range violations {
		if violations[i].Driver.Key() == driverID {
			res.Violations = append(res.Violations, violations[i])
		}
	}

	// ----- current subscription: latest end date wins -----
	for i := range subscriptions {
		s := subscriptions[i]
		if s.Driver.Key() != driverID {
			continue
		}
		if res.Subscription == nil || laterEnd(&s, res.Subscription) {
			sub := s
			res.Subscription = &sub
		}
	}

	return res, nil
}

// laterEnd reports whether a ends after b; a dated end beats a missing one.
func laterEnd(a, b *driver.Subscription) bool {
	if a.EndDate == nil {
		return false
	}
	if b.EndDate == nil {
		return true
	}
	return a.EndDate.After(*b.EndDate)
}
