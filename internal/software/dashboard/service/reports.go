package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"transit-admin/internal/domain/booking"
	"transit-admin/internal/domain/driver"
	"transit-admin/internal/domain/report"
	"transit-admin/internal/ports"
)

var ErrInvalidWindow = errors.New("invalid report window, expected YYYY-MM-DD")

const defaultTopN = 5

// bookingRow is one flattened booking joined with its resolved addresses.
type bookingRow struct {
	booking.Booking
	PickupAddress      string
	DestinationAddress string
}

// BookingReport groups flattened bookings by passenger and resolved route
// and renders one page of the aggregate table.
func (service *dashboardService) BookingReport(ctx context.Context, q ports.ListQuery) (ports.ReportResult, error) {
	return service.reportPage(ctx, q, service.bookingReportCells)
}

// ViolationReport groups violation records per driver and renders one page
// of the aggregate table.
func (service *dashboardService) ViolationReport(ctx context.Context, q ports.ListQuery) (ports.ReportResult, error) {
	return service.reportPage(ctx, q, service.violationReportCells)
}

// reportPage runs one cell builder and applies the shared search/paginate/
// number pipeline, with the same fail-soft fetch handling as listings.
func (service *dashboardService) reportPage(
	ctx context.Context,
	q ports.ListQuery,
	build func(context.Context) (string, []string, [][]string, error),
) (ports.ReportResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	res := ports.ReportResult{Page: q.Page, PageSize: q.PageSize}

	title, columns, cells, err := build(ctx)
	if err != nil {
		service.logger.Error(ctx, "report_fetch_failed", "Failed to build report "+title, err, nil)
		res.Table = report.BuildTable(title, columns, nil, 0)
		res.Error = fetchErrMsg
		return res, nil
	}

	cells = filterCells(cells, q.Search)
	pageCells, offset, total := report.Paginate(cells, q.Page, q.PageSize)
	res.Table = report.BuildTable(title, columns, pageCells, offset)
	res.TotalCount = total
	return res, nil
}

// bookingReportCells fetches bookings, flattens co-passengers into rows,
// resolves every pickup/destination pair (all resolutions complete before
// grouping starts), and aggregates by passenger + route.
func (service *dashboardService) bookingReportCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Booking Report"
	columns := []string{"Passenger", "Pickup", "Destination", "Bookings"}

	bookings, err := service.gateway.Bookings(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	flat := booking.Flatten(bookings)

	// two coordinate pairs per row: pickup at 2i, destination at 2i+1
	pairs := make([]ports.CoordinatePair, 0, 2*len(flat))
	for i := range flat {
		pairs = append(pairs, toPair(flat[i].Pickup), toPair(flat[i].Destination))
	}
	addresses := service.resolver.ResolveMany(ctx, pairs)

	rows := make([]bookingRow, 0, len(flat))
	for i := range flat {
		rows = append(rows, bookingRow{
			Booking:            flat[i],
			PickupAddress:      addresses[2*i],
			DestinationAddress: addresses[2*i+1],
		})
	}

	groups := report.GroupBy(rows,
		func(r bookingRow) string {
			name := strings.TrimSpace(r.PassengerName)
			if name == "" {
				return ""
			}
			return strings.ToLower(name) + "|" + r.PickupAddress + "|" + r.DestinationAddress
		},
		func(r bookingRow) (string, string) { return r.PassengerName, "" },
		report.NoMeasure[bookingRow],
	)

	cells := make([][]string, 0, len(groups))
	for _, g := range groups {
		rep := g.Members[0]
		cells = append(cells, []string{g.Label, rep.PickupAddress, rep.DestinationAddress, strconv.Itoa(g.Count)})
	}
	return title, columns, cells, nil
}

// violationReportCells aggregates violations per driver; records without a
// driver reference collapse into the reserved unknown group so the counts
// still reconcile with the raw collection.
func (service *dashboardService) violationReportCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Violation Report"
	columns := []string{"Driver", "Violations", "Latest Report"}

	violations, err := service.gateway.Violations(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	groups := report.GroupBy(violations,
		func(v driver.Violation) string { return v.Driver.Key() },
		func(v driver.Violation) (string, string) { return v.Driver.DisplayName(), v.Driver.Picture() },
		report.NoMeasure[driver.Violation],
	)

	cells := make([][]string, 0, len(groups))
	for _, g := range groups {
		var latest *time.Time
		for i := range g.Members {
			at := g.Members[i].ReportedAt
			if at != nil && (latest == nil || at.After(*latest)) {
				latest = at
			}
		}
		cells = append(cells, []string{g.Label, strconv.Itoa(g.Count), report.FallbackTime(latest)})
	}
	return title, columns, cells, nil
}

// TopDrivers ranks drivers by summed rating score. Ratings without a driver
// reference are excluded from the ranking; ties keep first-seen order so
// the list is reproducible across refetches.
func (service *dashboardService) TopDrivers(ctx context.Context, n int) (ports.TopDriversResult, error) {
	res := ports.TopDriversResult{Timestamp: service.now(), Entries: []ports.TopDriverEntry{}}
	if n < 1 {
		n = defaultTopN
	}

	ratings, err := service.gateway.Ratings(ctx)
	if err != nil {
		service.logger.Error(ctx, "top_drivers_fetch_failed", "Failed to fetch ratings for top drivers", err, nil)
		res.Error = fetchErrMsg
		return res, nil
	}

	groups := report.GroupBy(ratings,
		func(r driver.Rating) string { return r.Driver.Key() },
		func(r driver.Rating) (string, string) { return r.Driver.DisplayName(), r.Driver.Picture() },
		func(r driver.Rating) (float64, bool) { return r.Value() },
	)

	ranked := make([]*report.Aggregate[driver.Rating], 0, len(groups))
	for _, g := range groups {
		if g.Key != report.UnknownKey {
			ranked = append(ranked, g)
		}
	}

	for _, g := range report.TopN(ranked, n, report.BySum) {
		entry := ports.TopDriverEntry{
			DriverID:    g.Key,
			Name:        g.Label,
			ProfilePic:  g.Image,
			RatingSum:   g.Sum,
			RatingCount: g.Count,
		}
		if g.Count > 0 {
			entry.Average = g.Sum / float64(g.Count)
		}
		res.Entries = append(res.Entries, entry)
	}
	return res, nil
}

// RevenueSeries buckets subscription payments into a charting-ready series.
// Granularity defaults to monthly; from/to are inclusive calendar dates.
func (service *dashboardService) RevenueSeries(ctx context.Context, granularity, from, to string) (ports.RevenueSeriesResult, error) {
	g := report.GranularityMonthly
	if strings.TrimSpace(granularity) != "" {
		parsed, err := report.ParseGranularity(granularity)
		if err != nil {
			return ports.RevenueSeriesResult{}, err
		}
		g = parsed
	}

	window, err := parseWindow(from, to)
	if err != nil {
		return ports.RevenueSeriesResult{}, err
	}

	res := ports.RevenueSeriesResult{Granularity: g.String()}

	subscriptions, err := service.gateway.Subscriptions(ctx)
	if err != nil {
		service.logger.Error(ctx, "revenue_fetch_failed", "Failed to fetch subscriptions for revenue series", err, nil)
		res.Error = fetchErrMsg
		return res, nil
	}

	res.Series = report.BucketSeries(subscriptions, g, window,
		func(s driver.Subscription) (time.Time, bool) {
			if s.StartDate == nil {
				return time.Time{}, false
			}
			return *s.StartDate, true
		},
		func(s driver.Subscription) (float64, bool) {
			if s.Price == nil {
				return 0, false
			}
			return *s.Price, true
		},
	)
	return res, nil
}

// revenueCells renders the bucketed series as rows for document export.
func (service *dashboardService) revenueCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Revenue Report"
	columns := []string{"Period", "Revenue"}

	res, err := service.RevenueSeries(ctx, "", "", "")
	if err != nil {
		return title, columns, nil, err
	}
	if res.Error != "" {
		return title, columns, nil, errors.New(res.Error)
	}

	cells := make([][]string, 0, len(res.Series.Labels))
	for i, label := range res.Series.Labels {
		cells = append(cells, []string{label, strconv.FormatFloat(res.Series.Data[i], 'f', 2, 64)})
	}
	return title, columns, cells, nil
}

// topDriverCells renders the ranking as rows for document export; the
// prepended sequence number doubles as the rank.
func (service *dashboardService) topDriverCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Top Drivers"
	columns := []string{"Driver", "Ratings", "Total Score", "Average"}

	res, err := service.TopDrivers(ctx, defaultTopN)
	if err != nil {
		return title, columns, nil, err
	}
	if res.Error != "" {
		return title, columns, nil, errors.New(res.Error)
	}

	cells := make([][]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		cells = append(cells, []string{
			e.Name,
			strconv.Itoa(e.RatingCount),
			strconv.FormatFloat(e.RatingSum, 'f', 1, 64),
			strconv.FormatFloat(e.Average, 'f', 2, 64),
		})
	}
	return title, columns, cells, nil
}

func toPair(p *booking.GeoPoint) ports.CoordinatePair {
	if !p.Valid() {
		return ports.CoordinatePair{}
	}
	return ports.CoordinatePair{Latitude: *p.Latitude, Longitude: *p.Longitude, Valid: true}
}

// parseWindow turns optional YYYY-MM-DD bounds into an inclusive window.
func parseWindow(from, to string) (report.Window, error) {
	var w report.Window

	if s := strings.TrimSpace(from); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return report.Window{}, ErrInvalidWindow
		}
		w.From = t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return report.Window{}, ErrInvalidWindow
		}
		// inclusive through the end of the "to" day
		w.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	return w, nil
}
