package service

import (
	"context"
	"strings"

	"transit-admin/internal/domain/report"
	"transit-admin/internal/ports"
)

// ListCollection renders one page of a listing screen. Search filters the
// full snapshot before pagination, so page numbers refer to the filtered
// set. A platform fetch failure yields an empty table with an inline error
// message rather than a failed request.
func (service *dashboardService) ListCollection(ctx context.Context, kind ports.CollectionKind, q ports.ListQuery) (ports.ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	res := ports.ListResult{Page: q.Page, PageSize: q.PageSize}

	title, columns, cells, err := service.collectionCells(ctx, kind)
	if err != nil {
		if err == ports.ErrInvalidCollection {
			return ports.ListResult{}, err
		}
		service.logger.Error(ctx, "listing_fetch_failed", "Failed to fetch "+kind.String()+" listing", err, nil)
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

// collectionCells fetches one collection and projects it to display cells.
// The returned title/columns are valid even when the fetch errors, so the
// caller can still render an empty table for the screen.
func (service *dashboardService) collectionCells(ctx context.Context, kind ports.CollectionKind) (title string, columns []string, cells [][]string, err error) {
	switch kind {
	case ports.CollectionCommuters:
		return service.commuterCells(ctx)
	case ports.CollectionDrivers:
		return service.driverCells(ctx)
	case ports.CollectionApplications:
		return service.applicationCells(ctx)
	case ports.CollectionSubscriptions:
		return service.subscriptionCells(ctx)
	case ports.CollectionViolations:
		return service.violationCells(ctx)
	case ports.CollectionRatings:
		return service.ratingCells(ctx)
	case ports.CollectionFares:
		return service.fareCells(ctx)
	case ports.CollectionCancellations:
		return service.cancellationCells(ctx)
	default:
		return "", nil, nil, ports.ErrInvalidCollection
	}
}

func (service *dashboardService) commuterCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Commuters"
	columns := []string{"Name", "Email", "Phone", "Status", "Registered"}

	list, err := service.gateway.Commuters(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	cells := make([][]string, 0, len(list))
	for _, c := range list {
		cells = append(cells, []string{c.Name, c.Email, c.Phone, c.Status, report.FallbackTime(c.RegisteredAt)})
	}
	return title, columns, cells, nil
}

func (service *dashboardService) driverCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Drivers"
	columns := []string{"Name", "Email", "Phone", "Vehicle Type", "Plate Number", "Status", "Joined"}

	list, err := service.gateway.Drivers(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	cells := make([][]string, 0, len(list))
	for _, d := range list {
		cells = append(cells, []string{d.Name, d.Email, d.Phone, d.VehicleType, d.PlateNumber, d.Status, report.FallbackTime(d.JoinedAt)})
	}
	return title, columns, cells, nil
}

func (service *dashboardService) applicationCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Driver Applications"
	columns := []string{"ID", "Applicant", "Email", "Phone", "Vehicle Type", "Plate Number", "License", "Status", "Submitted"}

	list, err := service.gateway.Applications(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	cells := make([][]string, 0, len(list))
	for _, a := range list {
		cells = append(cells, []string{a.ID, a.ApplicantName, a.Email, a.Phone, a.VehicleType, a.PlateNumber, a.LicenseNumber, a.Status, report.FallbackTime(a.SubmittedAt)})
	}
	return title, columns, cells, nil
}

func (service *dashboardService) subscriptionCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Subscriptions"
	columns := []string{"ID", "Driver", "Vehicle Type", "Subscription", "Start Date", "End Date", "Status", "Price"}

	list, err := service.gateway.Subscriptions(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	now := service.now()
	cells := make([][]string, 0, len(list))
	for i := range list {
		s := list[i]
		// status shown is the computed one; the stored string may lag expiry
		cells = append(cells, []string{
			s.ID, s.Driver.DisplayName(), s.VehicleType, s.SubscriptionType,
			report.FallbackTime(s.StartDate), report.FallbackTime(s.EndDate),
			string(s.EffectiveStatus(now)), report.FallbackFloat(s.Price, 2),
		})
	}
	return title, columns, cells, nil
}

func (service *dashboardService) violationCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Violations"
	columns := []string{"Driver", "Reported By", "Booking", "Report", "Description", "Date"}

	list, err := service.gateway.Violations(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	cells := make([][]string, 0, len(list))
	for i := range list {
		v := list[i]
		cells = append(cells, []string{v.Driver.DisplayName(), v.ReporterName(), v.BookingID, v.Report, v.Description, report.FallbackTime(v.ReportedAt)})
	}
	return title, columns, cells, nil
}

func (service *dashboardService) ratingCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Ratings"
	columns := []string{"Driver", "Booking", "Rating", "Comment", "Date"}

	list, err := service.gateway.Ratings(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	cells := make([][]string, 0, len(list))
	for i := range list {
		r := list[i]
		cells = append(cells, []string{r.Driver.DisplayName(), r.BookingID, report.FallbackFloat(r.Rating, 1), r.Comment, report.FallbackTime(r.RatedAt)})
	}
	return title, columns, cells, nil
}

func (service *dashboardService) fareCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Fare Settings"
	columns := []string{"ID", "Vehicle Type", "Base Fare", "Per KM", "Per Minute", "Updated"}

	list, err := service.gateway.Fares(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	cells := make([][]string, 0, len(list))
	for _, f := range list {
		cells = append(cells, []string{
			f.ID, f.VehicleType,
			report.FallbackFloat(f.BaseFare, 2), report.FallbackFloat(f.PerKM, 2), report.FallbackFloat(f.PerMinute, 2),
			report.FallbackTime(f.UpdatedAt),
		})
	}
	return title, columns, cells, nil
}

func (service *dashboardService) cancellationCells(ctx context.Context) (string, []string, [][]string, error) {
	title := "Cancelled Bookings"
	columns := []string{"Passenger", "Driver", "Reason", "Cancelled At"}

	list, err := service.gateway.Cancellations(ctx)
	if err != nil {
		return title, columns, nil, err
	}

	cells := make([][]string, 0, len(list))
	for _, c := range list {
		cells = append(cells, []string{c.PassengerName, c.DriverName, c.Reason, report.FallbackTime(c.CancelledAt)})
	}
	return title, columns, cells, nil
}

// filterCells keeps rows where any cell contains the query, case-insensitively.
func filterCells(cells [][]string, search string) [][]string {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return cells
	}

	out := make([][]string, 0, len(cells))
	for _, row := range cells {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), search) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
