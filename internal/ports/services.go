package ports

import (
	"context"
	"errors"
	"strings"
	"time"

	"transit-admin/internal/domain/driver"
	"transit-admin/internal/domain/fare"
	"transit-admin/internal/domain/report"
)

// ----- Listing DTOs -----

// CollectionKind names one of the dashboard's listing screens.
type CollectionKind string

const (
	CollectionCommuters     CollectionKind = "commuters"
	CollectionDrivers       CollectionKind = "drivers"
	CollectionApplications  CollectionKind = "applications"
	CollectionSubscriptions CollectionKind = "subscriptions"
	CollectionViolations    CollectionKind = "violations"
	CollectionRatings       CollectionKind = "ratings"
	CollectionFares         CollectionKind = "fares"
	CollectionCancellations CollectionKind = "cancellations"
)

var ErrInvalidCollection = errors.New("invalid collection kind")

// ParseCollectionKind normalizes (lowercases+trims) and validates a collection name.
func ParseCollectionKind(in string) (CollectionKind, error) {
	kind := CollectionKind(strings.ToLower(strings.TrimSpace(in)))
	switch kind {
	case CollectionCommuters, CollectionDrivers, CollectionApplications, CollectionSubscriptions,
		CollectionViolations, CollectionRatings, CollectionFares, CollectionCancellations:
		return kind, nil
	default:
		return "", ErrInvalidCollection
	}
}

// String returns the string representation of the CollectionKind.
func (kind CollectionKind) String() string {
	return string(kind)
}

// ListQuery carries the client-side filter/paginate parameters of a listing screen.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string // case-insensitive substring match against display fields
}

// ListResult is the response DTO for all listing endpoints. On a fetch
// failure the table is empty and Error carries the inline message; the
// screen stays usable either way.
type ListResult struct {
	Table      report.Table `json:"table"`
	TotalCount int          `json:"total_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	Error      string       `json:"error,omitempty"`
}

// ----- Report DTOs -----

// ReportKind names one of the dashboard's report screens.
type ReportKind string

const (
	ReportBookings   ReportKind = "bookings"
	ReportViolations ReportKind = "violations"
	ReportTopDrivers ReportKind = "top-drivers"
	ReportRevenue    ReportKind = "revenue"
)

var ErrInvalidReport = errors.New("invalid report kind")

// ParseReportKind normalizes (lowercases+trims) and validates a report name.
func ParseReportKind(in string) (ReportKind, error) {
	kind := ReportKind(strings.ToLower(strings.TrimSpace(in)))
	switch kind {
	case ReportBookings, ReportViolations, ReportTopDrivers, ReportRevenue:
		return kind, nil
	default:
		return "", ErrInvalidReport
	}
}

// String returns the string representation of the ReportKind.
func (kind ReportKind) String() string {
	return string(kind)
}

// ReportResult is the response DTO for tabular report endpoints.
type ReportResult struct {
	Table      report.Table `json:"table"`
	TotalCount int          `json:"total_count"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	Error      string       `json:"error,omitempty"`
}

// TopDriverEntry is one ranked driver in the top-performers report.
type TopDriverEntry struct {
	DriverID    string  `json:"driver_id"`
	Name        string  `json:"name"`
	ProfilePic  string  `json:"profile_pic,omitempty"`
	RatingSum   float64 `json:"rating_sum"`
	RatingCount int     `json:"rating_count"`
	Average     float64 `json:"average"`
}

// TopDriversResult is the response DTO for GET /admin/reports/top-drivers.
// An empty Entries slice means "no data"; clients render that explicitly
// rather than an empty table.
type TopDriversResult struct {
	Timestamp time.Time        `json:"timestamp"`
	Entries   []TopDriverEntry `json:"entries"`
	Error     string           `json:"error,omitempty"`
}

// RevenueSeriesResult is the response DTO for GET /admin/reports/revenue.
type RevenueSeriesResult struct {
	Granularity string        `json:"granularity"`
	Series      report.Series `json:"series"`
	Error       string        `json:"error,omitempty"`
}

// ExportResult carries a rendered report document.
type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ----- Overview DTOs -----

// OverviewMetrics groups all numeric KPIs for the overview.
type OverviewMetrics struct {
	TotalCommuters       int     `json:"total_commuters"`
	TotalDrivers         int     `json:"total_drivers"`
	PendingApplications  int     `json:"pending_applications"`
	ActiveSubscriptions  int     `json:"active_subscriptions"`
	ExpiredSubscriptions int     `json:"expired_subscriptions"`
	OpenViolations       int     `json:"open_violations"`
	BookingsToday        int     `json:"bookings_today"`
	RevenueToday         float64 `json:"revenue_today"`
}

// OverviewResult is the top-level response DTO for GET /admin/overview and
// the payload pushed over the live WebSocket feed.
type OverviewResult struct {
	Timestamp time.Time       `json:"timestamp"`
	Metrics   OverviewMetrics `json:"metrics"`
	Errors    []string        `json:"errors,omitempty"`
}

// ----- Detail / action DTOs -----

// DriverProfileResult joins a driver with their ratings, violations, and
// subscription, all fetched concurrently. Partial fetch failures land in
// Errors without blanking the parts that did load.
type DriverProfileResult struct {
	Driver       driver.Driver        `json:"driver"`
	RatingCount  int                  `json:"rating_count"`
	RatingSum    float64              `json:"rating_sum"`
	Average      float64              `json:"average"`
	Violations   []driver.Violation   `json:"violations"`
	Subscription *driver.Subscription `json:"subscription,omitempty"`
	Errors       []string             `json:"errors,omitempty"`
}

// ActionResult is the response DTO for operator actions (approve/payment/fare).
type ActionResult struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ----- Dashboard Service Interface -----

// DashboardService exposes the listing, reporting, and action operations
// behind the operator dashboard.
type DashboardService interface {
	Overview(ctx context.Context) (OverviewResult, error)
	ListCollection(ctx context.Context, kind CollectionKind, q ListQuery) (ListResult, error)
	DriverProfile(ctx context.Context, driverID string) (DriverProfileResult, error)

	BookingReport(ctx context.Context, q ListQuery) (ReportResult, error)
	ViolationReport(ctx context.Context, q ListQuery) (ReportResult, error)
	TopDrivers(ctx context.Context, n int) (TopDriversResult, error)
	RevenueSeries(ctx context.Context, granularity, from, to string) (RevenueSeriesResult, error)
	ExportReport(ctx context.Context, kind ReportKind, format string) (ExportResult, error)

	ApproveApplication(ctx context.Context, applicationID, operatorID string) (ActionResult, error)
	AcceptPayment(ctx context.Context, subscriptionID, operatorID string) (ActionResult, error)
	UpdateFare(ctx context.Context, fareID string, update fare.Update, operatorID string) (ActionResult, error)
}
