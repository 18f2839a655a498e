package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"transit-admin/internal/domain/booking"
	"transit-admin/internal/domain/commuter"
	"transit-admin/internal/domain/driver"
	"transit-admin/internal/domain/fare"
	"transit-admin/internal/general/export"
	"transit-admin/internal/general/geocode"
	"transit-admin/internal/general/logger"
	"transit-admin/internal/ports"
)

// ----- fakes -----

var errBackend = errors.New("backend unavailable")

// fakeGateway serves canned collections; any name listed in failing errors.
type fakeGateway struct {
	commuters     []commuter.Commuter
	drivers       []driver.Driver
	applications  []driver.Application
	subscriptions []driver.Subscription
	violations    []driver.Violation
	ratings       []driver.Rating
	fares         []fare.Fare
	cancellations []booking.Cancellation
	bookings      []booking.Booking

	failing map[string]bool

	mu      sync.Mutex
	actions []string
}

func (g *fakeGateway) err(name string) error {
	if g.failing[name] {
		return errBackend
	}
	return nil
}

func (g *fakeGateway) Commuters(ctx context.Context) ([]commuter.Commuter, error) {
	return g.commuters, g.err("commuters")
}
func (g *fakeGateway) Drivers(ctx context.Context) ([]driver.Driver, error) {
	return g.drivers, g.err("drivers")
}
func (g *fakeGateway) Applications(ctx context.Context) ([]driver.Application, error) {
	return g.applications, g.err("applications")
}
func (g *fakeGateway) Subscriptions(ctx context.Context) ([]driver.Subscription, error) {
	return g.subscriptions, g.err("subscriptions")
}
func (g *fakeGateway) Violations(ctx context.Context) ([]driver.Violation, error) {
	return g.violations, g.err("violations")
}
func (g *fakeGateway) Ratings(ctx context.Context) ([]driver.Rating, error) {
	return g.ratings, g.err("ratings")
}
func (g *fakeGateway) Fares(ctx context.Context) ([]fare.Fare, error) {
	return g.fares, g.err("fares")
}
func (g *fakeGateway) Cancellations(ctx context.Context) ([]booking.Cancellation, error) {
	return g.cancellations, g.err("cancellations")
}
func (g *fakeGateway) Bookings(ctx context.Context) ([]booking.Booking, error) {
	return g.bookings, g.err("bookings")
}

func (g *fakeGateway) act(name string) error {
	if g.failing[name] {
		return errBackend
	}
	g.mu.Lock()
	g.actions = append(g.actions, name)
	g.mu.Unlock()
	return nil
}

func (g *fakeGateway) ApproveApplication(ctx context.Context, applicationID string) error {
	return g.act("approve")
}
func (g *fakeGateway) AcceptPayment(ctx context.Context, subscriptionID string) error {
	return g.act("payment")
}
func (g *fakeGateway) UpdateFare(ctx context.Context, fareID string, update fare.Update) error {
	return g.act("fare")
}

// fakeResolver labels valid pairs deterministically, no network involved.
type fakeResolver struct{}

func (fakeResolver) Resolve(ctx context.Context, latitude, longitude float64) string {
	return fmt.Sprintf("Addr(%.1f,%.1f)", latitude, longitude)
}

func (r fakeResolver) ResolveMany(ctx context.Context, pairs []ports.CoordinatePair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		if !p.Valid {
			out[i] = geocode.FallbackAddress
			continue
		}
		out[i] = r.Resolve(ctx, p.Latitude, p.Longitude)
	}
	return out
}

// fakeUOW runs the function without a real transaction.
type fakeUOW struct{ err error }

func (u *fakeUOW) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.err != nil {
		return u.err
	}
	return fn(ctx)
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (r *fakeAuditRepo) Record(ctx context.Context, entry ports.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRepo) ListRecent(ctx context.Context, limit int) ([]ports.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries, nil
}

type fakeReceiptRepo struct {
	mu       sync.Mutex
	receipts []ports.PaymentReceipt
}

func (r *fakeReceiptRepo) Save(ctx context.Context, receipt ports.PaymentReceipt) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipts = append(r.receipts, receipt)
	return fmt.Sprintf("rcpt-%d", len(r.receipts)), nil
}

type published struct {
	exchange   string
	routingKey string
	body       []byte
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *fakePublisher) Publish(exchange, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{exchange, routingKey, body})
	return nil
}

// ----- fixture -----

type fixture struct {
	gateway   *fakeGateway
	audit     *fakeAuditRepo
	receipts  *fakeReceiptRepo
	publisher *fakePublisher
	svc       ports.DashboardService
}

var fixedNow = time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

func newFixture(gateway *fakeGateway) *fixture {
	f := &fixture{
		gateway:   gateway,
		audit:     &fakeAuditRepo{},
		receipts:  &fakeReceiptRepo{},
		publisher: &fakePublisher{},
	}

	svc := NewDashboardService(
		gateway, fakeResolver{},
		map[string]ports.DocumentExporter{"csv": export.NewCSVExporter()},
		&fakeUOW{}, f.audit, f.receipts, f.publisher,
		logger.New("dashboard-test"),
	).(*dashboardService)
	svc.now = func() time.Time { return fixedNow }

	f.svc = svc
	return f
}

// ----- shared test data helpers -----

func fptr(v float64) *float64 { return &v }

func tptr(t time.Time) *time.Time { return &t }

func ref(id, name string) *driver.Ref { return &driver.Ref{ID: id, Name: name} }

func gpoint(lat, lng float64) *booking.GeoPoint {
	return &booking.GeoPoint{Latitude: fptr(lat), Longitude: fptr(lng)}
}
