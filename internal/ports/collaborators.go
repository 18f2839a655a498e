package ports

import (
	"context"

	"transit-admin/internal/domain/booking"
	"transit-admin/internal/domain/commuter"
	"transit-admin/internal/domain/driver"
	"transit-admin/internal/domain/fare"
)

// PlatformGateway is the HTTP boundary to the platform's backend services.
// Collection calls return the full remote snapshot; filtering, sorting, and
// pagination happen on our side against that snapshot. Action calls mutate
// remote state and succeed only on a confirmed 2xx.
type PlatformGateway interface {
	Commuters(ctx context.Context) ([]commuter.Commuter, error)
	Drivers(ctx context.Context) ([]driver.Driver, error)
	Applications(ctx context.Context) ([]driver.Application, error)
	Subscriptions(ctx context.Context) ([]driver.Subscription, error)
	Violations(ctx context.Context) ([]driver.Violation, error)
	Ratings(ctx context.Context) ([]driver.Rating, error)
	Fares(ctx context.Context) ([]fare.Fare, error)
	Cancellations(ctx context.Context) ([]booking.Cancellation, error)
	Bookings(ctx context.Context) ([]booking.Booking, error)

	ApproveApplication(ctx context.Context, applicationID string) error
	AcceptPayment(ctx context.Context, subscriptionID string) error
	UpdateFare(ctx context.Context, fareID string, update fare.Update) error
}

// CoordinatePair is one input to batch address resolution. Valid is false
// when the source record had no usable coordinates; such pairs resolve
// straight to the fallback address without a network call.
type CoordinatePair struct {
	Latitude  float64
	Longitude float64
	Valid     bool
}

// AddressResolver turns coordinate pairs into human-readable locality
// strings. Implementations never return an error: every failure mode
// yields the fallback address string instead.
type AddressResolver interface {
	Resolve(ctx context.Context, latitude, longitude float64) string
	ResolveMany(ctx context.Context, pairs []CoordinatePair) []string
}

// DocumentExporter renders a titled tabular report into a downloadable
// document. The core depends only on this rows-in/document-out contract,
// not on any rendering internals.
type DocumentExporter interface {
	Render(title string, columns []string, rows [][]string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// EventPublisher publishes operator action events to the message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}
