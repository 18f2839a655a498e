package ports

import (
	"context"
	"time"
)

// UnitOfWork interface is used to manage transactions across multiple repository operations.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditEntry is one operator action recorded in the local audit log.
type AuditEntry struct {
	OperatorID string
	Action     string // e.g. application_approved, payment_accepted, fare_updated
	SubjectID  string // the platform record the action targeted
	Details    string // free-form JSON payload with action specifics
	OccurredAt time.Time
}

// AuditRepository defines the methods for recording operator actions.
type AuditRepository interface {
	Record(ctx context.Context, entry AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]AuditEntry, error)
}

// PaymentReceipt is the local record of an accepted subscription payment.
type PaymentReceipt struct {
	ID             string
	SubscriptionID string
	DriverID       string
	OperatorID     string
	Amount         float64
	AcceptedAt     time.Time
}

// ReceiptRepository defines the methods for storing payment receipts.
type ReceiptRepository interface {
	Save(ctx context.Context, receipt PaymentReceipt) (string, error)
}
