package postgres

import (
	"context"
	"time"

	"transit-admin/internal/ports"
)

// ReceiptRepo persists payment receipts using pgx and plain SQL.
type ReceiptRepo struct{}

// NewReceiptRepo constructs a new ReceiptRepo.
func NewReceiptRepo() ports.ReceiptRepository {
	return &ReceiptRepo{}
}

// Save stores one accepted-payment receipt and returns its id.
func (repo *ReceiptRepo) Save(ctx context.Context, receipt ports.PaymentReceipt) (string, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return "", err
	}

	acceptedAt := receipt.AcceptedAt
	if acceptedAt.IsZero() {
		acceptedAt = time.Now().UTC()
	}

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO payment_receipts (subscription_id, driver_id, operator_id, amount, accepted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, receipt.SubscriptionID, receipt.DriverID, receipt.OperatorID, receipt.Amount, acceptedAt).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}
