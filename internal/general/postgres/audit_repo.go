package postgres

import (
	"context"
	"time"

	"transit-admin/internal/ports"
)

// AuditRepo persists the operator action log using pgx and plain SQL.
type AuditRepo struct{}

// NewAuditRepo constructs a new AuditRepo.
func NewAuditRepo() ports.AuditRepository {
	return &AuditRepo{}
}

// Record appends one operator action to the audit log.
func (repo *AuditRepo) Record(ctx context.Context, entry ports.AuditEntry) error {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return err
	}

	occurredAt := entry.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO audit_log (operator_id, action, subject_id, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.OperatorID, entry.Action, entry.SubjectID, entry.Details, occurredAt)
	if err != nil {
		return err
	}

	return nil
}

// ListRecent returns the most recent audit entries, newest first.
func (repo *AuditRepo) ListRecent(ctx context.Context, limit int) ([]ports.AuditEntry, error) {
	tx, err := MustTxFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := tx.Query(ctx, `
		SELECT operator_id, action, subject_id, details, occurred_at
		FROM audit_log
		ORDER BY occurred_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.AuditEntry
	for rows.Next() {
		var e ports.AuditEntry
		if err := rows.Scan(&e.OperatorID, &e.Action, &e.SubjectID, &e.Details, &e.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
