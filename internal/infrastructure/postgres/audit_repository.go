package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo registros de auditoría de lotes asíncronos (append-only).
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Insert guarda el registro si no existe otro con el mismo correlation_id.
func (r *AuditRepo) Insert(ctx context.Context, a *entity.AuditRecord) (bool, error) {
	results := a.Results
	if results == nil {
		results = []entity.ItemResult{}
	}
	query := `
		INSERT INTO inventory_audit (id, correlation_id, status, message, item_count, results, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (correlation_id) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		a.ID, a.CorrelationID, a.Status, a.Message, a.ItemCount, results, a.Timestamp,
	)
	if err != nil {
		return false, fmt.Errorf("insert audit: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *AuditRepo) GetByCorrelationID(ctx context.Context, correlationID string) (*entity.AuditRecord, error) {
	query := `
		SELECT id, correlation_id, status, message, item_count, results, created_at
		FROM inventory_audit WHERE correlation_id = $1`
	var a entity.AuditRecord
	err := r.q.QueryRow(ctx, query, correlationID).Scan(
		&a.ID, &a.CorrelationID, &a.Status, &a.Message, &a.ItemCount, &a.Results, &a.Timestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get audit: %w", err)
	}
	a.Timestamp = a.Timestamp.UTC()
	return &a, nil
}
