package repository

import (
	"context"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// AuditRepository puerto de persistencia de AuditRecord (append-only).
type AuditRepository interface {
	// Insert es write-once por CorrelationID: si ya existe un registro devuelve inserted=false sin error.
	Insert(ctx context.Context, record *entity.AuditRecord) (inserted bool, err error)
	// GetByCorrelationID devuelve (nil, nil) si aún no existe.
	GetByCorrelationID(ctx context.Context, correlationID string) (*entity.AuditRecord, error)
}
