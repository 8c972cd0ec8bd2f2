package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// Modos de ejecución de un lote.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// QueuePublisher encola un lote serializado etiquetado con su token de correlación.
type QueuePublisher interface {
	Publish(ctx context.Context, correlationID string, payload []byte) error
}

// AuditCache caché de lectura de registros de auditoría. Los registros son inmutables,
// por lo que no hay invalidación.
type AuditCache interface {
	// Get devuelve (nil, nil) si no está en caché.
	Get(ctx context.Context, correlationID string) (*entity.AuditRecord, error)
	Set(ctx context.Context, record *entity.AuditRecord) error
}

// BatchObserver recibe métricas del pipeline (Prometheus en producción).
type BatchObserver interface {
	ObserveItem(mode string, result entity.ItemResult)
	ObserveBatch(mode, status string, size int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveItem(string, entity.ItemResult) {}
func (nopObserver) ObserveBatch(string, string, int, time.Duration) {}
