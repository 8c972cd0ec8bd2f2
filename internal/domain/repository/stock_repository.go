package repository

import (
	"context"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// StockRepository puerto del libro de stock: lee y reescribe el stock de un artículo.
// No hay bloqueo entre artículos ni entre lotes (read-modify-write optimista).
type StockRepository interface {
	// GetStock devuelve (nil, nil) si el artículo no existe.
	GetStock(ctx context.Context, itemID string) (*entity.StockRecord, error)
	// SaveStock reescribe el stock del artículo; domain.ErrNotFound si ya no existe.
	SaveStock(ctx context.Context, record *entity.StockRecord) error
}
