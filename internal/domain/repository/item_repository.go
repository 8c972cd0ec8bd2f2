package repository

import (
	"context"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para los documentos de artículo.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Delete(ctx context.Context, id string) error
	// ListByCategory devuelve los artículos de la categoría; excluye los especiales si includeSpecial es false.
	// Devuelve (nil, nil) si la categoría no existe.
	ListByCategory(ctx context.Context, categoryID string, includeSpecial bool) (*entity.CategoryItems, error)
}
