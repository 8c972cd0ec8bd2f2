package repository

import (
	"context"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
