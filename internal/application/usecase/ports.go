package usecase

import (
	"context"

	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(items repository.ItemRepository, categories repository.CategoryRepository) error) error
}
