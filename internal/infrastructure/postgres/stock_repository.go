package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo libro de stock sobre las columnas de stock de items (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetStock obtiene el stock actual de un artículo. Sin bloqueo de fila.
func (r *StockRepo) GetStock(ctx context.Context, itemID string) (*entity.StockRecord, error) {
	query := `
		SELECT id, available_stock, sold_out, damaged, last_update_date
		FROM items WHERE id = $1`
	var s entity.StockRecord
	err := r.q.QueryRow(ctx, query, itemID).Scan(
		&s.ItemID, &s.AvailableStock, &s.SoldOut, &s.Damaged, &s.LastUpdateDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// SaveStock reescribe el stock completo del artículo. ErrNotFound si el artículo se borró entre la lectura y la escritura.
func (r *StockRepo) SaveStock(ctx context.Context, s *entity.StockRecord) error {
	query := `
		UPDATE items
		SET available_stock = $2, sold_out = $3, damaged = $4, last_update_date = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ItemID, s.AvailableStock, s.SoldOut, s.Damaged, s.LastUpdateDate)
	if err != nil {
		return fmt.Errorf("save stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
