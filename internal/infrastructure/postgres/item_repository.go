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

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category_id, base_price, selling_price, available_stock, sold_out, damaged,
	unit_of_measure, special_product, reviews, last_update_date`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo con su stock inicial.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	reviews := item.Reviews
	if reviews == nil {
		reviews = []entity.Review{}
	}
	query := `INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.CategoryID, item.Price.BasePrice, item.Price.SellingPrice,
		item.Stock.AvailableStock, item.Stock.SoldOut, item.Stock.Damaged, item.Stock.UnitOfMeasure,
		item.SpecialProduct, reviews, item.LastUpdateDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrDuplicate, "Item already exists")
		}
		if isForeignKeyViolation(err) {
			return domain.NewValidationError(domain.ValidationMissingField, "Category is invalid")
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Delete elimina un artículo.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrNotFound, "Item not found")
	}
	return nil
}

// ListByCategory lista los artículos de la categoría ordenados por ID.
func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID string, includeSpecial bool) (*entity.CategoryItems, error) {
	var out entity.CategoryItems
	err := r.q.QueryRow(ctx, `SELECT name, department FROM categories WHERE id = $1`, categoryID).
		Scan(&out.CategoryName, &out.CategoryDepartment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items
		WHERE category_id = $1 AND ($2 OR NOT special_product)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, categoryID, includeSpecial)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out.Items = append(out.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &out, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.CategoryID, &it.Price.BasePrice, &it.Price.SellingPrice,
		&it.Stock.AvailableStock, &it.Stock.SoldOut, &it.Stock.Damaged, &it.Stock.UnitOfMeasure,
		&it.SpecialProduct, &it.Reviews, &it.LastUpdateDate,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}
