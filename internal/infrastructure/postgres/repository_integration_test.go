package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-stock-api/pkg/config"
)

// Requiere TEST_DATABASE_URL apuntando a una base desechable.
func setupDB(t *testing.T) postgres.Querier {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido, se omiten pruebas de integración")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url}, 1)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	return pool
}

func seedItem(t *testing.T, q postgres.Querier, stock int) (categoryID, itemID string) {
	t.Helper()
	ctx := context.Background()
	categoryID = "cat-" + uuid.NewString()
	itemID = "item-" + uuid.NewString()
	require.NoError(t, postgres.NewCategoryRepository(q).Create(ctx, &entity.Category{ID: categoryID, Name: "Bebidas"}))
	require.NoError(t, postgres.NewItemRepository(q).Create(ctx, &entity.Item{
		ID:         itemID,
		Name:       "Agua",
		CategoryID: categoryID,
		Price: entity.ItemPrice{
			BasePrice:    decimal.RequireFromString("1000.00"),
			SellingPrice: decimal.RequireFromString("1500.50"),
		},
		Stock:          entity.StockDetails{AvailableStock: stock, UnitOfMeasure: "unidad"},
		Reviews:        []entity.Review{{Rating: 4, Comment: "ok"}},
		LastUpdateDate: time.Now().UTC(),
	}))
	return categoryID, itemID
}

func TestItemAndStockRepositories(t *testing.T) {
	q := setupDB(t)
	ctx := context.Background()
	categoryID, itemID := seedItem(t, q, 10)

	items := postgres.NewItemRepository(q)
	got, err := items.GetByID(ctx, itemID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.SellingPrice.Equal(decimal.RequireFromString("1500.5")))
	assert.Equal(t, []entity.Review{{Rating: 4, Comment: "ok"}}, got.Reviews)

	stock := postgres.NewStockRepository(q)
	rec, err := stock.GetStock(ctx, itemID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	rec.AvailableStock, rec.SoldOut, rec.Damaged = 6, 3, 1
	require.NoError(t, stock.SaveStock(ctx, rec))

	rec, err = stock.GetStock(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, 6, rec.AvailableStock)
	assert.Equal(t, 3, rec.SoldOut)

	missing, err := stock.GetStock(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.True(t, errors.Is(stock.SaveStock(ctx, &entity.StockRecord{ItemID: "no-existe"}), domain.ErrNotFound))

	list, err := items.ListByCategory(ctx, categoryID, false)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	assert.True(t, errors.Is(postgres.NewCategoryRepository(q).Delete(ctx, categoryID), domain.ErrDuplicate))
	require.NoError(t, items.Delete(ctx, itemID))
	require.NoError(t, postgres.NewCategoryRepository(q).Delete(ctx, categoryID))
}

func TestAuditRepository_WriteOnce(t *testing.T) {
	q := setupDB(t)
	ctx := context.Background()
	repo := postgres.NewAuditRepository(q)
	corr := uuid.NewString()
	first := &entity.AuditRecord{
		ID:            uuid.NewString(),
		CorrelationID: corr,
		Timestamp:     time.Now().UTC().Truncate(time.Microsecond),
		ItemCount:     1,
		Status:        entity.BatchStatusCompleted,
		Results:       []entity.ItemResult{{ItemID: "X", Status: entity.ItemStatusSuccess, Message: "ok"}},
	}

	inserted, err := repo.Insert(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	dup := *first
	dup.ID = uuid.NewString()
	dup.Status = entity.BatchStatusError
	inserted, err = repo.Insert(ctx, &dup)
	require.NoError(t, err)
	assert.False(t, inserted)

	got, err := repo.GetByCorrelationID(ctx, corr)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, entity.BatchStatusCompleted, got.Status)
	assert.Equal(t, first.Results, got.Results)
	assert.True(t, first.Timestamp.Equal(got.Timestamp))
}
