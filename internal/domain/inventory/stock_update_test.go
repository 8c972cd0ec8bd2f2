package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/inventory"
)

func TestApplyStockUpdate_DescuentaYAcumula(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	current := entity.StockRecord{ItemID: "X", AvailableStock: 10, SoldOut: 2, Damaged: 1}

	got, err := inventory.ApplyStockUpdate(current, entity.UpdateRequestItem{ItemID: "X", SoldOut: 3, Damaged: 1}, now)
	require.NoError(t, err)

	assert.Equal(t, 6, got.AvailableStock)
	assert.Equal(t, 5, got.SoldOut)
	assert.Equal(t, 2, got.Damaged)
	assert.Equal(t, now, got.LastUpdateDate)
	assert.Equal(t, 10, current.AvailableStock, "el registro original no debe mutar")
}

func TestApplyStockUpdate_ReduccionIgualAlDisponible(t *testing.T) {
	got, err := inventory.ApplyStockUpdate(
		entity.StockRecord{ItemID: "X", AvailableStock: 4},
		entity.UpdateRequestItem{ItemID: "X", SoldOut: 2, Damaged: 2},
		time.Now(),
	)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableStock)
}

func TestApplyStockUpdate_StockInsuficiente(t *testing.T) {
	current := entity.StockRecord{ItemID: "Y", AvailableStock: 2}

	got, err := inventory.ApplyStockUpdate(current, entity.UpdateRequestItem{ItemID: "Y", SoldOut: 5}, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Requested quantity exceeds available stock")
	assert.Equal(t, current, got)
}
