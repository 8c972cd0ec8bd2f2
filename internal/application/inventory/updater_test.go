package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

func newUpdater(stock *memStock) *inventory.ItemUpdater {
	return inventory.NewItemUpdater(stock, time.Second, zerolog.Nop())
}

func TestItemUpdater_Exito(t *testing.T) {
	stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 10})

	res := newUpdater(stock).Update(context.Background(), entity.UpdateRequestItem{ItemID: "X", SoldOut: 3, Damaged: 1})

	assert.Equal(t, entity.ItemStatusSuccess, res.Status)
	assert.Equal(t, "X", res.ItemID)
	assert.Equal(t, "Inventory updated successfully for item X", res.Message)
	got := stock.get("X")
	assert.Equal(t, 6, got.AvailableStock)
	assert.Equal(t, 3, got.SoldOut)
	assert.Equal(t, 1, got.Damaged)
	assert.False(t, got.LastUpdateDate.IsZero())

	reads, writes := stock.counts()
	assert.Equal(t, 1, reads)
	assert.Equal(t, 1, writes)
}

func TestItemUpdater_StockInsuficienteNoEscribe(t *testing.T) {
	stock := newMemStock(entity.StockRecord{ItemID: "Y", AvailableStock: 2})

	res := newUpdater(stock).Update(context.Background(), entity.UpdateRequestItem{ItemID: "Y", SoldOut: 5})

	assert.Equal(t, entity.ItemStatusError, res.Status)
	assert.Equal(t, "Requested quantity exceeds available stock for item ID: Y", res.Message)
	assert.Equal(t, 2, stock.get("Y").AvailableStock)
	reads, writes := stock.counts()
	assert.Equal(t, 1, reads)
	assert.Zero(t, writes)
}

func TestItemUpdater_NoEncontrado(t *testing.T) {
	stock := newMemStock()

	res := newUpdater(stock).Update(context.Background(), entity.UpdateRequestItem{ItemID: "Z", SoldOut: 1})

	assert.Equal(t, entity.ItemStatusError, res.Status)
	assert.Equal(t, "Item not found for ID: Z", res.Message)
	_, writes := stock.counts()
	assert.Zero(t, writes)
}

func TestItemUpdater_FallosDelStore(t *testing.T) {
	t.Run("lectura", func(t *testing.T) {
		stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 10})
		stock.readErr = errStoreDown

		res := newUpdater(stock).Update(context.Background(), entity.UpdateRequestItem{ItemID: "X", SoldOut: 1})

		assert.Equal(t, entity.ItemStatusError, res.Status)
		assert.Contains(t, res.Message, "Failed to read stock for item ID: X")
	})
	t.Run("escritura", func(t *testing.T) {
		stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 10})
		stock.writeErr = errStoreDown

		res := newUpdater(stock).Update(context.Background(), entity.UpdateRequestItem{ItemID: "X", SoldOut: 1})

		assert.Equal(t, entity.ItemStatusError, res.Status)
		assert.Contains(t, res.Message, "Failed to persist stock for item ID: X")
		assert.Equal(t, 10, stock.get("X").AvailableStock)
	})
}
