package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

func TestSyncUpdate_LoteParcial(t *testing.T) {
	stock := newMemStock(
		entity.StockRecord{ItemID: "X", AvailableStock: 10},
		entity.StockRecord{ItemID: "Y", AvailableStock: 2},
	)
	uc := inventory.NewSyncUpdateUseCase(newCoordinator(stock), zerolog.Nop())

	resp, err := uc.Execute(context.Background(), []byte(`{"items":[
		{"_id":"X","stockDetails":{"soldOut":3,"damaged":1}},
		{"_id":"Y","stockDetails":{"soldOut":5,"damaged":0}}
	]}`))

	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusPartial, resp.Status)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "X", resp.Results[0].ItemID)
	assert.Equal(t, entity.ItemStatusSuccess, resp.Results[0].Status)
	assert.Equal(t, "Y", resp.Results[1].ItemID)
	assert.Equal(t, entity.ItemStatusError, resp.Results[1].Status)
	assert.Contains(t, resp.Results[1].Message, "Requested quantity exceeds available stock")

	assert.Equal(t, 6, stock.get("X").AvailableStock)
	assert.Equal(t, 2, stock.get("Y").AvailableStock)
}

func TestSyncUpdate_Completo(t *testing.T) {
	stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 10})
	uc := inventory.NewSyncUpdateUseCase(newCoordinator(stock), zerolog.Nop())

	resp, err := uc.Execute(context.Background(), []byte(`{"items":[{"_id":"X","stockDetails":{"soldOut":10,"damaged":0}}]}`))

	require.NoError(t, err)
	assert.Equal(t, entity.BatchStatusCompleted, resp.Status)
	assert.Equal(t, 0, stock.get("X").AvailableStock)
}

func TestSyncUpdate_PayloadInvalidoNoTocaElStore(t *testing.T) {
	stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 10})
	uc := inventory.NewSyncUpdateUseCase(newCoordinator(stock), zerolog.Nop())

	for _, body := range []string{`{"foo":1}`, `{"items":[]}`, `{`, `{"items":"X"}`} {
		resp, err := uc.Execute(context.Background(), []byte(body))
		require.Error(t, err, body)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
	reads, writes := stock.counts()
	assert.Zero(t, reads)
	assert.Zero(t, writes)
}
