package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

func TestAsyncFlow_EncolarProcesarConsultar(t *testing.T) {
	stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 10})
	audits := newMemAudit()
	queue := &memQueue{}
	ctx := context.Background()

	dispatcher := inventory.NewAsyncDispatcher(queue, time.Second, zerolog.Nop())
	consumer := inventory.NewQueueConsumer(newCoordinator(stock), audits, zerolog.Nop())
	query := inventory.NewAuditQueryUseCase(audits, nil, zerolog.Nop())

	enq, err := dispatcher.Dispatch(ctx, []byte(oneItem))
	require.NoError(t, err)

	// Antes de consumir el mensaje no hay registro.
	_, err = query.Get(ctx, enq.CorrelationID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	for _, m := range queue.published() {
		require.NoError(t, consumer.Handle(ctx, inventory.QueueMessage{CorrelationID: m.correlationID, Body: m.payload}))
	}

	summary, err := query.Get(ctx, enq.CorrelationID)
	require.NoError(t, err)
	assert.Equal(t, enq.CorrelationID, summary.CorrelationID)
	assert.Equal(t, entity.BatchStatusCompleted, summary.Status)
	assert.Equal(t, 1, summary.ItemCount)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, "X", summary.Results[0].ItemID)
	assert.Equal(t, entity.ItemStatusSuccess, summary.Results[0].Status)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, 9, stock.get("X").AvailableStock)
}

func TestQueueConsumer_CuerpoInvalidoGeneraAuditoriaDeError(t *testing.T) {
	audits := newMemAudit()
	consumer := inventory.NewQueueConsumer(newCoordinator(newMemStock()), audits, zerolog.Nop())

	err := consumer.Handle(context.Background(), inventory.QueueMessage{CorrelationID: "c-bad", Body: []byte(`{not json`)})
	require.NoError(t, err)

	rec, _ := audits.GetByCorrelationID(context.Background(), "c-bad")
	require.NotNil(t, rec)
	assert.Equal(t, entity.BatchStatusError, rec.Status)
	assert.Equal(t, "Queue processing failed: Invalid JSON in queue message", rec.Message)
	assert.Zero(t, rec.ItemCount)
	assert.Empty(t, rec.Results)
}

func TestQueueConsumer_ArticulosFallidosDanParcial(t *testing.T) {
	stock := mixedStock()
	audits := newMemAudit()
	consumer := inventory.NewQueueConsumer(newCoordinator(stock), audits, zerolog.Nop())

	body := []byte(`[{"_id":"X","stockDetails":{"soldOut":1,"damaged":0}},{"_id":"Y","stockDetails":{"soldOut":9,"damaged":0}}]`)
	require.NoError(t, consumer.Handle(context.Background(), inventory.QueueMessage{CorrelationID: "c2", Body: body}))

	rec, _ := audits.GetByCorrelationID(context.Background(), "c2")
	require.NotNil(t, rec)
	assert.Equal(t, entity.BatchStatusPartial, rec.Status)
	assert.Equal(t, 2, rec.ItemCount)
	require.Len(t, rec.Results, 2)
	assert.Equal(t, "Y", rec.Results[1].ItemID)
	assert.Equal(t, entity.ItemStatusError, rec.Results[1].Status)
}

func TestQueueConsumer_SinCorrelationID(t *testing.T) {
	audits := newMemAudit()
	consumer := inventory.NewQueueConsumer(newCoordinator(mixedStock()), audits, zerolog.Nop())

	require.NoError(t, consumer.Handle(context.Background(), inventory.QueueMessage{Body: []byte(`[{"_id":"X","stockDetails":{"soldOut":1,"damaged":0}}]`)}))
	assert.Equal(t, 1, audits.len())
}

func TestQueueConsumer_FalloDeAuditoriaSePropaga(t *testing.T) {
	audits := newMemAudit()
	audits.insertErr = errStoreDown
	consumer := inventory.NewQueueConsumer(newCoordinator(mixedStock()), audits, zerolog.Nop())

	err := consumer.Handle(context.Background(), inventory.QueueMessage{CorrelationID: "c3", Body: []byte(`[]`)})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
}

func TestQueueConsumer_RedeliveryConservaElPrimerRegistro(t *testing.T) {
	stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 1})
	audits := newMemAudit()
	consumer := inventory.NewQueueConsumer(newCoordinator(stock), audits, zerolog.Nop())
	msg := inventory.QueueMessage{CorrelationID: "c4", Body: []byte(`[{"_id":"X","stockDetails":{"soldOut":1,"damaged":0}}]`)}

	require.NoError(t, consumer.Handle(context.Background(), msg))
	first, _ := audits.GetByCorrelationID(context.Background(), "c4")

	// La segunda entrega falla por stock, pero el registro original no cambia.
	require.NoError(t, consumer.Handle(context.Background(), msg))
	second, _ := audits.GetByCorrelationID(context.Background(), "c4")

	assert.Equal(t, entity.BatchStatusCompleted, second.Status)
	assert.Equal(t, first, second)
}

func TestQueueConsumer_ReintentarPersistNoReaplicaElLote(t *testing.T) {
	stock := newMemStock(entity.StockRecord{ItemID: "X", AvailableStock: 10})
	audits := newMemAudit()
	audits.insertErr = errStoreDown
	consumer := inventory.NewQueueConsumer(newCoordinator(stock), audits, zerolog.Nop())
	ctx := context.Background()

	record := consumer.Process(ctx, inventory.QueueMessage{
		CorrelationID: "c5",
		Body:          []byte(`[{"_id":"X","stockDetails":{"soldOut":3,"damaged":1}}]`),
	})
	require.Error(t, consumer.Persist(ctx, record))

	audits.insertErr = nil
	require.NoError(t, consumer.Persist(ctx, record))
	require.NoError(t, consumer.Persist(ctx, record), "la inserción es write-once")

	assert.Equal(t, 6, stock.get("X").AvailableStock)
	_, writes := stock.counts()
	assert.Equal(t, 1, writes)
	assert.Equal(t, 1, audits.len())
}
