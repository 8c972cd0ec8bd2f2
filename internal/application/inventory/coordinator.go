package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// DefaultWorkers paralelismo del camino asíncrono cuando no se configura.
const DefaultWorkers = 5

// BatchCoordinator reparte un lote en unidades independientes por artículo (validación + actualización),
// aísla los fallos de cada una y agrega un ItemResult por artículo, en el orden de entrada.
type BatchCoordinator struct {
	updater  *ItemUpdater
	workers  int
	observer BatchObserver
	log      zerolog.Logger
}

// CoordinatorOption configura el coordinador.
type CoordinatorOption func(*BatchCoordinator)

// WithWorkers fija el máximo de artículos procesados en paralelo en RunConcurrent.
func WithWorkers(n int) CoordinatorOption {
	return func(c *BatchCoordinator) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithObserver registra el observador de métricas.
func WithObserver(o BatchObserver) CoordinatorOption {
	return func(c *BatchCoordinator) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewBatchCoordinator construye el coordinador.
func NewBatchCoordinator(updater *ItemUpdater, log zerolog.Logger, opts ...CoordinatorOption) *BatchCoordinator {
	c := &BatchCoordinator{
		updater:  updater,
		workers:  DefaultWorkers,
		observer: nopObserver{},
		log:      log.With().Str("component", "batch_coordinator").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunSequential procesa los artículos uno tras otro (camino síncrono): cada ciclo
// lectura/validación/escritura termina antes de empezar el siguiente.
func (c *BatchCoordinator) RunSequential(ctx context.Context, items []RawItem) entity.BatchResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "inventory.batch")
	defer span.End()
	span.SetAttributes(attribute.String("batch.mode", ModeSync), attribute.Int("batch.size", len(items)))

	start := time.Now()
	ctx = context.WithoutCancel(ctx)
	results := make([]entity.ItemResult, len(items))
	for i, raw := range items {
		results[i] = c.processItem(ctx, ModeSync, raw)
	}
	return c.finish(ModeSync, results, start)
}

// RunConcurrent procesa los artículos con paralelismo acotado (camino de la cola).
// Cada unidad escribe en su propia posición del acumulador, así el orden del resultado
// coincide con el de entrada aunque las unidades terminen en otro orden.
func (c *BatchCoordinator) RunConcurrent(ctx context.Context, items []RawItem) entity.BatchResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "inventory.batch")
	defer span.End()
	span.SetAttributes(
		attribute.String("batch.mode", ModeAsync),
		attribute.Int("batch.size", len(items)),
		attribute.Int("batch.workers", c.workers),
	)

	start := time.Now()
	// Un lote iniciado corre hasta el final: la cancelación del llamador no interrumpe artículos.
	ctx = context.WithoutCancel(ctx)
	results := make([]entity.ItemResult, len(items))

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, raw := range items {
		g.Go(func() error {
			results[i] = c.processItem(ctx, ModeAsync, raw)
			return nil
		})
	}
	_ = g.Wait()
	return c.finish(ModeAsync, results, start)
}

// processItem ejecuta validador + actualizador sobre un artículo. Nunca propaga errores
// ni pánicos: todo fallo termina en un ItemResult con status "error".
func (c *BatchCoordinator) processItem(ctx context.Context, mode string, raw RawItem) (result entity.ItemResult) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Str("item_id", ItemIDOf(raw)).Msg("pánico procesando artículo")
			result = entity.ItemResult{
				ItemID:  ItemIDOf(raw),
				Status:  entity.ItemStatusError,
				Message: fmt.Sprintf("Unexpected error: %v", r),
			}
		}
		c.observer.ObserveItem(mode, result)
	}()

	req, err := ValidateItem(raw)
	if err != nil {
		c.log.Warn().Str("item_id", ItemIDOf(raw)).Err(err).Msg("artículo inválido")
		return Failure(ItemIDOf(raw), err)
	}
	return c.updater.Update(ctx, req)
}

func (c *BatchCoordinator) finish(mode string, results []entity.ItemResult, start time.Time) entity.BatchResult {
	batch := entity.BatchResult{Items: results}
	elapsed := time.Since(start)
	c.observer.ObserveBatch(mode, batch.Status(), len(results), elapsed)
	c.log.Info().
		Str("mode", mode).
		Int("items", len(results)).
		Int("succeeded", batch.SuccessCount()).
		Str("status", batch.Status()).
		Dur("elapsed", elapsed).
		Msg("lote procesado")
	return batch
}
