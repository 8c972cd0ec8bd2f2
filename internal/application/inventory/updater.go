package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

const tracerName = "github.com/jhoicas/inventory-stock-api/internal/application/inventory"

// ItemUpdater aplica la actualización de stock de un artículo contra el libro de stock.
// Update siempre devuelve un ItemResult: los fallos se capturan como datos y nunca abortan el lote.
type ItemUpdater struct {
	stock   repository.StockRepository
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewItemUpdater construye el actualizador. timeout <= 0 desactiva el límite por operación de store.
func NewItemUpdater(stock repository.StockRepository, timeout time.Duration, log zerolog.Logger) *ItemUpdater {
	return &ItemUpdater{
		stock:   stock,
		timeout: timeout,
		now:     time.Now,
		log:     log.With().Str("component", "item_updater").Logger(),
	}
}

// Update lee el stock, verifica suficiencia, calcula el nuevo stock y lo persiste.
// Una lectura siempre; una escritura solo en el camino exitoso.
func (u *ItemUpdater) Update(ctx context.Context, req entity.UpdateRequestItem) entity.ItemResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "inventory.update_item")
	defer span.End()
	span.SetAttributes(
		attribute.String("item.id", req.ItemID),
		attribute.Int("item.sold_out", req.SoldOut),
		attribute.Int("item.damaged", req.Damaged),
	)

	if err := u.apply(ctx, req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, domain.ErrPersistence) {
			u.log.Error().Err(err).Str("item_id", req.ItemID).Msg("fallo de persistencia al actualizar artículo")
		} else {
			u.log.Warn().Str("item_id", req.ItemID).Str("reason", domain.Message(err)).Msg("actualización de artículo rechazada")
		}
		return Failure(req.ItemID, err)
	}
	u.log.Info().Str("item_id", req.ItemID).Msg("inventario actualizado")
	return entity.ItemResult{
		ItemID:  req.ItemID,
		Status:  entity.ItemStatusSuccess,
		Message: fmt.Sprintf("Inventory updated successfully for item %s", req.ItemID),
	}
}

func (u *ItemUpdater) apply(ctx context.Context, req entity.UpdateRequestItem) error {
	readCtx, cancel := u.withTimeout(ctx)
	current, err := u.stock.GetStock(readCtx, req.ItemID)
	cancel()
	if err != nil {
		return domain.Errorf(domain.ErrPersistence, "Failed to read stock for item ID: %s (%v)", req.ItemID, err)
	}
	if current == nil {
		return domain.Errorf(domain.ErrNotFound, "Item not found for ID: %s", req.ItemID)
	}

	updated, err := inventory.ApplyStockUpdate(*current, req, u.now())
	if err != nil {
		return err
	}

	writeCtx, cancel := u.withTimeout(ctx)
	defer cancel()
	if err := u.stock.SaveStock(writeCtx, &updated); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Errorf(domain.ErrNotFound, "Item not found for ID: %s", req.ItemID)
		}
		return domain.Errorf(domain.ErrPersistence, "Failed to persist stock for item ID: %s (%v)", req.ItemID, err)
	}
	return nil
}

func (u *ItemUpdater) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, u.timeout)
}

// Failure construye el ItemResult de error para itemID con el mensaje visible de err.
func Failure(itemID string, err error) entity.ItemResult {
	return entity.ItemResult{ItemID: itemID, Status: entity.ItemStatusError, Message: domain.Message(err)}
}
