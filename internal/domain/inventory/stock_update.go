package inventory

import (
	"time"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// ApplyStockUpdate calcula el nuevo estado del libro de stock (servicio de dominio, sin I/O).
// NuevoDisponible = Disponible - (Vendidos + Dañados); los acumulados de vendidos y dañados se suman.
// Devuelve ErrInsufficientStock (sin modificar current) si la reducción supera el disponible.
func ApplyStockUpdate(current entity.StockRecord, req entity.UpdateRequestItem, now time.Time) (entity.StockRecord, error) {
	reduction := req.Reduction()
	if reduction > current.AvailableStock {
		return current, domain.Errorf(domain.ErrInsufficientStock,
			"Requested quantity exceeds available stock for item ID: %s", req.ItemID)
	}
	return entity.StockRecord{
		ItemID:         current.ItemID,
		AvailableStock: current.AvailableStock - reduction,
		SoldOut:        current.SoldOut + req.SoldOut,
		Damaged:        current.Damaged + req.Damaged,
		LastUpdateDate: now,
	}, nil
}
