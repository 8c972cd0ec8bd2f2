package inventory

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// maxQuantity límite superior de soldOut/damaged; evita desbordes al sumar la reducción.
const maxQuantity = math.MaxInt32

// ValidateItem valida la forma y el dominio de un artículo sin tipar y lo normaliza.
// Función pura: sin efectos secundarios.
//   - ValidationError("missing-field") si faltan _id, stockDetails, soldOut o damaged.
//   - ValidationError("bad-type") si soldOut/damaged no son enteros no negativos.
func ValidateItem(raw RawItem) (entity.UpdateRequestItem, error) {
	if raw == nil || raw["_id"] == nil || raw["stockDetails"] == nil {
		return entity.UpdateRequestItem{}, domain.NewValidationError(domain.ValidationMissingField,
			"Each item must have '_id' and 'stockDetails'.")
	}
	id, ok := idString(raw["_id"])
	if !ok {
		return entity.UpdateRequestItem{}, domain.NewValidationError(domain.ValidationBadType,
			"'_id' must be a string or a number.")
	}
	if id == "" {
		return entity.UpdateRequestItem{}, domain.NewValidationError(domain.ValidationMissingField,
			"Each item must have '_id' and 'stockDetails'.")
	}
	stock, ok := raw["stockDetails"].(map[string]any)
	if !ok {
		return entity.UpdateRequestItem{}, domain.NewValidationError(domain.ValidationBadType,
			"'stockDetails' must be an object for item: %s", id)
	}
	soldRaw, hasSold := stock["soldOut"]
	damagedRaw, hasDamaged := stock["damaged"]
	if !hasSold || !hasDamaged || soldRaw == nil || damagedRaw == nil {
		return entity.UpdateRequestItem{}, domain.NewValidationError(domain.ValidationMissingField,
			"Missing 'soldOut' or 'damaged' values in stock details for item: %s", id)
	}
	soldOut, okSold := nonNegativeInt(soldRaw)
	damaged, okDamaged := nonNegativeInt(damagedRaw)
	if !okSold || !okDamaged {
		return entity.UpdateRequestItem{}, domain.NewValidationError(domain.ValidationBadType,
			"'soldOut' and 'damaged' must be non-negative integers for item: %s", id)
	}
	return entity.UpdateRequestItem{ItemID: id, SoldOut: soldOut, Damaged: damaged}, nil
}

// ItemIDOf devuelve el _id de un payload sin validar, o "" si no se puede leer.
// Se usa para etiquetar el ItemResult de artículos que fallan la validación.
func ItemIDOf(raw RawItem) string {
	if raw == nil {
		return ""
	}
	id, _ := idString(raw["_id"])
	return id
}

func idString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// nonNegativeInt acepta json.Number, float64 (enteros) e int; rechaza strings, booleanos y fracciones.
func nonNegativeInt(v any) (int, bool) {
	var n int64
	switch t := v.(type) {
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		n = i
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || t > maxQuantity {
			return 0, false
		}
		n = int64(t)
	case int:
		n = int64(t)
	case int64:
		n = t
	default:
		return 0, false
	}
	if n < 0 || n > maxQuantity {
		return 0, false
	}
	return int(n), true
}
