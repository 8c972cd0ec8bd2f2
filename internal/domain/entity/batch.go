package entity

// Estados de un ItemResult.
const (
	ItemStatusSuccess = "success"
	ItemStatusError   = "error"
)

// Estados de un lote (BatchResult / AuditRecord).
const (
	BatchStatusCompleted = "completed"
	BatchStatusPartial   = "partial"
	BatchStatusError     = "error"
)

// UpdateRequestItem solicitud normalizada de actualización de stock de un artículo.
type UpdateRequestItem struct {
	ItemID  string
	SoldOut int
	Damaged int
}

// Reduction unidades que se descuentan del stock disponible.
func (r UpdateRequestItem) Reduction() int {
	return r.SoldOut + r.Damaged
}

// ItemResult resultado del procesamiento de un artículo. Inmutable una vez creado.
type ItemResult struct {
	ItemID  string `json:"itemId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Succeeded indica si el artículo se actualizó.
func (r ItemResult) Succeeded() bool {
	return r.Status == ItemStatusSuccess
}

// BatchResult resultados de un lote, en el orden de entrada (un resultado por artículo).
type BatchResult struct {
	Items []ItemResult
}

// Status deriva el estado del lote: "completed" si todos fueron exitosos,
// "partial" si alguno falló y "error" si no hay resultados.
func (b BatchResult) Status() string {
	if len(b.Items) == 0 {
		return BatchStatusError
	}
	for _, r := range b.Items {
		if !r.Succeeded() {
			return BatchStatusPartial
		}
	}
	return BatchStatusCompleted
}

// SuccessCount número de artículos actualizados.
func (b BatchResult) SuccessCount() int {
	n := 0
	for _, r := range b.Items {
		if r.Succeeded() {
			n++
		}
	}
	return n
}
