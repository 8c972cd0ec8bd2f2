package dto

import "time"

// UpdateInventoryRequest body de POST /api/inventory/update y /api/inventory/async-update.
// Solo documenta el contrato: el pipeline parsea el cuerpo sin tipar para reportar errores por artículo.
type UpdateInventoryRequest struct {
	Items []UpdateInventoryItem `json:"items"`
}

// UpdateInventoryItem un artículo del lote.
type UpdateInventoryItem struct {
	ID           string     `json:"_id"`
	StockDetails StockDelta `json:"stockDetails"`
}

// StockDelta unidades vendidas y dañadas a descontar.
type StockDelta struct {
	SoldOut int `json:"soldOut"`
	Damaged int `json:"damaged"`
}

// ItemResultDTO resultado de un artículo.
type ItemResultDTO struct {
	ItemID  string `json:"itemId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BatchUpdateResponse respuesta de la actualización síncrona ("completed" | "partial").
type BatchUpdateResponse struct {
	Status  string          `json:"status"`
	Results []ItemResultDTO `json:"results"`
}

// EnqueueResponse respuesta de la actualización asíncrona.
type EnqueueResponse struct {
	Status        string `json:"status"`
	CorrelationID string `json:"correlationId"`
}

// AuditResponse resumen de un lote asíncrono consultado por correlationId.
type AuditResponse struct {
	ID            string          `json:"_id"`
	CorrelationID string          `json:"correlationId"`
	Status        string          `json:"status"`
	Message       string          `json:"message,omitempty"`
	ItemCount     int             `json:"itemCount"`
	Results       []ItemResultDTO `json:"results"`
	Timestamp     time.Time       `json:"timestamp"`
}
