package entity

import "time"

// AuditRecord resumen persistido de un lote asíncrono. Se crea una sola vez
// por CorrelationID y nunca se actualiza.
type AuditRecord struct {
	ID            string
	CorrelationID string
	Timestamp     time.Time
	ItemCount     int
	Status        string
	Message       string // solo en lotes con error
	Results       []ItemResult
}
