package entity

import "time"

// StockRecord vista del libro de stock de un artículo (clave: ItemID).
// Invariante: AvailableStock >= 0.
type StockRecord struct {
	ItemID         string
	AvailableStock int
	SoldOut        int
	Damaged        int
	LastUpdateDate time.Time
}
