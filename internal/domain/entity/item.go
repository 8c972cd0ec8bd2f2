package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPrice precios de un artículo.
type ItemPrice struct {
	BasePrice    decimal.Decimal
	SellingPrice decimal.Decimal
}

// StockDetails estado del stock de un artículo tal como se persiste en el documento.
type StockDetails struct {
	AvailableStock int
	SoldOut        int
	Damaged        int
	UnitOfMeasure  string
}

// Review reseña de un artículo.
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Item representa un artículo del catálogo con su stock embebido.
// El stock solo se modifica a través del pipeline de actualización (ver StockRecord).
type Item struct {
	ID             string
	Name           string
	CategoryID     string
	Price          ItemPrice
	Stock          StockDetails
	SpecialProduct bool
	Reviews        []Review
	LastUpdateDate time.Time
}

// CategoryItems artículos de una categoría junto con los datos de la categoría.
type CategoryItems struct {
	CategoryName       string
	CategoryDepartment string
	Items              []*Item
}
