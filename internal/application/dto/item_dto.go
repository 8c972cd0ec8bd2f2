package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body de POST /api/items. Los punteros permiten distinguir campos ausentes.
type CreateItemRequest struct {
	ID             string              `json:"_id"`
	ItemName       string              `json:"itemName"`
	CategoryID     string              `json:"categoryId"`
	ItemPrice      *ItemPriceDTO       `json:"itemPrice"`
	StockDetails   *NewStockDetailsDTO `json:"stockDetails"`
	SpecialProduct bool                `json:"specialProduct"`
	Review         []ReviewDTO         `json:"review"`
}

// ItemPriceDTO precios de un artículo.
type ItemPriceDTO struct {
	BasePrice    *decimal.Decimal `json:"basePrice"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
}

// NewStockDetailsDTO stock inicial de un artículo nuevo.
type NewStockDetailsDTO struct {
	AvailableStock *int    `json:"availableStock"`
	UnitOfMeasure  *string `json:"unitOfMeasure"`
}

// ReviewDTO reseña.
type ReviewDTO struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// PriceResponse precios en respuestas.
type PriceResponse struct {
	BasePrice    decimal.Decimal `json:"basePrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

// StockDetailsResponse stock en respuestas.
type StockDetailsResponse struct {
	AvailableStock int    `json:"availableStock"`
	SoldOut        int    `json:"soldOut"`
	Damaged        int    `json:"damaged"`
	UnitOfMeasure  string `json:"unitOfMeasure"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID             string               `json:"_id"`
	ItemName       string               `json:"itemName"`
	CategoryID     string               `json:"categoryId"`
	ItemPrice      PriceResponse        `json:"itemPrice"`
	StockDetails   StockDetailsResponse `json:"stockDetails"`
	SpecialProduct bool                 `json:"specialProduct"`
	Review         []ReviewDTO          `json:"review"`
	LastUpdateDate time.Time            `json:"lastUpdateDate"`
}

// CategoryItemsResponse artículos de una categoría.
type CategoryItemsResponse struct {
	CategoryName       string         `json:"categoryName,omitempty"`
	CategoryDepartment string         `json:"categoryDepartment,omitempty"`
	Items              []ItemResponse `json:"items"`
}
