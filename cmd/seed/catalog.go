package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

const catalogColumns = 9

type catalog struct {
	Categories []*entity.Category
	Items      []*entity.Item
}

// parseCatalog lee el CSV del catálogo. La primera fila es la cabecera y se omite.
// Las categorías se deduplican por id conservando la primera aparición.
func parseCatalog(r io.Reader) (*catalog, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = catalogColumns
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("archivo vacío")
		}
		return nil, err
	}

	out := &catalog{}
	seen := make(map[string]bool)
	now := time.Now().UTC()
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		catID, itemID := rec[0], rec[3]
		if catID == "" || itemID == "" {
			return nil, fmt.Errorf("línea %d: category_id e item_id son obligatorios", line)
		}
		if !seen[catID] {
			seen[catID] = true
			out.Categories = append(out.Categories, &entity.Category{ID: catID, Name: rec[1], Department: rec[2]})
		}

		base, err := decimal.NewFromString(rec[5])
		if err != nil {
			return nil, fmt.Errorf("línea %d: base_price: %w", line, err)
		}
		selling, err := decimal.NewFromString(rec[6])
		if err != nil {
			return nil, fmt.Errorf("línea %d: selling_price: %w", line, err)
		}
		stock, err := strconv.Atoi(rec[7])
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("línea %d: available_stock debe ser un entero no negativo", line)
		}
		out.Items = append(out.Items, &entity.Item{
			ID:             itemID,
			Name:           rec[4],
			CategoryID:     catID,
			Price:          entity.ItemPrice{BasePrice: base, SellingPrice: selling},
			Stock:          entity.StockDetails{AvailableStock: stock, UnitOfMeasure: rec[8]},
			LastUpdateDate: now,
		})
	}
	return out, nil
}
