// seed carga un catálogo inicial (categorías y artículos con stock) desde un CSV
// separado por ';' y emite un token de administrador para probar la API.
//
// Uso: go run ./cmd/seed [-latin1] [ruta/catalogo.csv]
// Por defecto lee catalogo.csv del directorio actual.
// Columnas: category_id;category_name;department;item_id;item_name;base_price;selling_price;available_stock;unit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-stock-api/pkg/config"
	"github.com/jhoicas/inventory-stock-api/pkg/jwt"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está codificado en ISO-8859-1")
	flag.Parse()

	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	catalog, err := parseCatalog(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Pipeline.Workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Esquema: %v\n", err)
		os.Exit(1)
	}

	// Sin transacción: un duplicado abortaría la transacción completa y la carga debe ser re-ejecutable.
	categoryRepo := postgres.NewCategoryRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	var categories, items, skipped int
	for _, c := range catalog.Categories {
		if err := categoryRepo.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			fmt.Fprintf(os.Stderr, "Categoría %s: %v\n", c.ID, err)
			os.Exit(1)
		}
		categories++
	}
	for _, it := range catalog.Items {
		if err := itemRepo.Create(ctx, it); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			fmt.Fprintf(os.Stderr, "Artículo %s: %v\n", it.ID, err)
			os.Exit(1)
		}
		items++
	}
	fmt.Printf("Cargado %s: %d categorías, %d artículos, %d existentes omitidos\n", csvPath, categories, items, skipped)

	if cfg.JWT.Enabled() {
		token, err := jwt.Generate(cfg.JWT.Secret, "seed", jwt.RoleAdmin, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Token admin (%d min): Bearer %s\n", cfg.JWT.Expiration, token)
	}
}
