package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/application/usecase"
	"github.com/jhoicas/inventory-stock-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName   string
	SyncUpdate    *inventory.SyncUpdateUseCase
	AsyncDispatch *inventory.AsyncDispatcher
	AuditQuery    *inventory.AuditQueryUseCase
	ItemUC        *usecase.ItemUseCase
	CategoryUC    *usecase.CategoryUseCase
	JWTSecret     string                          // vacío = rutas /api sin autenticación
	Metrics       http.Handler                    // nil = sin /metrics
	HealthCheck   func(ctx context.Context) error // nil = siempre ok
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps))
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")
	roles := func(allowed ...string) fiber.Handler {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
		roles = RequireRole
	}
	writers := roles(jwt.RoleAdmin, jwt.RoleOperator)
	readers := roles(jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleViewer)
	admins := roles(jwt.RoleAdmin)

	// Pipeline de stock
	inventoryHandler := NewInventoryHandler(deps.SyncUpdate, deps.AsyncDispatch, deps.AuditQuery)
	inv := api.Group("/inventory")
	inv.Post("/update", writers, inventoryHandler.Update)
	inv.Post("/async-update", writers, inventoryHandler.AsyncUpdate)
	inv.Get("/status/:correlationId", readers, inventoryHandler.Status)

	// Catálogo
	itemHandler := NewItemHandler(deps.ItemUC)
	items := api.Group("/items")
	items.Post("/", admins, itemHandler.Create)
	items.Get("/:id", readers, itemHandler.GetByID)
	items.Delete("/:id", admins, itemHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories")
	categories.Post("/", admins, categoryHandler.Create)
	categories.Get("/:id/items", readers, itemHandler.ListByCategory)
	categories.Delete("/:id", admins, categoryHandler.Delete)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": deps.ServiceName, "error": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	}
}
