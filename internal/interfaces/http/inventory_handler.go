package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
)

// InventoryHandler expone el pipeline de actualización de stock.
type InventoryHandler struct {
	sync  *inventory.SyncUpdateUseCase
	async *inventory.AsyncDispatcher
	audit *inventory.AuditQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(sync *inventory.SyncUpdateUseCase, async *inventory.AsyncDispatcher, audit *inventory.AuditQueryUseCase) *InventoryHandler {
	return &InventoryHandler{sync: sync, async: async, audit: audit}
}

// Update godoc
// @Summary      Actualizar stock en lote (síncrono)
// @Description  Procesa los artículos en orden. Los fallos por artículo se reportan en results y el lote queda "partial".
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateInventoryRequest  true  "Artículos a actualizar"
// @Success      200   {object}  dto.BatchUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/update [post]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	out, err := h.sync.Execute(c.UserContext(), c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AsyncUpdate godoc
// @Summary      Encolar actualización de stock en lote (asíncrono)
// @Description  Devuelve el correlationId de inmediato; el resultado se consulta en /api/inventory/status/{correlationId}.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateInventoryRequest  true  "Artículos a actualizar"
// @Success      202   {object}  dto.EnqueueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/async-update [post]
func (h *InventoryHandler) AsyncUpdate(c *fiber.Ctx) error {
	out, err := h.async.Dispatch(c.UserContext(), c.Body())
	if err != nil {
		status, code := errorStatus(err)
		body := errorBody(code, messageFor(err, status))
		body.CorrelationID = "unknown"
		return c.Status(status).JSON(body)
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// Status godoc
// @Summary      Consultar el resultado de un lote asíncrono
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        correlationId  path  string  true  "Token devuelto por async-update"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/status/{correlationId} [get]
func (h *InventoryHandler) Status(c *fiber.Ctx) error {
	correlationID := c.Params("correlationId")
	out, err := h.audit.Get(c.UserContext(), correlationID)
	if err != nil {
		status, code := errorStatus(err)
		body := errorBody(code, messageFor(err, status))
		body.CorrelationID = correlationID
		return c.Status(status).JSON(body)
	}
	return c.JSON(out)
}
