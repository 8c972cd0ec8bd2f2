package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-stock-api/internal/application/dto"
	"github.com/jhoicas/inventory-stock-api/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código de error.
func errorStatus(err error) (int, string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, strings.ToUpper(strings.ReplaceAll(ve.Code, "-", "_"))
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrBroker):
		return fiber.StatusServiceUnavailable, "BROKER_UNAVAILABLE"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// respondError escribe el cuerpo de error estándar. Los errores internos no exponen el detalle.
func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(errorBody(code, messageFor(err, status)))
}

func messageFor(err error, status int) string {
	if status == fiber.StatusInternalServerError && !errors.Is(err, domain.ErrPersistence) {
		return "internal error"
	}
	return domain.Message(err)
}

func errorBody(code, message string) dto.ErrorResponse {
	return dto.ErrorResponse{Status: "error", Code: code, Message: message}
}
