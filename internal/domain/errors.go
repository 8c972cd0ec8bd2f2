package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("fallo de persistencia")
	ErrBroker            = errors.New("broker no disponible")
	ErrPipeline          = errors.New("fallo del pipeline")
)

// Códigos de ValidationError.
const (
	ValidationMissingField = "missing-field"
	ValidationBadType      = "bad-type"
	ValidationEmptyList    = "empty-list"
	ValidationInvalidJSON  = "invalid-json"
)

// ValidationError petición mal formada o fuera de dominio (falla del cliente).
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError con mensaje formateado.
func NewValidationError(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error asocia un mensaje visible para el usuario a uno de los errores sentinela.
// Unwrap devuelve el sentinela (Kind) para que errors.Is funcione.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf construye un *Error del tipo kind.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message devuelve el mensaje visible de err: el de *Error / *ValidationError si existe, si no err.Error().
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
