package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-stock-api/internal/application/dto"
	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

// AuditQueryUseCase consulta el resumen de un lote asíncrono por correlationId.
type AuditQueryUseCase struct {
	repo  repository.AuditRepository
	cache AuditCache
	log   zerolog.Logger
}

// NewAuditQueryUseCase construye el caso de uso. cache puede ser nil.
func NewAuditQueryUseCase(repo repository.AuditRepository, cache AuditCache, log zerolog.Logger) *AuditQueryUseCase {
	return &AuditQueryUseCase{
		repo:  repo,
		cache: cache,
		log:   log.With().Str("component", "audit_query").Logger(),
	}
}

// Get devuelve el registro tal cual fue guardado. ErrNotFound si aún no existe
// (lote en curso o token desconocido): el llamador debe reintentar.
func (uc *AuditQueryUseCase) Get(ctx context.Context, correlationID string) (*dto.AuditResponse, error) {
	if correlationID == "" {
		return nil, domain.NewValidationError(domain.ValidationMissingField, "correlationId is required")
	}
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, correlationID)
		if err != nil {
			uc.log.Warn().Err(err).Str("correlation_id", correlationID).Msg("fallo leyendo caché de auditoría")
		} else if cached != nil {
			return toAuditResponse(cached), nil
		}
	}

	record, err := uc.repo.GetByCorrelationID(ctx, correlationID)
	if err != nil {
		return nil, domain.Errorf(domain.ErrPersistence, "Failed to read audit record: %v", err)
	}
	if record == nil {
		uc.log.Debug().Str("correlation_id", correlationID).Msg("auditoría aún no disponible")
		return nil, domain.Errorf(domain.ErrNotFound, "No summary audit record found")
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, record); err != nil {
			uc.log.Warn().Err(err).Str("correlation_id", correlationID).Msg("fallo guardando auditoría en caché")
		}
	}
	return toAuditResponse(record), nil
}

func toAuditResponse(r *entity.AuditRecord) *dto.AuditResponse {
	return &dto.AuditResponse{
		ID:            r.ID,
		CorrelationID: r.CorrelationID,
		Status:        r.Status,
		Message:       r.Message,
		ItemCount:     r.ItemCount,
		Results:       toItemResultDTOs(r.Results),
		Timestamp:     r.Timestamp,
	}
}
