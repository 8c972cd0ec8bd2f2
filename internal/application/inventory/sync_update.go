package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-stock-api/internal/application/dto"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// SyncUpdateUseCase actualización síncrona: el llamador espera el resultado del lote.
type SyncUpdateUseCase struct {
	coordinator *BatchCoordinator
	log         zerolog.Logger
}

// NewSyncUpdateUseCase construye el caso de uso.
func NewSyncUpdateUseCase(coordinator *BatchCoordinator, log zerolog.Logger) *SyncUpdateUseCase {
	return &SyncUpdateUseCase{
		coordinator: coordinator,
		log:         log.With().Str("component", "sync_update").Logger(),
	}
}

// Execute valida el payload y procesa los artículos en secuencia.
// Solo devuelve error a nivel pipeline (payload inválido); los fallos por artículo van en la respuesta
// y el estado es "completed" o "partial".
func (uc *SyncUpdateUseCase) Execute(ctx context.Context, body []byte) (*dto.BatchUpdateResponse, error) {
	items, err := ParseUpdatePayload(body)
	if err != nil {
		uc.log.Warn().Err(err).Msg("payload de actualización rechazado")
		return nil, err
	}
	uc.log.Info().Int("items", len(items)).Msg("iniciando actualización síncrona")
	batch := uc.coordinator.RunSequential(ctx, items)
	return &dto.BatchUpdateResponse{
		Status:  batch.Status(),
		Results: toItemResultDTOs(batch.Items),
	}, nil
}

func toItemResultDTOs(results []entity.ItemResult) []dto.ItemResultDTO {
	out := make([]dto.ItemResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.ItemResultDTO{ItemID: r.ItemID, Status: r.Status, Message: r.Message})
	}
	return out
}
