package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-stock-api/internal/application/dto"
	"github.com/jhoicas/inventory-stock-api/internal/domain"
)

// StatusEnqueued estado devuelto al aceptar un lote asíncrono.
const StatusEnqueued = "enqueued"

// AsyncDispatcher acepta lotes asíncronos: valida, genera el token de correlación y encola.
// Devuelve el token sin esperar el procesamiento.
type AsyncDispatcher struct {
	publisher QueuePublisher
	timeout   time.Duration
	newToken  func() string
	log       zerolog.Logger
}

// NewAsyncDispatcher construye el despachador. publisher nil = broker no configurado (BrokerError).
func NewAsyncDispatcher(publisher QueuePublisher, timeout time.Duration, log zerolog.Logger) *AsyncDispatcher {
	return &AsyncDispatcher{
		publisher: publisher,
		timeout:   timeout,
		newToken:  uuid.NewString,
		log:       log.With().Str("component", "async_dispatcher").Logger(),
	}
}

// Dispatch valida el payload antes de generar el token; si el encolado falla devuelve ErrBroker
// y el token no se entrega (no existirá registro de auditoría para ese intento).
func (d *AsyncDispatcher) Dispatch(ctx context.Context, body []byte) (*dto.EnqueueResponse, error) {
	items, err := ParseUpdatePayload(body)
	if err != nil {
		d.log.Warn().Err(err).Msg("payload asíncrono rechazado")
		return nil, err
	}
	if d.publisher == nil {
		return nil, domain.Errorf(domain.ErrBroker, "Message broker unavailable")
	}

	payload, err := EncodeQueueItems(items)
	if err != nil {
		return nil, domain.Errorf(domain.ErrPipeline, "Failed to serialize inventory list: %v", err)
	}

	token := d.newToken()
	pubCtx, cancel := ctx, context.CancelFunc(func() {})
	if d.timeout > 0 {
		pubCtx, cancel = context.WithTimeout(ctx, d.timeout)
	}
	defer cancel()

	if err := d.publisher.Publish(pubCtx, token, payload); err != nil {
		d.log.Error().Err(err).Str("correlation_id", token).Msg("fallo al encolar lote")
		return nil, domain.Errorf(domain.ErrBroker, "Message broker unavailable: %v", err)
	}
	d.log.Info().Str("correlation_id", token).Int("items", len(items)).Msg("lote encolado")
	return &dto.EnqueueResponse{Status: StatusEnqueued, CorrelationID: token}, nil
}
