package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

// QueueMessage mensaje desencolado: lista de artículos serializada y su token de correlación.
type QueueMessage struct {
	CorrelationID string
	Body          []byte
}

// QueueConsumer procesa lotes de la cola y persiste exactamente un AuditRecord por mensaje.
type QueueConsumer struct {
	coordinator *BatchCoordinator
	audits      repository.AuditRepository
	newID       func() string
	now         func() time.Time
	log         zerolog.Logger
}

// NewQueueConsumer construye el consumidor.
func NewQueueConsumer(coordinator *BatchCoordinator, audits repository.AuditRepository, log zerolog.Logger) *QueueConsumer {
	return &QueueConsumer{
		coordinator: coordinator,
		audits:      audits,
		newID:       uuid.NewString,
		now:         time.Now,
		log:         log.With().Str("component", "queue_consumer").Logger(),
	}
}

// Handle procesa un mensaje y persiste su auditoría en un único intento.
// Quien necesite reintentar la persistencia debe usar Process y Persist por separado:
// repetir Handle vuelve a aplicar el lote sobre el stock.
func (c *QueueConsumer) Handle(ctx context.Context, msg QueueMessage) error {
	return c.Persist(ctx, c.Process(ctx, msg))
}

// Process ejecuta el lote exactamente una vez y construye su AuditRecord. Nunca falla:
// payload inválido o pánico producen un registro con status "error".
func (c *QueueConsumer) Process(ctx context.Context, msg QueueMessage) *entity.AuditRecord {
	if msg.CorrelationID == "" {
		msg.CorrelationID = "unknown-" + c.newID()
		c.log.Warn().Str("correlation_id", msg.CorrelationID).Msg("mensaje sin correlationId, se asigna uno")
	}
	c.log.Info().Str("correlation_id", msg.CorrelationID).Int("bytes", len(msg.Body)).Msg("procesando lote de la cola")
	return c.process(ctx, msg)
}

// Persist inserta el registro (write-once por correlationId). No toca el stock, así que
// puede reintentarse sin efectos duplicados. Devuelve ErrPersistence si la inserción falla.
func (c *QueueConsumer) Persist(ctx context.Context, record *entity.AuditRecord) error {
	log := c.log.With().Str("correlation_id", record.CorrelationID).Logger()
	inserted, err := c.audits.Insert(ctx, record)
	if err != nil {
		log.Error().Err(err).Msg("no se pudo guardar el registro de auditoría")
		return fmt.Errorf("%w: insertar auditoría %s: %v", domain.ErrPersistence, record.CorrelationID, err)
	}
	if !inserted {
		log.Warn().Msg("registro de auditoría ya existente, se conserva el original")
		return nil
	}
	log.Info().Str("status", record.Status).Int("items", record.ItemCount).Msg("auditoría del lote guardada")
	return nil
}

func (c *QueueConsumer) process(ctx context.Context, msg QueueMessage) (record *entity.AuditRecord) {
	itemCount := 0
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Str("correlation_id", msg.CorrelationID).Msg("pánico procesando lote")
			record = c.errorRecord(msg.CorrelationID, itemCount, fmt.Sprintf("Queue processing failed: %v", r))
		}
	}()

	items, err := ParseQueueItems(msg.Body)
	if err != nil {
		c.log.Warn().Err(err).Str("correlation_id", msg.CorrelationID).Msg("lista de inventario inválida")
		return c.errorRecord(msg.CorrelationID, 0, "Queue processing failed: "+domain.Message(err))
	}
	itemCount = len(items)

	batch := c.coordinator.RunConcurrent(ctx, items)
	if len(batch.Items) == 0 {
		return c.errorRecord(msg.CorrelationID, itemCount, "No items processed")
	}
	return &entity.AuditRecord{
		ID:            c.newID(),
		CorrelationID: msg.CorrelationID,
		Timestamp:     c.now(),
		ItemCount:     itemCount,
		Status:        batch.Status(),
		Results:       batch.Items,
	}
}

func (c *QueueConsumer) errorRecord(correlationID string, itemCount int, message string) *entity.AuditRecord {
	return &entity.AuditRecord{
		ID:            c.newID(),
		CorrelationID: correlationID,
		Timestamp:     c.now(),
		ItemCount:     itemCount,
		Status:        entity.BatchStatusError,
		Message:       message,
		Results:       []entity.ItemResult{},
	}
}
