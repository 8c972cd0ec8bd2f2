package messaging

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// MessageHandler procesa un lote desencolado (inventory.QueueConsumer en producción).
// Process aplica el lote una sola vez; Persist guarda su auditoría y es seguro reintentarlo.
type MessageHandler interface {
	Process(ctx context.Context, msg inventory.QueueMessage) *entity.AuditRecord
	Persist(ctx context.Context, record *entity.AuditRecord) error
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
	persistTimeout = 10 * time.Second
	commitTimeout  = 10 * time.Second
)

// Consumer lee el tópico en un grupo de consumidores y entrega cada mensaje al handler.
// El offset se confirma solo después de que el handler termina sin error.
type Consumer struct {
	reader  messageReader
	handler MessageHandler
	log     zerolog.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewConsumer construye el consumidor del grupo groupID sobre topic.
func NewConsumer(brokers []string, topic, groupID string, handler MessageHandler, log zerolog.Logger) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // commit síncrono
		StartOffset:    kafka.FirstOffset,
	})
	return newConsumer(r, handler, log)
}

func newConsumer(r messageReader, handler MessageHandler, log zerolog.Logger) *Consumer {
	return &Consumer{reader: r, handler: handler, log: log.With().Str("component", "kafka_consumer").Logger()}
}

// Start lanza el bucle de lectura en una goroutine. Termina con Stop o al cancelar ctx.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(ctx)
	}()
}

// Stop detiene el bucle, espera el mensaje en curso y cierra el reader.
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.reader.Close()
}

func (c *Consumer) run(ctx context.Context) {
	c.log.Info().Msg("consumidor de inventario iniciado")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.log.Info().Msg("consumidor de inventario detenido")
				return
			}
			c.log.Error().Err(err).Msg("no se pudo leer mensaje, reintentando")
			if !sleep(ctx, time.Second) {
				return
			}
			continue
		}

		// Un mensaje leído se termina aunque llegue Stop: auditoría y commit usan un contexto
		// desligado de la cancelación, con límite de tiempo.
		if !c.handle(ctx, msg) {
			return
		}
		commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
		err = c.reader.CommitMessages(commitCtx, msg)
		cancel()
		if err != nil {
			c.log.Error().Err(err).Int64("offset", msg.Offset).Msg("no se pudo confirmar el offset")
		}
	}
}

// handle aplica el lote una vez y reintenta con backoff exponencial solo la persistencia de la
// auditoría. Devuelve false si el consumidor se detuvo sin poder guardarla (no hay commit).
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) bool {
	headers := HeaderCarrier(msg.Headers)
	msgCtx := otel.GetTextMapPropagator().Extract(ctx, &headers)
	qm := inventory.QueueMessage{CorrelationID: headers.Get(HeaderCorrelationID), Body: msg.Value}
	if qm.CorrelationID == "" {
		qm.CorrelationID = string(msg.Key)
	}

	record := c.handler.Process(msgCtx, qm)

	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		persistCtx, cancel := context.WithTimeout(context.WithoutCancel(msgCtx), persistTimeout)
		err := c.handler.Persist(persistCtx, record)
		cancel()
		if err == nil {
			return true
		}
		c.log.Error().Err(err).
			Str("correlation_id", record.CorrelationID).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Msg("fallo guardando auditoría del lote")
		if !sleep(ctx, delay) {
			c.log.Error().Str("correlation_id", record.CorrelationID).
				Msg("consumidor detenido con la auditoría pendiente; el mensaje se volverá a entregar")
			return false
		}
		delay = min(delay*2, retryMaxDelay)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
