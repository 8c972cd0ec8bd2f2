package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
)

// HeaderCorrelationID header con el token de correlación del lote.
const HeaderCorrelationID = "correlationId"

var _ inventory.QueuePublisher = (*Publisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher publica lotes asíncronos en el tópico de actualizaciones de inventario.
type Publisher struct {
	writer messageWriter
	log    zerolog.Logger
}

// NewPublisher construye un productor síncrono (espera el ack de todas las réplicas),
// así un error de Publish significa que el lote no quedó encolado.
func NewPublisher(brokers []string, topic string, log zerolog.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
	return newPublisher(w, log)
}

func newPublisher(w messageWriter, log zerolog.Logger) *Publisher {
	return &Publisher{writer: w, log: log.With().Str("component", "kafka_publisher").Logger()}
}

// Publish escribe el mensaje con key = correlationID y el contexto de traza en los headers.
func (p *Publisher) Publish(ctx context.Context, correlationID string, payload []byte) error {
	headers := HeaderCarrier{{Key: HeaderCorrelationID, Value: []byte(correlationID)}}
	otel.GetTextMapPropagator().Inject(ctx, &headers)

	msg := kafka.Message{
		Key:     []byte(correlationID),
		Value:   payload,
		Headers: headers,
		Time:    time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar %s: %w", correlationID, err)
	}
	p.log.Debug().Str("correlation_id", correlationID).Int("bytes", len(payload)).Msg("mensaje publicado")
	return nil
}

// Close vacía y cierra el writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
