package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

var _ inventory.AuditCache = (*RedisAuditCache)(nil)

const keyPrefix = "inventory:audit:"

// RedisAuditCache guarda los registros de auditoría ya leídos de PostgreSQL.
// Los registros no cambian después de escritos, así que basta con el TTL.
type RedisAuditCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAuditCache construye la caché. ttl <= 0 guarda sin expiración.
func NewRedisAuditCache(client *redis.Client, ttl time.Duration) *RedisAuditCache {
	return &RedisAuditCache{client: client, ttl: ttl}
}

type cachedAudit struct {
	ID            string              `json:"id"`
	CorrelationID string              `json:"correlationId"`
	Timestamp     time.Time           `json:"timestamp"`
	ItemCount     int                 `json:"itemCount"`
	Status        string              `json:"status"`
	Message       string              `json:"message,omitempty"`
	Results       []entity.ItemResult `json:"results"`
}

func (c *RedisAuditCache) Get(ctx context.Context, correlationID string) (*entity.AuditRecord, error) {
	raw, err := c.client.Get(ctx, keyPrefix+correlationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get audit: %w", err)
	}
	var v cachedAudit
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decodificar audit en caché: %w", err)
	}
	return &entity.AuditRecord{
		ID:            v.ID,
		CorrelationID: v.CorrelationID,
		Timestamp:     v.Timestamp,
		ItemCount:     v.ItemCount,
		Status:        v.Status,
		Message:       v.Message,
		Results:       v.Results,
	}, nil
}

func (c *RedisAuditCache) Set(ctx context.Context, r *entity.AuditRecord) error {
	raw, err := json.Marshal(cachedAudit{
		ID:            r.ID,
		CorrelationID: r.CorrelationID,
		Timestamp:     r.Timestamp,
		ItemCount:     r.ItemCount,
		Status:        r.Status,
		Message:       r.Message,
		Results:       r.Results,
	})
	if err != nil {
		return fmt.Errorf("codificar audit: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+r.CorrelationID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set audit: %w", err)
	}
	return nil
}
