package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Pipeline.Workers)
	assert.Equal(t, 5*time.Second, cfg.Pipeline.ItemTimeout)
	assert.Equal(t, "inventory.update.queue", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.JWT.Enabled())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	v.Set("PIPELINE_WORKERS", "8")
	v.Set("PIPELINE_ITEM_TIMEOUT", "750ms")
	v.Set("REDIS_AUDIT_TTL", "30")
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.Equal(t, 750*time.Millisecond, cfg.Pipeline.ItemTimeout)
	assert.Equal(t, 30*time.Second, cfg.Redis.AuditTTL)
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_WorkersInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("PIPELINE_WORKERS", "0")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "inventory", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/inventory?sslmode=disable", c.DSN())
}
