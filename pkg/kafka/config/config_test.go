package kafka_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.False(t, cfg.Enabled())
	assert.Equal(t, DefaultProducerMaxAttempts, cfg.ProducerMaxAttempts)
	assert.Equal(t, "snappy", cfg.ProducerCompression)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")
	t.Setenv(EnvKafkaProducerRequireAcks, "1")
	t.Setenv(EnvKafkaProducerWriteTimeout, "2s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
	assert.Equal(t, 1, cfg.ProducerRequireAcks)
	assert.Equal(t, 2*time.Second, cfg.ProducerWriteTimeout)
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := &Config{
		Brokers:              []string{"no-port"},
		ProducerMaxAttempts:  0,
		ProducerBatchTimeout: time.Millisecond,
		ProducerWriteTimeout: time.Second,
		ProducerRequireAcks:  2,
		ProducerCompression:  "brotli",
	}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1. Broker 0 must be host:port")
	assert.Contains(t, err.Error(), "ProducerMaxAttempts must be positive")
	assert.Contains(t, err.Error(), "ProducerCompression must be one of")
	assert.Contains(t, err.Error(), "ProducerRequireAcks must be -1, 0, or 1")
}
