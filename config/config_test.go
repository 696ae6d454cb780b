package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/config"
)

func TestGet(t *testing.T) {
	t.Setenv("STORE_DRIVER", config.StoreDriverPostgres)
	t.Setenv("APP_RESERVATION_OVERLAP_POLICY", config.OverlapPolicyStrict)
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("CACHE_TTL", "120")

	require.NoError(t, config.Init())

	cfg := config.Get()

	assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, config.OverlapPolicyStrict, cfg.App.Reservation.OverlapPolicy)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 120, cfg.Cache.TTL)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "roombook", cfg.App.Name)
	assert.Equal(t, "booking.confirmed", cfg.Kafka.Topics.BookingConfirmed)
	assert.Equal(t, "roombook", cfg.Kafka.ConsumerGroup)
	assert.Equal(t, 3, cfg.DB.Postgres.MaxRetry)

	assert.Same(t, cfg, config.Get())
}
