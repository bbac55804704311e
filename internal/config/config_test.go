package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.True(t, cfg.UseMockPayment)
	assert.Equal(t, int64(500), cfg.DeliveryFeeCents)
	assert.Equal(t, int64(50), cfg.DiscountCents)
	assert.Equal(t, "usd", cfg.Currency)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL())
	assert.Equal(t, 200*time.Millisecond, cfg.MockPaymentDelay())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "9999")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("DELIVERY_FEE_CENTS", "700")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, int64(700), cfg.DeliveryFeeCents)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_NegativeDeliveryFee(t *testing.T) {
	t.Setenv("DELIVERY_FEE_CENTS", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery fee")
}

func TestLoad_RealProviderRequiresAPIKey(t *testing.T) {
	t.Setenv("USE_MOCK_PAYMENT", "false")
	t.Setenv("PAYMENT_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment API key")
}

func TestLoad_InvalidSampleRate(t *testing.T) {
	t.Setenv("TRACING_SAMPLE_RATE", "1.5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample rate")
}
