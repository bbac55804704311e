package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/prat555/Food-Delivery-App/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`

	// Payment backend
	PaymentBaseURL     string `env:"PAYMENT_BASE_URL" envDefault:"http://localhost:8006"`
	PaymentAPIKey      string `env:"PAYMENT_API_KEY" envDefault:""`
	UseMockPayment     bool   `env:"USE_MOCK_PAYMENT" envDefault:"true"`
	MockPaymentDelayMs int    `env:"MOCK_PAYMENT_DELAY_MS" envDefault:"200"`

	// Catalog backend
	CatalogBaseURL string `env:"CATALOG_BASE_URL" envDefault:"http://localhost:8001"`

	// Pricing in integer cents
	DeliveryFeeCents int64  `env:"DELIVERY_FEE_CENTS" envDefault:"500"`
	DiscountCents    int64  `env:"DISCOUNT_CENTS" envDefault:"50"`
	Currency         string `env:"CURRENCY" envDefault:"usd"`

	// Session idle eviction (default: 24 hours)
	SessionTTL int `env:"SESSION_TTL_HOURS" envDefault:"24"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Pprof debug endpoints
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8" envSeparator:","`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.DeliveryFeeCents < 0 {
		return fmt.Errorf("delivery fee must not be negative: %d", c.DeliveryFeeCents)
	}
	if c.DiscountCents < 0 {
		return fmt.Errorf("discount must not be negative: %d", c.DiscountCents)
	}
	if !c.UseMockPayment && c.PaymentAPIKey == "" {
		return fmt.Errorf("payment API key is required when the mock provider is disabled")
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("tracing sample rate must be between 0 and 1: %f", c.TracingSampleRate)
	}
	return nil
}

// SessionIdleTTL returns the session eviction window as a duration.
func (c *Config) SessionIdleTTL() time.Duration {
	return time.Duration(c.SessionTTL) * time.Hour
}

// MockPaymentDelay returns the simulated provider latency as a duration.
func (c *Config) MockPaymentDelay() time.Duration {
	return time.Duration(c.MockPaymentDelayMs) * time.Millisecond
}
