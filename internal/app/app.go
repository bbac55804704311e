package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prat555/Food-Delivery-App/internal/catalog"
	"github.com/prat555/Food-Delivery-App/internal/checkout"
	"github.com/prat555/Food-Delivery-App/internal/config"
	"github.com/prat555/Food-Delivery-App/internal/domain"
	"github.com/prat555/Food-Delivery-App/internal/event"
	handler "github.com/prat555/Food-Delivery-App/internal/handler/http"
	"github.com/prat555/Food-Delivery-App/internal/payment"
	paymentmock "github.com/prat555/Food-Delivery-App/internal/payment/mock"
	"github.com/prat555/Food-Delivery-App/internal/payment/stripe"
	"github.com/prat555/Food-Delivery-App/internal/session"
	"github.com/prat555/Food-Delivery-App/pkg/health"
	"github.com/prat555/Food-Delivery-App/pkg/httpclient"
	pkgkafka "github.com/prat555/Food-Delivery-App/pkg/kafka"
	"github.com/prat555/Food-Delivery-App/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	producer        *pkgkafka.Producer
	sessions        *session.Manager
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	tracingCfg := tracing.Config{
		ServiceName:  "storefront",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRate:   cfg.TracingSampleRate,
		Enabled:      cfg.TracingEnabled,
	}
	tracingShutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	eventProducer := event.NewProducer(producer, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Payment provider.
	provider := buildPaymentProvider(cfg, logger)
	logger.Info("payment provider initialized", slog.String("provider", provider.Name()))

	// Catalog client behind a circuit breaker.
	catalogHTTP := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultCircuitBreakerConfig("catalog"),
		logger,
	)
	catalogClient := catalog.NewClient(catalogHTTP, cfg.CatalogBaseURL, logger)

	// Per-client session state.
	sessions := session.NewManager(session.Config{
		Provider:  provider,
		Notifier:  eventProducer,
		Publisher: eventProducer,
		Pricing: domain.PricingPolicy{
			DeliveryFee: cfg.DeliveryFeeCents,
			Discount:    cfg.DiscountCents,
		},
		Currency: cfg.Currency,
		IdleTTL:  cfg.SessionIdleTTL(),
	}, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
	})
	if !cfg.UseMockPayment {
		healthHTTP := httpclient.New(httpclient.DefaultConfig())
		healthHandler.Register("payment", func(ctx context.Context) error {
			resp, err := healthHTTP.Get(ctx, cfg.PaymentBaseURL+"/healthz")
			if err != nil {
				return err
			}
			resp.Body.Close()
			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("payment backend unhealthy: status %d", resp.StatusCode)
			}
			return nil
		})
	}

	router := handler.NewRouter(sessions, catalogClient, healthHandler, logger, cfg.PprofCIDRs)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		producer:        producer,
		sessions:        sessions,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

// buildPaymentProvider selects the payment backend. The mock provider serves
// development and tests; production talks to the hosted payment service with
// retries disabled so a confirmation is attempted at most once.
func buildPaymentProvider(cfg *config.Config, logger *slog.Logger) payment.Provider {
	if cfg.UseMockPayment {
		return paymentmock.NewProvider(cfg.MockPaymentDelay())
	}
	paymentHTTP := httpclient.New(httpclient.NoRetry(httpclient.DefaultConfig()))
	return stripe.NewClient(paymentHTTP, cfg.PaymentBaseURL, cfg.PaymentAPIKey, logger)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.sessions.Close()

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}

// Ensure the interface stays satisfied when the workflow notifier changes.
var _ checkout.Notifier = (*event.Producer)(nil)
