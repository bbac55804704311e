package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prat555/Food-Delivery-App/internal/domain"
	pkgkafka "github.com/prat555/Food-Delivery-App/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCheckoutSucceeded = "storefront.checkout.succeeded"
	TopicCartUpdated       = "storefront.cart.updated"
)

// Aggregate type constants.
const (
	AggregateTypeCheckout = "checkout"
	AggregateTypeCart     = "cart"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CheckoutSucceededData is the payload for a checkout.succeeded event. It
// hands the order reference off to the order/notification pipeline.
type CheckoutSucceededData struct {
	SessionID      string `json:"session_id"`
	OrderReference string `json:"order_reference"`
	Subtotal       int64  `json:"subtotal"`
	DeliveryFee    int64  `json:"delivery_fee"`
	Discount       int64  `json:"discount"`
	Total          int64  `json:"total"`
	Currency       string `json:"currency"`
	ItemCount      int    `json:"item_count"`
}

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string            `json:"session_id"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Subtotal  int64             `json:"subtotal"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCheckoutSucceeded publishes a checkout.succeeded event.
func (p *Producer) PublishCheckoutSucceeded(ctx context.Context, data CheckoutSucceededData) error {
	event, err := pkgkafka.NewEvent(TopicCheckoutSucceeded, data.SessionID, AggregateTypeCheckout, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.succeeded event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutSucceeded, event); err != nil {
		return fmt.Errorf("publish checkout.succeeded event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.succeeded event",
		slog.String("session_id", data.SessionID),
		slog.String("order_reference", data.OrderReference),
	)

	return nil
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, data CartUpdatedData) error {
	event, err := pkgkafka.NewEvent(TopicCartUpdated, data.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", data.SessionID),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}
