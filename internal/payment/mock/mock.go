package mock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prat555/Food-Delivery-App/internal/payment"
)

// Provider is a mock payment backend for development and testing. By default
// every confirmation succeeds after a fixed processing delay. Setting
// DeclineCode makes every confirmation fail with that decline code.
type Provider struct {
	// Delay simulates backend processing time on confirmation.
	Delay time.Duration

	// DeclineCode, when non-empty, makes ConfirmPayment report a decline
	// with this code instead of succeeding.
	DeclineCode string
}

// NewProvider creates a mock provider with a small fixed delay.
func NewProvider(delay time.Duration) *Provider {
	return &Provider{Delay: delay}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// CreateAuthorization issues a fresh fake authorization handle for any amount.
func (p *Provider) CreateAuthorization(ctx context.Context, _ int64, _ string) (*payment.Authorization, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	return &payment.Authorization{
		Handle:       "mock_auth_" + id,
		ClientSecret: "mock_secret_" + id,
	}, nil
}

// ConfirmPayment simulates a confirmation attempt.
func (p *Provider) ConfirmPayment(ctx context.Context, _ string, _ *payment.CardInstrument) (*payment.ConfirmResult, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	if p.DeclineCode != "" {
		return &payment.ConfirmResult{
			Status:      payment.StatusFailed,
			DeclineCode: p.DeclineCode,
		}, nil
	}

	return &payment.ConfirmResult{
		Status:    payment.StatusSucceeded,
		Reference: "mock_pay_" + uuid.New().String(),
	}, nil
}

func (p *Provider) wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(p.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
