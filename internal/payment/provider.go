package payment

import (
	"context"
)

// Confirmation status values reported by providers.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// CardInstrument is the payment instrument collected from the user. It is
// validated locally before any backend call so incomplete cards never leave
// the process.
type CardInstrument struct {
	Number     string `json:"number" validate:"required,credit_card"`
	ExpMonth   int    `json:"exp_month" validate:"required,gte=1,lte=12"`
	ExpYear    int    `json:"exp_year" validate:"required,gte=2020"`
	CVC        string `json:"cvc" validate:"required,numeric,min=3,max=4"`
	HolderName string `json:"holder_name" validate:"required,min=1,max=200"`
}

// Authorization is the handle returned by CreateAuthorization. The handle
// reserves a charge for an exact amount and is consumed exactly once by
// confirmation; the client secret is handed to the UI layer.
type Authorization struct {
	Handle       string
	ClientSecret string
}

// ConfirmResult is the outcome of a confirmation attempt. DeclineCode is set
// only when Status is "failed" and the backend reported a typed decline.
type ConfirmResult struct {
	Status      string
	Reference   string
	DeclineCode string
}

// Provider defines the interface to the payment backend. Implementations:
// the mock provider for development and tests, and the Stripe-backed HTTP
// client for the hosted backend.
type Provider interface {
	// Name returns the provider name (e.g., "mock", "stripe").
	Name() string

	// CreateAuthorization requests an authorization handle for exactly the
	// given amount in cents.
	CreateAuthorization(ctx context.Context, amountCents int64, currency string) (*Authorization, error)

	// ConfirmPayment submits the instrument and handle for confirmation.
	// This is a single attempt; the provider must not retry internally.
	ConfirmPayment(ctx context.Context, handle string, card *CardInstrument) (*ConfirmResult, error)
}
