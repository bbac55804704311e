package domain

import "time"

// Checkout session status constants.
const (
	StatusIdle                  = "idle"
	StatusAwaitingAuthorization = "awaiting_authorization"
	StatusAwaitingInstrument    = "awaiting_instrument"
	StatusConfirming            = "confirming"
	StatusSucceeded             = "succeeded"
	StatusFailed                = "failed"
	StatusCancelled             = "cancelled"
)

// PricingPolicy holds the fixed per-order charges applied on top of the cart
// subtotal. Amounts are in cents.
type PricingPolicy struct {
	DeliveryFee int64
	Discount    int64
}

// Total computes subtotal + delivery fee - discount.
func (p PricingPolicy) Total(subtotal int64) int64 {
	return subtotal + p.DeliveryFee - p.Discount
}

// CheckoutSession is the ephemeral state of one checkout attempt. It is never
// persisted; it lives only as long as the workflow that owns it.
type CheckoutSession struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	Subtotal       int64     `json:"subtotal"`
	DeliveryFee    int64     `json:"delivery_fee"`
	Discount       int64     `json:"discount"`
	Total          int64     `json:"total"`
	Currency       string    `json:"currency"`
	ClientSecret   string    `json:"client_secret,omitempty"`
	OrderReference string    `json:"order_reference,omitempty"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// PaymentHandle is the opaque authorization token from the payment
	// backend. It is valid only for the exact Total it was issued for.
	PaymentHandle string `json:"-"`
}

// IsTerminal returns true if the session can never progress again.
// Failed is deliberately not terminal: a declined payment returns the
// workflow to Idle so the user can re-submit.
func (s *CheckoutSession) IsTerminal() bool {
	return s.Status == StatusSucceeded || s.Status == StatusCancelled
}

// ValidStatuses returns the set of valid checkout session statuses.
func ValidStatuses() []string {
	return []string{
		StatusIdle,
		StatusAwaitingAuthorization,
		StatusAwaitingInstrument,
		StatusConfirming,
		StatusSucceeded,
		StatusFailed,
		StatusCancelled,
	}
}

// IsValidStatus checks whether the given status string is a valid checkout status.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
