package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/prat555/Food-Delivery-App/internal/cart"
	"github.com/prat555/Food-Delivery-App/internal/domain"
	"github.com/prat555/Food-Delivery-App/internal/event"
	"github.com/prat555/Food-Delivery-App/internal/payment"
	apperrors "github.com/prat555/Food-Delivery-App/pkg/errors"
	"github.com/prat555/Food-Delivery-App/pkg/validator"
)

// notifyTimeout bounds the fire-and-forget success hand-off.
const notifyTimeout = 5 * time.Second

var checkoutOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "checkout_outcomes_total",
		Help: "Total number of finished checkout confirmations by outcome",
	},
	[]string{"outcome"},
)

// Notifier receives the one-shot order hand-off after a successful
// confirmation. event.Producer satisfies it.
type Notifier interface {
	PublishCheckoutSucceeded(ctx context.Context, data event.CheckoutSucceededData) error
}

// NoopNotifier discards the success hand-off. Used in tests and when Kafka
// is disabled.
type NoopNotifier struct{}

// PublishCheckoutSucceeded does nothing.
func (NoopNotifier) PublishCheckoutSucceeded(context.Context, event.CheckoutSucceededData) error {
	return nil
}

// Workflow orchestrates one checkout at a time against a cart store:
// authorization, instrument collection, and confirmation. The network-bound
// steps run outside the lock, so the cart stays independently mutable while
// they are in flight; totals are re-validated before confirming instead of
// trusting a cached value.
type Workflow struct {
	store    *cart.Store
	provider payment.Provider
	notifier Notifier
	pricing  domain.PricingPolicy
	currency string
	logger   *slog.Logger

	mu         sync.Mutex
	session    *domain.CheckoutSession
	instrument *payment.CardInstrument
	confirming bool

	// gen increments on every Begin and Cancel; a network call that returns
	// to a different generation was superseded and its result is discarded.
	gen uint64
}

// NewWorkflow creates a checkout workflow bound to the given cart store.
func NewWorkflow(store *cart.Store, provider payment.Provider, notifier Notifier, pricing domain.PricingPolicy, currency string, logger *slog.Logger) *Workflow {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Workflow{
		store:    store,
		provider: provider,
		notifier: notifier,
		pricing:  pricing,
		currency: currency,
		logger:   logger,
	}
}

// Status returns the current workflow status.
func (w *Workflow) Status() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session == nil {
		return domain.StatusIdle
	}
	return w.session.Status
}

// Session returns a copy of the current checkout session, or nil when the
// workflow is idle.
func (w *Workflow) Session() *domain.CheckoutSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session == nil {
		return nil
	}
	cpy := *w.session
	return &cpy
}

// Summary computes the payment summary for the current cart contents without
// starting a checkout.
func (w *Workflow) Summary() *domain.CheckoutSession {
	subtotal := w.store.TotalPrice()
	return &domain.CheckoutSession{
		Status:      domain.StatusIdle,
		Subtotal:    subtotal,
		DeliveryFee: w.pricing.DeliveryFee,
		Discount:    w.pricing.Discount,
		Total:       w.pricing.Total(subtotal),
		Currency:    w.currency,
	}
}

// Begin starts a checkout: it refuses on an empty cart without contacting the
// payment backend, computes the total from the cart snapshot, and requests an
// authorization handle for exactly that amount. Calling Begin again while an
// unexpired authorization exists for an unchanged total reuses it; a changed
// total always gets a fresh authorization.
func (w *Workflow) Begin(ctx context.Context) (*domain.CheckoutSession, error) {
	w.mu.Lock()

	if w.confirming || (w.session != nil && w.session.Status == domain.StatusAwaitingAuthorization) {
		w.mu.Unlock()
		return nil, apperrors.CheckoutInFlight()
	}

	if w.store.TotalItemCount() == 0 {
		w.mu.Unlock()
		return nil, apperrors.EmptyCart()
	}

	subtotal := w.store.TotalPrice()
	total := w.pricing.Total(subtotal)

	// Idempotent per total: an existing authorization for the same total is
	// still valid, so hand it back instead of requesting a new one.
	if w.session != nil && w.session.Status == domain.StatusAwaitingInstrument &&
		w.session.Total == total && w.session.PaymentHandle != "" {
		cpy := *w.session
		w.mu.Unlock()
		return &cpy, nil
	}

	now := time.Now().UTC()
	sess := &domain.CheckoutSession{
		ID:          uuid.New().String(),
		Status:      domain.StatusAwaitingAuthorization,
		Subtotal:    subtotal,
		DeliveryFee: w.pricing.DeliveryFee,
		Discount:    w.pricing.Discount,
		Total:       total,
		Currency:    w.currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	w.session = sess
	w.instrument = nil
	w.gen++
	gen := w.gen
	w.mu.Unlock()

	auth, err := w.provider.CreateAuthorization(ctx, total, w.currency)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.gen != gen {
		// Cancelled or superseded while the request was in flight; the
		// authorization completes and is discarded.
		return nil, apperrors.CheckoutCancelled()
	}

	if err != nil {
		sess.Status = domain.StatusFailed
		sess.FailureReason = "authorization failed"
		sess.UpdatedAt = time.Now().UTC()
		w.logger.ErrorContext(ctx, "payment authorization failed",
			slog.String("checkout_id", sess.ID),
			slog.Int64("total", total),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.AuthorizationFailed(err)
	}

	sess.PaymentHandle = auth.Handle
	sess.ClientSecret = auth.ClientSecret
	sess.Status = domain.StatusAwaitingInstrument
	sess.UpdatedAt = time.Now().UTC()

	w.logger.InfoContext(ctx, "checkout started",
		slog.String("checkout_id", sess.ID),
		slog.Int64("subtotal", subtotal),
		slog.Int64("total", total),
		slog.String("currency", w.currency),
	)

	cpy := *sess
	return &cpy, nil
}

// SubmitInstrument validates the payment instrument locally and stores it for
// confirmation. An incomplete instrument is rejected without any backend call.
func (w *Workflow) SubmitInstrument(card *payment.CardInstrument) error {
	if card == nil {
		return apperrors.Validation("payment instrument is required")
	}
	if err := validator.Validate(card); err != nil {
		return apperrors.Validation(err.Error())
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirming {
		return apperrors.CheckoutInFlight()
	}
	if w.session == nil || w.session.Status != domain.StatusAwaitingInstrument {
		return apperrors.Conflict("no checkout is awaiting a payment instrument")
	}

	cpy := *card
	w.instrument = &cpy
	w.session.UpdatedAt = time.Now().UTC()
	return nil
}

// Confirm submits the instrument and authorization handle for confirmation.
// It is single-flight: a second call while one is in flight is refused, not
// queued. The cart total is re-read first; if it changed since authorization
// a fresh authorization is requested, so a stale handle is never used against
// a changed total. The provider call is a single non-retried attempt. On
// success the cart is cleared and then the order hand-off fires, exactly once
// and in that order; on any failure the cart is left untouched.
func (w *Workflow) Confirm(ctx context.Context) (*domain.CheckoutSession, error) {
	w.mu.Lock()

	if w.confirming {
		w.mu.Unlock()
		return nil, apperrors.CheckoutInFlight()
	}
	if w.session == nil || w.session.Status != domain.StatusAwaitingInstrument {
		w.mu.Unlock()
		return nil, apperrors.Conflict("checkout is not ready to confirm")
	}
	if w.instrument == nil {
		w.mu.Unlock()
		return nil, apperrors.Validation("payment instrument has not been provided")
	}
	if w.store.TotalItemCount() == 0 {
		w.mu.Unlock()
		return nil, apperrors.EmptyCart()
	}

	sess := w.session
	card := w.instrument
	subtotal := w.store.TotalPrice()
	total := w.pricing.Total(subtotal)
	needsReauth := total != sess.Total
	handle := sess.PaymentHandle

	w.confirming = true
	sess.Status = domain.StatusConfirming
	sess.UpdatedAt = time.Now().UTC()
	gen := w.gen
	w.mu.Unlock()

	if needsReauth {
		auth, err := w.provider.CreateAuthorization(ctx, total, w.currency)

		w.mu.Lock()
		if w.gen != gen {
			w.confirming = false
			w.mu.Unlock()
			return nil, apperrors.CheckoutCancelled()
		}
		if err != nil {
			w.confirming = false
			sess.Status = domain.StatusFailed
			sess.FailureReason = "authorization failed"
			w.mu.Unlock()
			checkoutOutcomes.WithLabelValues("authorization_failed").Inc()
			return nil, apperrors.AuthorizationFailed(err)
		}

		w.logger.InfoContext(ctx, "cart total changed, re-authorized",
			slog.String("checkout_id", sess.ID),
			slog.Int64("old_total", sess.Total),
			slog.Int64("new_total", total),
		)

		sess.PaymentHandle = auth.Handle
		sess.ClientSecret = auth.ClientSecret
		sess.Subtotal = subtotal
		sess.Total = total
		handle = auth.Handle
		w.mu.Unlock()
	}

	result, err := w.provider.ConfirmPayment(ctx, handle, card)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.confirming = false

	if err != nil {
		sess.Status = domain.StatusFailed
		sess.FailureReason = err.Error()
		sess.UpdatedAt = time.Now().UTC()

		var declined *apperrors.PaymentDeclinedError
		if errors.As(err, &declined) {
			sess.FailureReason = declined.Message
			checkoutOutcomes.WithLabelValues("declined").Inc()
			w.logger.WarnContext(ctx, "payment declined",
				slog.String("checkout_id", sess.ID),
				slog.String("decline_code", declined.DeclineCode),
			)
			return nil, err
		}

		checkoutOutcomes.WithLabelValues("failed").Inc()
		w.logger.ErrorContext(ctx, "payment confirmation failed",
			slog.String("checkout_id", sess.ID),
			slog.String("error", err.Error()),
		)
		// Conservative: an unknown failure is never assumed to have succeeded.
		return nil, apperrors.Internal(err)
	}

	if result.Status != payment.StatusSucceeded {
		declined := apperrors.Declined(result.DeclineCode)
		sess.Status = domain.StatusFailed
		sess.FailureReason = declined.Message
		sess.UpdatedAt = time.Now().UTC()
		checkoutOutcomes.WithLabelValues("declined").Inc()
		w.logger.WarnContext(ctx, "payment declined",
			slog.String("checkout_id", sess.ID),
			slog.String("decline_code", result.DeclineCode),
		)
		return nil, declined
	}

	itemCount := w.store.TotalItemCount()
	sess.Status = domain.StatusSucceeded
	sess.OrderReference = result.Reference
	sess.UpdatedAt = time.Now().UTC()
	checkoutOutcomes.WithLabelValues("succeeded").Inc()

	// Clear first, then hand off. Never the reverse.
	w.store.Clear()
	w.notifySucceeded(ctx, sess, itemCount)

	w.logger.InfoContext(ctx, "checkout succeeded",
		slog.String("checkout_id", sess.ID),
		slog.String("order_reference", result.Reference),
		slog.Int64("total", sess.Total),
	)

	cpy := *sess
	return &cpy, nil
}

// Cancel abandons the current checkout. An in-flight authorization is allowed
// to complete and is discarded; a confirmation already in flight cannot be
// cancelled.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.confirming {
		return apperrors.CheckoutInFlight()
	}
	if w.session == nil || w.session.IsTerminal() {
		return apperrors.Conflict("no active checkout to cancel")
	}

	w.gen++
	w.session.Status = domain.StatusCancelled
	w.session.PaymentHandle = ""
	w.session.ClientSecret = ""
	w.session.UpdatedAt = time.Now().UTC()
	w.instrument = nil

	w.logger.Info("checkout cancelled",
		slog.String("checkout_id", w.session.ID),
	)
	return nil
}

// notifySucceeded fires the order hand-off without awaiting it. The hand-off
// runs detached from the request context with its own timeout.
func (w *Workflow) notifySucceeded(ctx context.Context, sess *domain.CheckoutSession, itemCount int) {
	data := event.CheckoutSucceededData{
		SessionID:      sess.ID,
		OrderReference: sess.OrderReference,
		Subtotal:       sess.Subtotal,
		DeliveryFee:    sess.DeliveryFee,
		Discount:       sess.Discount,
		Total:          sess.Total,
		Currency:       sess.Currency,
		ItemCount:      itemCount,
	}

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := w.notifier.PublishCheckoutSucceeded(notifyCtx, data); err != nil {
			w.logger.Error("failed to publish checkout.succeeded event",
				slog.String("checkout_id", data.SessionID),
				slog.String("error", err.Error()),
			)
		}
	}()
}
