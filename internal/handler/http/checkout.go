package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prat555/Food-Delivery-App/internal/domain"
	"github.com/prat555/Food-Delivery-App/internal/payment"
	apperrors "github.com/prat555/Food-Delivery-App/pkg/errors"
	"github.com/prat555/Food-Delivery-App/pkg/httputil"
	"github.com/prat555/Food-Delivery-App/pkg/money"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	logger *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{logger: logger}
}

// --- Request DTOs ---

// InstrumentRequest is the JSON request body for submitting a payment card.
type InstrumentRequest struct {
	Number     string `json:"number"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
	CVC        string `json:"cvc"`
	HolderName string `json:"holder_name"`
}

// --- Response DTOs ---

// CheckoutResponse is a checkout session in API responses.
type CheckoutResponse struct {
	ID             string `json:"id,omitempty"`
	Status         string `json:"status"`
	Subtotal       int64  `json:"subtotal"`
	DeliveryFee    int64  `json:"delivery_fee"`
	Discount       int64  `json:"discount"`
	Total          int64  `json:"total"`
	TotalDisplay   string `json:"total_display"`
	Currency       string `json:"currency"`
	ClientSecret   string `json:"client_secret,omitempty"`
	OrderReference string `json:"order_reference,omitempty"`
	FailureReason  string `json:"failure_reason,omitempty"`
}

func checkoutResponse(sess *domain.CheckoutSession) CheckoutResponse {
	return CheckoutResponse{
		ID:             sess.ID,
		Status:         sess.Status,
		Subtotal:       sess.Subtotal,
		DeliveryFee:    sess.DeliveryFee,
		Discount:       sess.Discount,
		Total:          sess.Total,
		TotalDisplay:   money.Cents(sess.Total).Format(),
		Currency:       sess.Currency,
		ClientSecret:   sess.ClientSecret,
		OrderReference: sess.OrderReference,
		FailureReason:  sess.FailureReason,
	}
}

// --- Handlers ---

// Begin handles POST /api/v1/checkout/begin
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	checkout, err := sess.Checkout.Begin(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: checkoutResponse(checkout)})
}

// SubmitInstrument handles POST /api/v1/checkout/instrument
func (h *CheckoutHandler) SubmitInstrument(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	var req InstrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	card := &payment.CardInstrument{
		Number:     req.Number,
		ExpMonth:   req.ExpMonth,
		ExpYear:    req.ExpYear,
		CVC:        req.CVC,
		HolderName: req.HolderName,
	}
	if err := sess.Checkout.SubmitInstrument(card); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "instrument_accepted"}})
}

// Confirm handles POST /api/v1/checkout/confirm
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	checkout, err := sess.Checkout.Confirm(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: checkoutResponse(checkout)})
}

// Cancel handles POST /api/v1/checkout/cancel
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	if err := sess.Checkout.Cancel(); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cancelled"}})
}

// Summary handles GET /api/v1/checkout/summary
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: checkoutResponse(sess.Checkout.Summary())})
}
