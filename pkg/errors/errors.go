package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal error")
	ErrConflict         = errors.New("conflict")
	ErrServiceUnavail   = errors.New("service unavailable")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrAuthorization    = errors.New("payment authorization failed")
	ErrValidation       = errors.New("validation failed")
	ErrPaymentDeclined  = errors.New("payment declined")
	ErrCheckoutInFlight  = errors.New("checkout already in progress")
	ErrCheckoutCancelled = errors.New("checkout cancelled")
)

// Decline codes reported by the payment backend for a declined confirmation.
const (
	DeclineCardDeclined      = "card_declined"
	DeclineInsufficientFunds = "insufficient_funds"
	DeclineIncorrectCVC      = "incorrect_cvc"
	DeclineExpiredCard       = "expired_card"
	DeclineProcessingError   = "processing_error"
)

// declineMessages maps decline codes to user-facing messages.
var declineMessages = map[string]string{
	DeclineCardDeclined:      "Your card was declined. Please try a different payment method.",
	DeclineInsufficientFunds: "Insufficient funds. Please check your account balance.",
	DeclineIncorrectCVC:      "Your card's security code is incorrect.",
	DeclineExpiredCard:       "Your card has expired. Please use a different card.",
	DeclineProcessingError:   "An error occurred while processing your card. Please try again.",
}

// DeclineMessage returns the user-facing message for a decline code.
// Unknown codes fall back to a generic message.
func DeclineMessage(code string) string {
	if msg, ok := declineMessages[code]; ok {
		return msg
	}
	return "Payment failed. Please try again."
}

// AppError represents a structured application error with HTTP status mapping.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ServiceUnavailable creates a 503 error.
func ServiceUnavailable(message string) *AppError {
	return &AppError{
		Code:    "SERVICE_UNAVAILABLE",
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     ErrServiceUnavail,
	}
}

// EmptyCart creates a 422 error for a checkout attempted on an empty cart.
func EmptyCart() *AppError {
	return &AppError{
		Code:    "EMPTY_CART",
		Message: "cannot check out an empty cart",
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrEmptyCart,
	}
}

// AuthorizationFailed creates a 502 error for a failed payment authorization.
// The payment backend could not issue a handle; the caller may retry.
func AuthorizationFailed(err error) *AppError {
	return &AppError{
		Code:    "AUTHORIZATION_FAILED",
		Message: "Failed to initialize payment. Please try again.",
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %w", ErrAuthorization, err),
	}
}

// Validation creates a 400 error for a locally rejected payment instrument.
func Validation(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrValidation,
	}
}

// PaymentDeclinedError is an AppError carrying the backend decline code.
// Its Message is the user-facing text for the decline code.
type PaymentDeclinedError struct {
	AppError
	DeclineCode string `json:"decline_code"`
}

// Declined creates a PaymentDeclinedError for the given decline code.
func Declined(code string) *PaymentDeclinedError {
	return &PaymentDeclinedError{
		AppError: AppError{
			Code:    "PAYMENT_DECLINED",
			Message: DeclineMessage(code),
			Status:  http.StatusPaymentRequired,
			Err:     ErrPaymentDeclined,
		},
		DeclineCode: code,
	}
}

// CheckoutInFlight creates a 409 error for a double-submitted checkout step.
func CheckoutInFlight() *AppError {
	return &AppError{
		Code:    "CHECKOUT_IN_FLIGHT",
		Message: "a payment is already being processed",
		Status:  http.StatusConflict,
		Err:     ErrCheckoutInFlight,
	}
}

// CheckoutCancelled creates a 409 error for an operation completing after the
// checkout was cancelled; the in-flight result is discarded.
func CheckoutCancelled() *AppError {
	return &AppError{
		Code:    "CHECKOUT_CANCELLED",
		Message: "the checkout was cancelled",
		Status:  http.StatusConflict,
		Err:     ErrCheckoutCancelled,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict), errors.Is(err, ErrCheckoutInFlight), errors.Is(err, ErrCheckoutCancelled):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrPaymentDeclined):
		return http.StatusPaymentRequired
	case errors.Is(err, ErrAuthorization):
		return http.StatusBadGateway
	case errors.Is(err, ErrServiceUnavail):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
