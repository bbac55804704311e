package stripe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prat555/Food-Delivery-App/internal/payment"
	apperrors "github.com/prat555/Food-Delivery-App/pkg/errors"
	"github.com/prat555/Food-Delivery-App/pkg/httpclient"
)

func testCard() *payment.CardInstrument {
	return &payment.CardInstrument{
		Number:     "4242424242424242",
		ExpMonth:   12,
		ExpYear:    2030,
		CVC:        "123",
		HolderName: "Jordan Diner",
	}
}

func newTestClient(baseURL string) *Client {
	httpc := httpclient.New(httpclient.NoRetry(httpclient.DefaultConfig()))
	return NewClient(httpc, baseURL, "sk_test_123", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateAuthorization_Success(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment-intents", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_abc",
		})
	}))
	defer srv.Close()

	auth, err := newTestClient(srv.URL).CreateAuthorization(context.Background(), 2450, "usd")

	require.NoError(t, err)
	assert.Equal(t, "pi_123", auth.Handle)
	assert.Equal(t, "pi_123_secret_abc", auth.ClientSecret)
	assert.Equal(t, "Bearer sk_test_123", gotAuth)
	assert.Equal(t, float64(2450), gotBody["amount"])
	assert.Equal(t, "usd", gotBody["currency"])
}

func TestCreateAuthorization_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"INVALID_INPUT","message":"amount too small"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateAuthorization(context.Background(), 1, "usd")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestConfirmPayment_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment-intents/pi_123/confirm", r.URL.Path)

		var body struct {
			Card *payment.CardInstrument `json:"card"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotNil(t, body.Card)
		assert.Equal(t, "4242424242424242", body.Card.Number)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "succeeded",
			"reference": "pay_789",
		})
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).ConfirmPayment(context.Background(), "pi_123", testCard())

	require.NoError(t, err)
	assert.Equal(t, payment.StatusSucceeded, result.Status)
	assert.Equal(t, "pay_789", result.Reference)
}

func TestConfirmPayment_DeclinedMapsToTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"code":"PAYMENT_DECLINED","message":"declined","decline_code":"insufficient_funds"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConfirmPayment(context.Background(), "pi_123", testCard())

	require.Error(t, err)
	var declined *apperrors.PaymentDeclinedError
	require.True(t, errors.As(err, &declined))
	assert.Equal(t, apperrors.DeclineInsufficientFunds, declined.DeclineCode)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentDeclined))
}

func TestConfirmPayment_SingleAttempt(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConfirmPayment(context.Background(), "pi_123", testCard())

	require.Error(t, err)
	assert.Equal(t, 1, calls, "confirmation must never be retried")
}

func TestConfirmPayment_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("{"), 3))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ConfirmPayment(context.Background(), "pi_123", testCard())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode confirm response")
}
