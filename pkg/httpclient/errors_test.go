package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/prat555/Food-Delivery-App/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_DeclinedWithCode(t *testing.T) {
	resp := fakeResponse(http.StatusPaymentRequired,
		`{"error":{"code":"PAYMENT_DECLINED","message":"declined","decline_code":"insufficient_funds"}}`)

	err := ParseResponseError(resp, "payment")

	require.Error(t, err)
	var declined *apperrors.PaymentDeclinedError
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, apperrors.DeclineInsufficientFunds, declined.DeclineCode)
	assert.ErrorIs(t, err, apperrors.ErrPaymentDeclined)
}

func TestParseResponseError_NotFound(t *testing.T) {
	resp := fakeResponse(http.StatusNotFound,
		`{"error":{"code":"NOT_FOUND","message":"menu item missing"}}`)

	err := ParseResponseError(resp, "catalog")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestParseResponseError_BadRequest(t *testing.T) {
	resp := fakeResponse(http.StatusBadRequest,
		`{"error":{"code":"INVALID_INPUT","message":"amount must be positive"}}`)

	err := ParseResponseError(resp, "payment")

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "payment")
}

func TestParseResponseError_ServiceUnavailable(t *testing.T) {
	resp := fakeResponse(http.StatusServiceUnavailable,
		`{"error":{"code":"SERVICE_UNAVAILABLE","message":"maintenance"}}`)

	err := ParseResponseError(resp, "catalog")

	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestParseResponseError_ServerError(t *testing.T) {
	resp := fakeResponse(http.StatusInternalServerError,
		`{"error":{"code":"INTERNAL_ERROR","message":"boom"}}`)

	err := ParseResponseError(resp, "payment")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusBadGateway, "upstream timeout")

	err := ParseResponseError(resp, "payment")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(402))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(200))
	assert.False(t, IsClientError(500))
}
