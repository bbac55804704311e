package httpclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cbTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cbTestConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func TestCircuitBreaker_PassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewCircuitBreakerClient(New(NoRetry(testConfig())), cbTestConfig("cb-pass"), cbTestLogger())
	resp, err := c.Get(context.Background(), srv.URL)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewCircuitBreakerClient(New(NoRetry(testConfig())), cbTestConfig("cb-open"), cbTestLogger())

	for i := 0; i < 5; i++ {
		_, _ = c.Get(context.Background(), srv.URL)
	}

	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_FallbackInvokedWhenOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var fallbackCalls int32
	c := NewCircuitBreakerClient(New(NoRetry(testConfig())), cbTestConfig("cb-fallback"), cbTestLogger()).
		WithFallback(func(ctx context.Context, err error) (*http.Response, error) {
			atomic.AddInt32(&fallbackCalls, 1)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"data":[]}`)),
			}, nil
		})

	for i := 0; i < 5; i++ {
		_, _ = c.Get(context.Background(), srv.URL)
	}

	resp, err := c.Get(context.Background(), srv.URL)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fallbackCalls))
}

func TestCircuitBreaker_4xxDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewCircuitBreakerClient(New(NoRetry(testConfig())), cbTestConfig("cb-4xx"), cbTestLogger())

	for i := 0; i < 10; i++ {
		resp, err := c.Get(context.Background(), srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, gobreaker.StateClosed, c.State())
}
