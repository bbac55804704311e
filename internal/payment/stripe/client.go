package stripe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prat555/Food-Delivery-App/internal/payment"
	"github.com/prat555/Food-Delivery-App/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the hosted payment backend, which fronts Stripe payment
// intents. CreateAuthorization maps to intent creation and ConfirmPayment to
// intent confirmation.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a payment backend client. The HTTP client handed in must
// not retry: a confirmation is a single attempt per user tap.
func NewClient(httpClient HTTPDoer, baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "stripe"
}

// CreateAuthorization creates a payment intent for exactly the given amount.
func (c *Client) CreateAuthorization(ctx context.Context, amountCents int64, currency string) (*payment.Authorization, error) {
	type intentRequest struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}

	type intentResponse struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}

	body, err := json.Marshal(intentRequest{Amount: amountCents, Currency: currency})
	if err != nil {
		return nil, fmt.Errorf("marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment-intents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create intent request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call payment backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "payment")
	}

	var intent intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("decode intent response: %w", err)
	}

	c.logger.InfoContext(ctx, "payment intent created",
		slog.String("intent_id", intent.ID),
		slog.Int64("amount", amountCents),
		slog.String("currency", currency),
	)

	return &payment.Authorization{
		Handle:       intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmPayment confirms the intent with the given card instrument. Declines
// come back as a 402 with a decline code and are surfaced as typed errors by
// the shared response error mapping.
func (c *Client) ConfirmPayment(ctx context.Context, handle string, card *payment.CardInstrument) (*payment.ConfirmResult, error) {
	type confirmRequest struct {
		Card *payment.CardInstrument `json:"card"`
	}

	type confirmResponse struct {
		Status      string `json:"status"`
		Reference   string `json:"reference"`
		DeclineCode string `json:"decline_code,omitempty"`
	}

	body, err := json.Marshal(confirmRequest{Card: card})
	if err != nil {
		return nil, fmt.Errorf("marshal confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment-intents/"+handle+"/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create confirm request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call payment backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "payment")
	}

	var confirm confirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&confirm); err != nil {
		return nil, fmt.Errorf("decode confirm response: %w", err)
	}

	c.logger.InfoContext(ctx, "payment confirmation completed",
		slog.String("intent_id", handle),
		slog.String("status", confirm.Status),
	)

	return &payment.ConfirmResult{
		Status:      confirm.Status,
		Reference:   confirm.Reference,
		DeclineCode: confirm.DeclineCode,
	}, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
