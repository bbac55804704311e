package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/prat555/Food-Delivery-App/internal/domain"
	"github.com/prat555/Food-Delivery-App/pkg/httpclient"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Category is a menu category for browsing and search filtering.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MenuFilter narrows a menu listing. Zero value lists everything.
type MenuFilter struct {
	Query    string
	Category string
	Limit    int
}

// Client reads menu items and categories from the hosted catalog backend.
// Results are not cached; the storefront denormalizes what it needs into
// cart lines at add time.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a catalog client.
func NewClient(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// ListMenuItems fetches menu items matching the filter.
func (c *Client) ListMenuItems(ctx context.Context, filter MenuFilter) ([]domain.MenuItemRef, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("query", filter.Query)
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", filter.Limit))
	}

	endpoint := c.baseURL + "/v1/menu/items"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create menu items request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var body struct {
		Items []domain.MenuItemRef `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode menu items response: %w", err)
	}

	c.logger.DebugContext(ctx, "menu items listed",
		slog.Int("count", len(body.Items)),
		slog.String("query", filter.Query),
		slog.String("category", filter.Category),
	)

	return body.Items, nil
}

// ListCategories fetches all menu categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/menu/categories", nil)
	if err != nil {
		return nil, fmt.Errorf("create categories request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var body struct {
		Categories []Category `json:"categories"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode categories response: %w", err)
	}

	return body.Categories, nil
}
