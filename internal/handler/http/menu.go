package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prat555/Food-Delivery-App/internal/catalog"
	apperrors "github.com/prat555/Food-Delivery-App/pkg/errors"
	"github.com/prat555/Food-Delivery-App/pkg/httputil"
)

// MenuHandler handles HTTP requests for menu browsing endpoints.
type MenuHandler struct {
	catalog *catalog.Client
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu HTTP handler.
func NewMenuHandler(client *catalog.Client, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{catalog: client, logger: logger}
}

// ListItems handles GET /api/v1/menu/items
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	filter := catalog.MenuFilter{
		Query:    r.URL.Query().Get("query"),
		Category: r.URL.Query().Get("category"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			httputil.WriteError(w, r, apperrors.InvalidInput("limit must be a positive integer"), h.logger)
			return
		}
		filter.Limit = limit
	}

	items, err := h.catalog.ListMenuItems(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"items": items}})
}

// ListCategories handles GET /api/v1/menu/categories
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"categories": categories}})
}
