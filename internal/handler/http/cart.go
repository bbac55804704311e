package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prat555/Food-Delivery-App/internal/cart"
	"github.com/prat555/Food-Delivery-App/internal/domain"
	apperrors "github.com/prat555/Food-Delivery-App/pkg/errors"
	"github.com/prat555/Food-Delivery-App/pkg/httputil"
	"github.com/prat555/Food-Delivery-App/pkg/money"
	"github.com/prat555/Food-Delivery-App/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(logger *slog.Logger) *CartHandler {
	return &CartHandler{logger: logger}
}

// --- Request DTOs ---

// CustomizationRequest is one selected customization on a cart line.
type CustomizationRequest struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Price int64  `json:"price" validate:"gte=0"`
}

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ItemID         string                 `json:"item_id" validate:"required"`
	Name           string                 `json:"name" validate:"required,min=1,max=500"`
	Price          int64                  `json:"price" validate:"required,gte=0"`
	ImageURL       string                 `json:"image_url"`
	Customizations []CustomizationRequest `json:"customizations" validate:"dive"`
}

// LineTargetRequest identifies an existing cart line by its customization set.
type LineTargetRequest struct {
	CustomizationIDs []string `json:"customization_ids"`
}

// --- Response DTOs ---

// CartLineResponse is one cart line in API responses.
type CartLineResponse struct {
	ItemID         string                 `json:"item_id"`
	Name           string                 `json:"name"`
	Price          int64                  `json:"price"`
	ImageURL       string                 `json:"image_url,omitempty"`
	Customizations []domain.Customization `json:"customizations"`
	Quantity       int                    `json:"quantity"`
	UnitPrice      int64                  `json:"unit_price"`
	LineTotal      int64                  `json:"line_total"`
}

// CartResponse is the full cart in API responses.
type CartResponse struct {
	Lines           []CartLineResponse `json:"lines"`
	ItemCount       int                `json:"item_count"`
	Subtotal        int64              `json:"subtotal"`
	SubtotalDisplay string             `json:"subtotal_display"`
}

func cartResponse(store *cart.Store) CartResponse {
	snap := store.Snapshot()
	lines := make([]CartLineResponse, 0, len(snap.Lines))
	for i := range snap.Lines {
		l := &snap.Lines[i]
		lines = append(lines, CartLineResponse{
			ItemID:         l.ItemID,
			Name:           l.Name,
			Price:          l.Price,
			ImageURL:       l.ImageURL,
			Customizations: l.Customizations,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice(),
			LineTotal:      l.LineTotal(),
		})
	}
	return CartResponse{
		Lines:           lines,
		ItemCount:       snap.ItemCount,
		Subtotal:        snap.Subtotal,
		SubtotalDisplay: money.Cents(snap.Subtotal).Format(),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(sess.Cart)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	customizations := make([]domain.Customization, 0, len(req.Customizations))
	for _, c := range req.Customizations {
		customizations = append(customizations, domain.Customization{ID: c.ID, Name: c.Name, Price: c.Price})
	}

	sess.Cart.AddItem(domain.MenuItemRef{
		ID:       req.ItemID,
		Name:     req.Name,
		Price:    req.Price,
		ImageURL: req.ImageURL,
	}, customizations)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(sess.Cart)})
}

// IncreaseQuantity handles POST /api/v1/cart/items/{itemId}/increase
func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.adjustLine(w, r, func(store *cart.Store, itemID string, customizations []domain.Customization) bool {
		return store.IncreaseQuantity(itemID, customizations)
	})
}

// DecreaseQuantity handles POST /api/v1/cart/items/{itemId}/decrease
func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	h.adjustLine(w, r, func(store *cart.Store, itemID string, customizations []domain.Customization) bool {
		return store.DecreaseQuantity(itemID, customizations)
	})
}

// RemoveItem handles POST /api/v1/cart/items/{itemId}/remove
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.adjustLine(w, r, func(store *cart.Store, itemID string, customizations []domain.Customization) bool {
		return store.RemoveItem(itemID, customizations)
	})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	sess.Cart.Clear()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(sess.Cart)})
}

// adjustLine applies a quantity or removal operation to the line identified by
// the item ID path param and the customization set from the body. An absent or
// empty body targets the line with no customizations.
func (h *CartHandler) adjustLine(w http.ResponseWriter, r *http.Request, op func(*cart.Store, string, []domain.Customization) bool) {
	sess, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("session is required"), h.logger)
		return
	}

	itemID := chi.URLParam(r, "itemId")
	if itemID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("itemId is required"), h.logger)
		return
	}

	var req LineTargetRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
			return
		}
	}

	// Only the IDs participate in line identity.
	customizations := make([]domain.Customization, 0, len(req.CustomizationIDs))
	for _, id := range req.CustomizationIDs {
		customizations = append(customizations, domain.Customization{ID: id})
	}

	if !op(sess.Cart, itemID, customizations) {
		httputil.WriteError(w, r, apperrors.NotFound("cart line", itemID), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cartResponse(sess.Cart)})
}
