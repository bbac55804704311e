package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prat555/Food-Delivery-App/internal/catalog"
	"github.com/prat555/Food-Delivery-App/internal/session"
	"github.com/prat555/Food-Delivery-App/pkg/health"
	"github.com/prat555/Food-Delivery-App/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	sessions *session.Manager,
	catalogClient *catalog.Client,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	cartHandler := NewCartHandler(logger)
	checkoutHandler := NewCheckoutHandler(logger)
	menuHandler := NewMenuHandler(catalogClient, logger)

	// Menu browsing does not need a session.
	r.Route("/api/v1/menu", func(r chi.Router) {
		r.Get("/items", menuHandler.ListItems)
		r.Get("/categories", menuHandler.ListCategories)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader(sessions))

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Post("/items/{itemId}/increase", cartHandler.IncreaseQuantity)
		r.Post("/items/{itemId}/decrease", cartHandler.DecreaseQuantity)
		r.Post("/items/{itemId}/remove", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader(sessions))

		r.Get("/summary", checkoutHandler.Summary)
		r.Post("/begin", checkoutHandler.Begin)
		r.Post("/instrument", checkoutHandler.SubmitInstrument)
		r.Post("/confirm", checkoutHandler.Confirm)
		r.Post("/cancel", checkoutHandler.Cancel)
	})

	return r
}
