package http

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imvikashdev/storefront/internal/cart"
	"github.com/imvikashdev/storefront/internal/session"
	"github.com/imvikashdev/storefront/pkg/health"
	"github.com/imvikashdev/storefront/pkg/middleware"
)

//go:embed static
var staticFS embed.FS

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	controller *cart.Controller,
	adminClient AdminClient,
	sessions session.Store,
	view *View,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Static assets
	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Storefront pages
	storefront := NewStorefrontHandler(controller, sessions, view, logger)
	admin := NewAdminHandler(adminClient, view, logger)

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(sessions, logger))
		r.Use(middleware.RequestLogger(logger))

		r.Get("/", storefront.Index)
		r.Post("/session/user", storefront.SetUser)

		r.Get("/cart", storefront.Cart)
		r.Post("/cart/items", storefront.AddItem)
		r.Post("/cart/items/{itemID}/remove", storefront.RemoveItem)
		r.Post("/cart/clear", storefront.ClearCart)

		r.Get("/checkout", storefront.CheckoutPage)
		r.Post("/checkout", storefront.Checkout)
		r.Get("/orders/latest", storefront.LatestOrder)

		r.Get("/admin", admin.Stats)
	})

	return r
}
