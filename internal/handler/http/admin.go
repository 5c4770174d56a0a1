package http

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/imvikashdev/storefront/internal/domain"
)

// AdminClient is the subset of the commerce API the admin view needs.
type AdminClient interface {
	FetchAdminStats(ctx context.Context) (*domain.AdminStats, error)
	FetchActiveDiscount(ctx context.Context) (*domain.DiscountCode, error)
}

// AdminHandler serves the read-only store statistics page.
type AdminHandler struct {
	commerce AdminClient
	view     *View
	logger   *slog.Logger
}

// NewAdminHandler creates the admin page handler.
func NewAdminHandler(client AdminClient, view *View, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		commerce: client,
		view:     view,
		logger:   logger,
	}
}

// Stats handles GET /admin. The statistics aggregate and the active
// discount code are fetched concurrently; either failure aborts the page
// since a partial dashboard would be misleading.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	var (
		stats    *domain.AdminStats
		discount *domain.DiscountCode
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stats, err = h.commerce.FetchAdminStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		discount, err = h.commerce.FetchActiveDiscount(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load admin stats",
			slog.String("error", err.Error()),
		)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		_ = h.view.Render(w, "error", sess, pageData{
			Title:        "Store statistics",
			ErrorMessage: err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.view.Render(w, "admin", sess, pageData{
		Title:          "Store statistics",
		Stats:          stats,
		ActiveDiscount: discount,
	}); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render admin page",
			slog.String("error", err.Error()),
		)
	}
}
