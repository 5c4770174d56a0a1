package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/imvikashdev/storefront/internal/cart"
	"github.com/imvikashdev/storefront/internal/catalog"
	"github.com/imvikashdev/storefront/internal/session"
	"github.com/imvikashdev/storefront/pkg/validator"
)

// StorefrontHandler serves the shopper-facing pages. Every mutation is a
// form POST that redirects back to a GET page, so a browser refresh never
// resubmits an add or a checkout.
type StorefrontHandler struct {
	controller *cart.Controller
	sessions   session.Store
	view       *View
	logger     *slog.Logger
}

// NewStorefrontHandler creates the shopper-facing handler.
func NewStorefrontHandler(controller *cart.Controller, sessions session.Store, view *View, logger *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		controller: controller,
		sessions:   sessions,
		view:       view,
		logger:     logger,
	}
}

// --- Request DTOs ---

// SetUserRequest is the form body for switching the active user.
type SetUserRequest struct {
	UserID string `validate:"omitempty,printascii,max=64"`
}

// AddItemRequest is the form body for adding a product to the cart.
type AddItemRequest struct {
	ItemID string `validate:"required,printascii,max=64"`
}

// CheckoutRequest is the form body for placing an order.
type CheckoutRequest struct {
	DiscountCode string `validate:"omitempty,printascii,max=32"`
}

// --- Handlers ---

// Index handles GET /.
func (h *StorefrontHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	h.render(w, r, "index", sess, pageData{
		Title:    "Products",
		Products: catalog.Products(),
	})
}

// SetUser handles POST /session/user.
func (h *StorefrontHandler) SetUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	req := SetUserRequest{UserID: r.PostFormValue("user_id")}
	if err := validator.Validate(req); err != nil {
		h.flashAndRedirect(w, r, sess, session.FlashError, "invalid user id", "/")
		return
	}

	if err := h.controller.SetUser(r.Context(), sess, req.UserID); err != nil {
		h.flashAndRedirect(w, r, sess, session.FlashError, err.Error(), "/")
		return
	}

	if req.UserID == "" {
		h.flashAndRedirect(w, r, sess, session.FlashInfo, "Signed out", "/")
		return
	}
	h.flashAndRedirect(w, r, sess, session.FlashSuccess, "Shopping as "+req.UserID, "/")
}

// Cart handles GET /cart. The cached items are replaced wholesale from the
// server before rendering, so the page always shows server state.
func (h *StorefrontHandler) Cart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	if err := h.controller.Refresh(r.Context(), sess); err != nil {
		sess.AddFlash(session.FlashError, err.Error())
	}

	h.render(w, r, "cart", sess, pageData{
		Title:    "Cart",
		Items:    sess.Items,
		Subtotal: sess.Subtotal(),
	})
}

// AddItem handles POST /cart/items. On success it redirects to the cart
// page, whose refetch picks up the server-merged quantities.
func (h *StorefrontHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	req := AddItemRequest{ItemID: r.PostFormValue("item_id")}
	if err := validator.Validate(req); err != nil {
		h.flashAndRedirect(w, r, sess, session.FlashError, "invalid product", "/")
		return
	}

	product, ok := catalog.Find(req.ItemID)
	if !ok {
		h.flashAndRedirect(w, r, sess, session.FlashError, "unknown product", "/")
		return
	}

	msg, err := h.controller.AddToCart(r.Context(), sess, product.ID, product.Name, product.Price)
	if err != nil {
		if errors.Is(err, cart.ErrNoUser) {
			h.flashAndRedirect(w, r, sess, session.FlashError, "Set a user ID before adding items", "/")
			return
		}
		h.flashAndRedirect(w, r, sess, session.FlashError, err.Error(), "/")
		return
	}

	h.flashAndRedirect(w, r, sess, session.FlashSuccess, msg, "/cart")
}

// RemoveItem handles POST /cart/items/{itemID}/remove. The commerce API
// has no removal endpoint, so this only explains that to the shopper.
func (h *StorefrontHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	err := h.controller.RemoveItem(r.Context(), sess, chi.URLParam(r, "itemID"))
	h.flashAndRedirect(w, r, sess, session.FlashInfo, err.Error(), "/cart")
}

// ClearCart handles POST /cart/clear.
func (h *StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	err := h.controller.ClearCart(r.Context(), sess)
	h.flashAndRedirect(w, r, sess, session.FlashInfo, err.Error(), "/cart")
}

// CheckoutPage handles GET /checkout.
func (h *StorefrontHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	h.render(w, r, "checkout", sess, pageData{
		Title:    "Checkout",
		Items:    sess.Items,
		Subtotal: sess.Subtotal(),
	})
}

// Checkout handles POST /checkout.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	// A whitespace-only entry means no code; padding is never forwarded.
	req := CheckoutRequest{DiscountCode: strings.TrimSpace(r.PostFormValue("discount_code"))}
	if err := validator.Validate(req); err != nil {
		h.flashAndRedirect(w, r, sess, session.FlashError, "invalid discount code", "/checkout")
		return
	}

	_, err := h.controller.Checkout(r.Context(), sess, req.DiscountCode)
	switch {
	case err == nil:
		h.redirect(w, r, "/orders/latest")
	case errors.Is(err, cart.ErrNoUser):
		h.flashAndRedirect(w, r, sess, session.FlashError, "Set a user ID before checking out", "/")
	case errors.Is(err, cart.ErrEmptyCart):
		h.flashAndRedirect(w, r, sess, session.FlashError, "Your cart is empty", "/")
	case errors.Is(err, cart.ErrCheckoutInFlight):
		h.flashAndRedirect(w, r, sess, session.FlashInfo, "Your order is already being placed", "/checkout")
	default:
		// Server rejections (expired code, emptied cart) surface verbatim;
		// the cart is intact and the shopper can retry.
		h.flashAndRedirect(w, r, sess, session.FlashError, err.Error(), "/checkout")
	}
}

// LatestOrder handles GET /orders/latest.
func (h *StorefrontHandler) LatestOrder(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())

	h.render(w, r, "order", sess, pageData{
		Title: "Order confirmed",
		Order: sess.LastOrder,
	})
}

// --- Helpers ---

func (h *StorefrontHandler) render(w http.ResponseWriter, r *http.Request, page string, sess *session.Session, data pageData) {
	data.Flash = sess.PopFlash()
	if len(data.Flash) > 0 {
		if err := h.sessions.Save(r.Context(), sess); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to save session",
				slog.String("error", err.Error()),
			)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.view.Render(w, page, sess, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render page",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
	}
}

func (h *StorefrontHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, sess *session.Session, level, message, to string) {
	sess.AddFlash(level, message)
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to save session",
			slog.String("error", err.Error()),
		)
	}
	h.redirect(w, r, to)
}

func (h *StorefrontHandler) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
