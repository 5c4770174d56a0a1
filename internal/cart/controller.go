// Package cart implements the storefront's cart state controller: the
// single writer for a session's user identity, cached line items, and
// checkout state machine. The commerce service owns the cart contents;
// the controller only caches what the server last reported and never
// fabricates state locally.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/imvikashdev/storefront/internal/commerce"
	"github.com/imvikashdev/storefront/internal/domain"
	"github.com/imvikashdev/storefront/internal/event"
	"github.com/imvikashdev/storefront/internal/session"
)

// Controller-level sentinel errors. Handlers translate these into user
// facing messages without a network round trip.
var (
	// ErrNoUser rejects cart mutations before a user identifier is set.
	ErrNoUser = errors.New("no user selected")
	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrCheckoutInFlight rejects a checkout while one is already submitting.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	// ErrNotSupported marks operations the commerce API does not expose.
	ErrNotSupported = errors.New("operation not supported by the commerce service")
)

// CommerceClient is the subset of the commerce API the controller needs.
type CommerceClient interface {
	AddItem(ctx context.Context, input commerce.AddItemInput) (*commerce.AddItemResult, error)
	FetchCart(ctx context.Context, userID string) ([]domain.CartLineItem, error)
	Checkout(ctx context.Context, input commerce.CheckoutInput) (*commerce.CheckoutResult, error)
}

// Controller coordinates session state with the commerce service.
type Controller struct {
	commerce CommerceClient
	sessions session.Store
	events   *event.Producer
	logger   *slog.Logger
}

// NewController creates a cart controller.
func NewController(client CommerceClient, sessions session.Store, events *event.Producer, logger *slog.Logger) *Controller {
	return &Controller{
		commerce: client,
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

// SetUser switches the session to a new user identity.
//
// An empty identifier clears the local user and cart without any network
// call. A non-empty identifier invalidates the cached cart and refetches
// it for the new user; when the fetch fails the cached cart stays empty
// and the error is returned, so stale items from the previous user are
// never shown.
func (c *Controller) SetUser(ctx context.Context, sess *session.Session, userID string) error {
	sess.UserID = userID
	sess.Items = []domain.CartLineItem{}
	sess.CheckoutState = session.CheckoutIdle
	sess.LastOrder = nil

	if userID == "" {
		return c.save(ctx, sess)
	}

	items, err := c.commerce.FetchCart(ctx, userID)
	if err != nil {
		if saveErr := c.save(ctx, sess); saveErr != nil {
			return saveErr
		}
		return fmt.Errorf("fetch cart for %q: %w", userID, err)
	}

	sess.Items = items
	return c.save(ctx, sess)
}

// Refresh replaces the cached cart wholesale with the server's current
// state. On failure the cache resets to empty rather than keeping
// possibly stale items.
func (c *Controller) Refresh(ctx context.Context, sess *session.Session) error {
	if sess.UserID == "" {
		sess.Items = []domain.CartLineItem{}
		return c.save(ctx, sess)
	}

	items, err := c.commerce.FetchCart(ctx, sess.UserID)
	if err != nil {
		sess.Items = []domain.CartLineItem{}
		if saveErr := c.save(ctx, sess); saveErr != nil {
			return saveErr
		}
		return fmt.Errorf("refresh cart: %w", err)
	}

	sess.Items = items
	return c.save(ctx, sess)
}

// AddToCart submits a quantity-one add for the product. The cached items
// are not touched: callers re-read the cart from the server afterwards, so
// the cache only ever holds server-reported state. Returns the server's
// confirmation message, which includes the resulting merged quantity.
func (c *Controller) AddToCart(ctx context.Context, sess *session.Session, productID, name string, price float64) (string, error) {
	if sess.UserID == "" {
		return "", ErrNoUser
	}

	result, err := c.commerce.AddItem(ctx, commerce.AddItemInput{
		UserID:   sess.UserID,
		ItemID:   productID,
		Name:     name,
		Price:    price,
		Quantity: 1,
	})
	if err != nil {
		return "", err
	}

	// A fresh confirmation means a previous checkout outcome is stale.
	if sess.CheckoutState == session.CheckoutConfirmed || sess.CheckoutState == session.CheckoutFailed {
		sess.CheckoutState = session.CheckoutIdle
		if err := c.save(ctx, sess); err != nil {
			return "", err
		}
	}

	if err := c.events.PublishItemAdded(ctx, sess.UserID, event.ItemAddedData{
		UserID:   sess.UserID,
		ItemID:   productID,
		Name:     name,
		Price:    price,
		Quantity: result.Item.Quantity,
	}); err != nil {
		c.logger.WarnContext(ctx, "failed to publish item added event",
			slog.String("user_id", sess.UserID),
			slog.String("item_id", productID),
			slog.String("error", err.Error()),
		)
	}

	return result.Message, nil
}

// Checkout drives the checkout state machine: idle or a finished outcome
// may submit, an in-flight submission may not. On success the cached cart
// empties and the confirmed order is retained for display; on failure the
// cart stays intact so the shopper can retry, with or without the code.
func (c *Controller) Checkout(ctx context.Context, sess *session.Session, discountCode string) (*domain.Order, error) {
	if sess.UserID == "" {
		return nil, ErrNoUser
	}
	if len(sess.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if sess.CheckoutState == session.CheckoutSubmitting {
		return nil, ErrCheckoutInFlight
	}

	sess.CheckoutState = session.CheckoutSubmitting
	if err := c.save(ctx, sess); err != nil {
		return nil, err
	}

	result, err := c.commerce.Checkout(ctx, commerce.CheckoutInput{
		UserID:       sess.UserID,
		DiscountCode: discountCode,
	})
	if err != nil {
		sess.CheckoutState = session.CheckoutFailed
		if saveErr := c.save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}

		if pubErr := c.events.PublishCheckoutFailed(ctx, sess.UserID, err.Error()); pubErr != nil {
			c.logger.WarnContext(ctx, "failed to publish checkout failed event",
				slog.String("user_id", sess.UserID),
				slog.String("error", pubErr.Error()),
			)
		}
		return nil, err
	}

	order := result.Order
	sess.CheckoutState = session.CheckoutConfirmed
	sess.Items = []domain.CartLineItem{}
	sess.LastOrder = &order
	if err := c.save(ctx, sess); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "checkout confirmed",
		slog.String("user_id", sess.UserID),
		slog.String("order_id", order.ID),
		slog.String("total", order.Total),
	)

	if err := c.events.PublishCheckoutCompleted(ctx, &order); err != nil {
		c.logger.WarnContext(ctx, "failed to publish checkout completed event",
			slog.String("user_id", sess.UserID),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return &order, nil
}

// RemoveItem is not exposed by the commerce API; carts shrink only by
// checking out.
func (c *Controller) RemoveItem(ctx context.Context, sess *session.Session, itemID string) error {
	return ErrNotSupported
}

// ClearCart is not exposed by the commerce API.
func (c *Controller) ClearCart(ctx context.Context, sess *session.Session) error {
	return ErrNotSupported
}

func (c *Controller) save(ctx context.Context, sess *session.Session) error {
	if err := c.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
