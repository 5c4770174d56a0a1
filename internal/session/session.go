// Package session holds the storefront's per-browser state: the entered
// user identifier, the last successfully fetched cart, the checkout state
// machine position, the most recent order, and pending notifications. This
// replaces the original UI's ambient globals with an explicit object whose
// lifecycle is tied to the browser session cookie.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/imvikashdev/storefront/internal/domain"
)

// ErrNotFound is returned by a Store when no session exists for the id.
var ErrNotFound = errors.New("session not found")

// CheckoutState is the position of the checkout state machine.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutConfirmed  CheckoutState = "confirmed"
	CheckoutFailed     CheckoutState = "failed"
)

// Flash levels.
const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the storefront state for one browser.
//
// Items is the cart as of the last successful fetch or mutation result,
// never a speculative copy. Derived values (subtotal, item count) are
// recomputed from Items on demand and never stored.
type Session struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	Items         []domain.CartLineItem `json:"items"`
	CheckoutState CheckoutState         `json:"checkout_state"`
	LastOrder     *domain.Order         `json:"last_order,omitempty"`
	Flash         []Flash               `json:"flash,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// New creates an empty session with a fresh identifier.
func New() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            uuid.New().String(),
		Items:         []domain.CartLineItem{},
		CheckoutState: CheckoutIdle,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Subtotal is the derived cart subtotal, recomputed on every call.
func (s *Session) Subtotal() float64 {
	return domain.Subtotal(s.Items)
}

// ItemCount is the derived total item count, recomputed on every call.
func (s *Session) ItemCount() int {
	return domain.ItemCount(s.Items)
}

// AddFlash queues a notification for the next rendered page.
func (s *Session) AddFlash(level, message string) {
	s.Flash = append(s.Flash, Flash{Level: level, Message: message})
}

// PopFlash returns queued notifications and clears them.
func (s *Session) PopFlash() []Flash {
	out := s.Flash
	s.Flash = nil
	return out
}

// Store persists sessions. Implementations must return ErrNotFound for
// missing ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}
