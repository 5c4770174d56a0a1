// Package event publishes storefront activity events for downstream
// analytics. Publishing is best-effort: a broker failure is logged and
// never surfaces to the shopper.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imvikashdev/storefront/internal/domain"
	pkgkafka "github.com/imvikashdev/storefront/pkg/kafka"
)

// Kafka topic constants for storefront activity events.
const (
	TopicItemAdded         = "storefront.cart.item_added"
	TopicCheckoutCompleted = "storefront.checkout.completed"
	TopicCheckoutFailed    = "storefront.checkout.failed"
)

// Aggregate type constant.
const AggregateTypeCart = "cart"

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// ItemAddedData is the payload for a cart.item_added event.
type ItemAddedData struct {
	UserID   string  `json:"user_id"`
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// CheckoutCompletedData is the payload for a checkout.completed event.
// Monetary fields stay decimal strings, exactly as the commerce API
// reported them.
type CheckoutCompletedData struct {
	UserID       string `json:"user_id"`
	OrderID      string `json:"order_id"`
	Subtotal     string `json:"subtotal"`
	Total        string `json:"total"`
	DiscountCode string `json:"discount_code,omitempty"`
	ItemCount    int    `json:"item_count"`
}

// CheckoutFailedData is the payload for a checkout.failed event.
type CheckoutFailedData struct {
	UserID        string `json:"user_id"`
	FailureReason string `json:"failure_reason"`
}

// Producer publishes storefront activity events to Kafka. A nil Producer
// is valid and drops every event, for deployments without a broker.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishItemAdded publishes a cart.item_added event.
func (p *Producer) PublishItemAdded(ctx context.Context, userID string, item ItemAddedData) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	event, err := pkgkafka.NewEvent(TopicItemAdded, userID, AggregateTypeCart, SourceStorefront, item)
	if err != nil {
		return fmt.Errorf("create cart.item_added event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicItemAdded, event); err != nil {
		return fmt.Errorf("publish cart.item_added event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.item_added event",
		slog.String("user_id", userID),
		slog.String("item_id", item.ItemID),
	)

	return nil
}

// PublishCheckoutCompleted publishes a checkout.completed event for a
// confirmed order.
func (p *Producer) PublishCheckoutCompleted(ctx context.Context, order *domain.Order) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := CheckoutCompletedData{
		UserID:       order.UserID,
		OrderID:      order.ID,
		Subtotal:     order.Subtotal,
		Total:        order.Total,
		DiscountCode: order.AppliedDiscountCode(),
		ItemCount:    len(order.Items),
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutCompleted, order.UserID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutCompleted, event); err != nil {
		return fmt.Errorf("publish checkout.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.completed event",
		slog.String("user_id", order.UserID),
		slog.String("order_id", order.ID),
	)

	return nil
}

// PublishCheckoutFailed publishes a checkout.failed event.
func (p *Producer) PublishCheckoutFailed(ctx context.Context, userID, reason string) error {
	if p == nil || p.kafka == nil {
		return nil
	}

	data := CheckoutFailedData{
		UserID:        userID,
		FailureReason: reason,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutFailed, userID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.failed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutFailed, event); err != nil {
		return fmt.Errorf("publish checkout.failed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.failed event",
		slog.String("user_id", userID),
	)

	return nil
}
