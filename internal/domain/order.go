package domain

import "time"

// Order is a completed checkout as returned by the commerce API. Immutable
// from the storefront's perspective.
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	Subtotal       string      `json:"subtotal"`
	DiscountCode   *string     `json:"discountCode"`
	DiscountAmount string      `json:"discountAmount"`
	Total          string      `json:"total"`
	CreatedAt      time.Time   `json:"createdAt"`
	Items          []OrderItem `json:"items"`
}

// OrderItem is one line of a completed order.
type OrderItem struct {
	ID       string `json:"id"`
	OrderID  string `json:"orderId"`
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// HasDiscount reports whether a discount code was applied to the order.
func (o Order) HasDiscount() bool {
	return o.DiscountCode != nil && *o.DiscountCode != ""
}

// AppliedDiscountCode returns the applied code, or empty when none was used.
func (o Order) AppliedDiscountCode() string {
	if o.DiscountCode == nil {
		return ""
	}
	return *o.DiscountCode
}
