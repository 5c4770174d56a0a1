package domain

import (
	"strconv"
	"time"
)

// CartLineItem is one cart row as returned by the commerce API. The server
// owns this shape: identifiers are server-assigned, quantity is aggregated
// server-side on repeat adds, and unit prices cross the wire as decimal
// strings.
type CartLineItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ItemID    string    `json:"itemId"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UnitPrice parses the decimal-string price for display and summation.
// An unparseable price counts as zero.
func (li CartLineItem) UnitPrice() float64 {
	return ParsePrice(li.Price)
}

// LineTotal is unit price times quantity.
func (li CartLineItem) LineTotal() float64 {
	return li.UnitPrice() * float64(li.Quantity)
}

// Subtotal computes the cart subtotal from the given line items. It is
// always recomputed from the items at hand, never cached.
func Subtotal(items []CartLineItem) float64 {
	var subtotal float64
	for _, li := range items {
		subtotal += li.LineTotal()
	}
	return subtotal
}

// ItemCount sums the quantities across all line items.
func ItemCount(items []CartLineItem) int {
	var count int
	for _, li := range items {
		count += li.Quantity
	}
	return count
}

// ParsePrice converts a decimal-string monetary field to a float64 for
// display and summation. Empty or malformed values parse to zero.
func ParsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
