package domain

import "time"

// Discount code display statuses.
const (
	DiscountStatusActive   = "active"
	DiscountStatusUsed     = "used"
	DiscountStatusInactive = "inactive"
)

// DiscountCode is owned and mutated entirely by the commerce service; the
// storefront only reads it (admin view) or submits a code string at checkout.
type DiscountCode struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	DiscountPercent string    `json:"discountPercent"`
	IsActive        bool      `json:"isActive"`
	IsUsed          bool      `json:"isUsed"`
	OrderUsedInID   *string   `json:"orderUsedInId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Status classifies the code for display: used wins over active.
func (d DiscountCode) Status() string {
	switch {
	case d.IsUsed:
		return DiscountStatusUsed
	case d.IsActive:
		return DiscountStatusActive
	default:
		return DiscountStatusInactive
	}
}

// AdminStats is the read-only aggregate view served by the commerce API.
// Monetary aggregates are decimal strings like every other money field.
type AdminStats struct {
	TotalOrders            int            `json:"totalOrders"`
	TotalItemsPurchased    int            `json:"totalItemsPurchased"`
	TotalPurchaseAmount    string         `json:"totalPurchaseAmount"`
	TotalDiscountAmount    string         `json:"totalDiscountAmount"`
	DiscountCodesGenerated []DiscountCode `json:"discountCodesGenerated"`
}
