package models

import "time"

// Product represents a sellable product in the shop catalog.
type Product struct {
	ID        int        `json:"id"`
	OwnerID   int        `json:"owner_id"`
	Name      string     `json:"name"`
	Category  string     `json:"category,omitempty"`
	CostPrice float64    `json:"cost_price"`
	Price     float64    `json:"price"` // selling price
	Quantity  int        `json:"quantity"`
	Threshold int        `json:"threshold"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt string     `json:"created_at,omitempty"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}

// DaysUntilExpiry returns the number of whole days until the product
// expires, counted from now. The second result is false when the product
// has no expiry date.
func (p Product) DaysUntilExpiry(now time.Time) (int, bool) {
	if p.ExpiresAt == nil {
		return 0, false
	}
	days := int(p.ExpiresAt.Sub(now).Hours() / 24)
	return days, true
}
