package models

import "time"

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentPOS      PaymentMethod = "pos"
	PaymentCredit   PaymentMethod = "credit"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentTransfer, PaymentPOS, PaymentCredit:
		return true
	}
	return false
}

// SaleItem is one line of a sale. Name, price and cost are snapshotted at
// sale time so later catalog edits never alter historical records.
type SaleItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	UnitCost    float64 `json:"unit_cost"`
	LineTotal   float64 `json:"line_total"`
	LineProfit  float64 `json:"line_profit"`
}

// Debtor holds customer details for a credit sale.
type Debtor struct {
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	AmountOwed float64 `json:"amount_owed"`
	Notes      string  `json:"notes,omitempty"`
}

// Sale is the immutable ledger entry for one completed transaction.
type Sale struct {
	ID             int           `json:"id"`
	OwnerID        int           `json:"owner_id"`
	IdempotencyKey string        `json:"idempotency_key"`
	Items          []SaleItem    `json:"items"`
	Total          float64       `json:"total"`
	PaymentMethod  PaymentMethod `json:"payment_method"`
	Debtor         *Debtor       `json:"debtor,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Profit sums the per-line profits.
func (s Sale) Profit() float64 {
	var total float64
	for _, it := range s.Items {
		total += it.LineProfit
	}
	return total
}
