package repo

import (
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

// SaleFilter narrows sale queries by date range and paginates results.
type SaleFilter struct {
	Since  *time.Time
	Until  *time.Time
	Offset *int
	Limit  *int
}

// SaleTotals is the per-day aggregate used by the daily summary and the
// dashboard.
type SaleTotals struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

type SaleRepository interface {
	// Create appends a sale with its line items. A sale whose idempotency
	// key was already recorded is rejected with ErrDuplicateSale.
	Create(sale models.Sale) (models.Sale, error)

	GetByID(id int) (models.Sale, error)
	GetByKey(ownerID int, idempotencyKey string) (models.Sale, error)
	GetAll(ownerID int, sf SaleFilter) ([]models.Sale, int, error)
	Delete(id int) error

	// QuantitySoldOn sums the units of one product sold by the owner on
	// the calendar day containing day (local time of the server).
	QuantitySoldOn(ownerID, productID int, day time.Time) (int, error)

	// TotalsOn aggregates the owner's sales for the calendar day.
	TotalsOn(ownerID int, day time.Time) (SaleTotals, error)
}

// dayBounds returns the [start, end) range of the calendar day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
