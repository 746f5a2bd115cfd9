package notify

import (
	"context"
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/repo"
)

// SoldCounter tracks per-product per-day sold quantities for the
// high-selling check. The transaction processor increments it together
// with the stock decrement, so the check never has to rescan the ledger.
type SoldCounter interface {
	IncrSold(ctx context.Context, ownerID, productID, qty int, day time.Time) error
	SoldOn(ctx context.Context, ownerID, productID int, day time.Time) (int, error)
}

// SaleScanCounter derives the count by scanning the sales ledger. It is
// the fallback when Redis is not available; increments are no-ops because
// the ledger itself is the source of truth.
type SaleScanCounter struct {
	sales repo.SaleRepository
}

func NewSaleScanCounter(sales repo.SaleRepository) *SaleScanCounter {
	return &SaleScanCounter{sales: sales}
}

func (c *SaleScanCounter) IncrSold(_ context.Context, _, _, _ int, _ time.Time) error {
	return nil
}

func (c *SaleScanCounter) SoldOn(_ context.Context, ownerID, productID int, day time.Time) (int, error) {
	return c.sales.QuantitySoldOn(ownerID, productID, day)
}
