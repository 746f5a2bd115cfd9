// Package notify holds the rule engine that turns catalog and sale
// mutations into user-facing notifications. Evaluators are deterministic
// over their inputs; the sink is append-only and best-effort, so a failed
// emission is logged and never fails the operation that triggered it.
package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
	"github.com/rogerio-castellano/pos-tracker/internal/repo"
)

// DefaultHighSellingThreshold is the per-day unit count at which a
// product counts as high-selling.
const DefaultHighSellingThreshold = 20

// DefaultExpiryWindowDays is the look-ahead window for expiry alerts.
const DefaultExpiryWindowDays = 10

type Engine struct {
	sink                 repo.NotificationRepository
	products             repo.ProductRepository
	sales                repo.SaleRepository
	counter              SoldCounter
	highSellingThreshold int
	expiryWindowDays     int
}

func NewEngine(sink repo.NotificationRepository, products repo.ProductRepository, sales repo.SaleRepository, counter SoldCounter, highSellingThreshold, expiryWindowDays int) *Engine {
	if highSellingThreshold <= 0 {
		highSellingThreshold = DefaultHighSellingThreshold
	}
	if expiryWindowDays <= 0 {
		expiryWindowDays = DefaultExpiryWindowDays
	}
	return &Engine{
		sink:                 sink,
		products:             products,
		sales:                sales,
		counter:              counter,
		highSellingThreshold: highSellingThreshold,
		expiryWindowDays:     expiryWindowDays,
	}
}

// CheckStockLevel emits out_of_stock at zero and low_stock at or below
// the product's threshold. The threshold comparison is inclusive.
func (e *Engine) CheckStockLevel(p models.Product) {
	switch {
	case p.Quantity == 0:
		e.emit(models.Notification{
			OwnerID:   p.OwnerID,
			Type:      models.NotificationOutOfStock,
			Title:     "Out of Stock",
			Message:   fmt.Sprintf("%s is out of stock!", p.Name),
			ProductID: &p.ID,
		})
	case p.Quantity <= p.Threshold:
		e.emit(models.Notification{
			OwnerID:   p.OwnerID,
			Type:      models.NotificationLowStock,
			Title:     "Low Stock",
			Message:   fmt.Sprintf("%s is low (%d left)", p.Name, p.Quantity),
			ProductID: &p.ID,
		})
	}
}

// CheckHighSelling emits high_selling once today's sold units for the
// product reach the threshold. Repeated invocations keep emitting; the
// engine does not de-duplicate.
func (e *Engine) CheckHighSelling(ctx context.Context, ownerID, productID int, name string) {
	sold, err := e.counter.SoldOn(ctx, ownerID, productID, time.Now())
	if err != nil {
		log.Printf("high-selling check failed for product %d: %v", productID, err)
		return
	}
	if sold < e.highSellingThreshold {
		return
	}
	e.emit(models.Notification{
		OwnerID:   ownerID,
		Type:      models.NotificationHighSelling,
		Title:     "High Selling",
		Message:   fmt.Sprintf("%s is selling fast: %d units sold today", name, sold),
		ProductID: &productID,
	})
}

// CheckExpiringProducts emits one expiry notification per product whose
// expiry date falls within the configured window and is still ahead.
func (e *Engine) CheckExpiringProducts(ownerID int) {
	expiring, err := e.products.ExpiringWithin(ownerID, e.expiryWindowDays)
	if err != nil {
		log.Printf("expiry check failed for owner %d: %v", ownerID, err)
		return
	}

	now := time.Now()
	for _, p := range expiring {
		days, ok := p.DaysUntilExpiry(now)
		if !ok {
			continue
		}
		msg := fmt.Sprintf("%s expires in %d days", p.Name, days)
		if days < 1 {
			msg = fmt.Sprintf("%s expires today", p.Name)
		}
		e.emit(models.Notification{
			OwnerID:   ownerID,
			Type:      models.NotificationExpiry,
			Title:     "Expiring Soon",
			Message:   msg,
			ProductID: &p.ID,
			DaysLeft:  &days,
		})
	}
}

func (e *Engine) NotifyProductAdded(p models.Product) {
	e.emit(models.Notification{
		OwnerID:   p.OwnerID,
		Type:      models.NotificationProductAdded,
		Title:     "Product Added",
		Message:   fmt.Sprintf("%s has been added to your inventory", p.Name),
		ProductID: &p.ID,
	})
}

func (e *Engine) NotifySaleCompleted(ownerID int, total float64, lineCount int) {
	e.emit(models.Notification{
		OwnerID: ownerID,
		Type:    models.NotificationSale,
		Title:   "Sale Completed",
		Message: fmt.Sprintf("Sale of %d items completed, total %.2f", lineCount, total),
	})
}

// GenerateDailySummary aggregates today's sales: daily_summary with total
// profit when any exist, zero_sales otherwise.
func (e *Engine) GenerateDailySummary(ownerID int) {
	totals, err := e.sales.TotalsOn(ownerID, time.Now())
	if err != nil {
		log.Printf("daily summary failed for owner %d: %v", ownerID, err)
		return
	}

	if totals.Count == 0 {
		e.emit(models.Notification{
			OwnerID: ownerID,
			Type:    models.NotificationZeroSales,
			Title:   "No Sales Today",
			Message: "No sales were recorded today",
		})
		return
	}
	e.emit(models.Notification{
		OwnerID: ownerID,
		Type:    models.NotificationDailySummary,
		Title:   "Daily Summary",
		Message: fmt.Sprintf("You made %d sales today, revenue %.2f, profit %.2f", totals.Count, totals.Revenue, totals.Profit),
	})
}

// emit stamps and appends a notification. Sink failures are swallowed on
// purpose: alerts are best-effort and must never fail the sale or stock
// update that produced them.
func (e *Engine) emit(n models.Notification) {
	now := time.Now()
	n.CreatedAt = now
	n.TimeLabel = TimeLabel(now, now)
	n.Read = false

	if _, err := e.sink.Create(n); err != nil {
		log.Printf("failed to emit %s notification: %v", n.Type, err)
	}
}
