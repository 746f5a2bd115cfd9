// Package sales contains the transaction processor: the one place where a
// confirmed cart becomes a ledger entry and the catalog's stock is
// decremented. Everything here runs sequentially per sale; there is no
// cross-session locking beyond the repository's own guarantees.
package sales

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
	"github.com/rogerio-castellano/pos-tracker/internal/notify"
	"github.com/rogerio-castellano/pos-tracker/internal/repo"
)

// ErrSaleCommitFailed wraps any persistence failure mid-transaction.
// Already-committed steps are not rolled back; the idempotency key makes a
// retry safe instead.
var ErrSaleCommitFailed = errors.New("sale commit failed")

// ErrNoItems is returned for a request without line items.
var ErrNoItems = errors.New("sale has no line items")

// LineInput is one cart line with the product data snapshotted at confirm
// time.
type LineInput struct {
	ProductID   int
	ProductName string
	Quantity    int
	UnitPrice   float64
	UnitCost    float64
}

type Request struct {
	OwnerID        int
	IdempotencyKey string
	Items          []LineInput
	PaymentMethod  models.PaymentMethod
	Debtor         *models.Debtor
}

type Result struct {
	Sale models.Sale

	// DepletedProductIDs lists products whose fresh stock was smaller than
	// the sold quantity; their decrement was clamped to zero.
	DepletedProductIDs []int

	// Replayed is true when the idempotency key matched an existing sale
	// and no new work was done.
	Replayed bool
}

// Notifier is the slice of the rule engine the processor invokes.
type Notifier interface {
	CheckStockLevel(p models.Product)
	CheckHighSelling(ctx context.Context, ownerID, productID int, name string)
	NotifySaleCompleted(ownerID int, total float64, lineCount int)
}

type Processor struct {
	products repo.ProductRepository
	sales    repo.SaleRepository
	notifier Notifier
	counter  notify.SoldCounter
}

func NewProcessor(products repo.ProductRepository, sales repo.SaleRepository, notifier Notifier, counter notify.SoldCounter) *Processor {
	return &Processor{
		products: products,
		sales:    sales,
		notifier: notifier,
		counter:  counter,
	}
}

// Process runs the sale transaction:
//
//  1. compute line and aggregate totals from the snapshotted inputs
//  2. append the sale record (idempotency key enforced unique)
//  3. per line item, re-read live stock and apply a clamped decrement
//  4. per line item, run the stock-level and high-selling checks
//  5. emit the sale-completed notification
//
// A request whose key was already committed is answered from the ledger
// without touching stock again.
func (p *Processor) Process(ctx context.Context, req Request) (Result, error) {
	if len(req.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if req.IdempotencyKey == "" {
		return Result{}, fmt.Errorf("%w: missing idempotency key", ErrSaleCommitFailed)
	}

	if existing, err := p.sales.GetByKey(req.OwnerID, req.IdempotencyKey); err == nil {
		return Result{Sale: existing, Replayed: true}, nil
	} else if !errors.Is(err, repo.ErrSaleNotFound) {
		return Result{}, fmt.Errorf("%w: idempotency lookup: %v", ErrSaleCommitFailed, err)
	}

	sale := models.Sale{
		OwnerID:        req.OwnerID,
		IdempotencyKey: req.IdempotencyKey,
		PaymentMethod:  req.PaymentMethod,
		Debtor:         req.Debtor,
		CreatedAt:      time.Now(),
	}
	for _, in := range req.Items {
		lineTotal := in.UnitPrice * float64(in.Quantity)
		lineProfit := (in.UnitPrice - in.UnitCost) * float64(in.Quantity)
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			UnitCost:    in.UnitCost,
			LineTotal:   lineTotal,
			LineProfit:  lineProfit,
		})
		sale.Total += lineTotal
	}

	created, err := p.sales.Create(sale)
	if errors.Is(err, repo.ErrDuplicateSale) {
		// Lost a race against our own retry; the first attempt won.
		existing, lookupErr := p.sales.GetByKey(req.OwnerID, req.IdempotencyKey)
		if lookupErr != nil {
			return Result{}, fmt.Errorf("%w: duplicate sale lookup: %v", ErrSaleCommitFailed, lookupErr)
		}
		return Result{Sale: existing, Replayed: true}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: append sale: %v", ErrSaleCommitFailed, err)
	}

	result := Result{Sale: created}
	for _, it := range created.Items {
		product, clamped, err := p.products.DecrementStock(it.ProductID, it.Quantity)
		if err != nil {
			// The sale is already on the ledger; surface the failure and
			// let the idempotency key protect the retry.
			return result, fmt.Errorf("%w: decrement product %d: %v", ErrSaleCommitFailed, it.ProductID, err)
		}
		if clamped {
			result.DepletedProductIDs = append(result.DepletedProductIDs, it.ProductID)
			log.Printf("product %d (%s) oversold by a concurrent sale; stock clamped to zero", product.ID, product.Name)
		}

		if err := p.counter.IncrSold(ctx, req.OwnerID, it.ProductID, it.Quantity, created.CreatedAt); err != nil {
			log.Printf("failed to bump sold counter for product %d: %v", it.ProductID, err)
		}

		p.notifier.CheckStockLevel(product)
		p.notifier.CheckHighSelling(ctx, req.OwnerID, it.ProductID, it.ProductName)
	}

	p.notifier.NotifySaleCompleted(req.OwnerID, created.Total, len(created.Items))
	return result, nil
}
