// Package cart holds the session-scoped shopping cart. Stock checks here
// are advisory only: another device may sell the same product at any
// moment, so the authoritative check happens again at transaction time.
package cart

import (
	"errors"
	"log"
	"sync"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

var (
	// ErrOutOfStock is returned when adding a product whose stock is zero.
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrStockLimitExceeded is returned when incrementing past the
	// product's live stock quantity.
	ErrStockLimitExceeded = errors.New("cannot add more than available stock")

	// ErrNotInCart is returned when operating on a product that was never added.
	ErrNotInCart = errors.New("product not in cart")
)

// Catalog is the read-side of the product catalog the cart validates against.
type Catalog interface {
	GetByID(id int) (models.Product, error)
}

// Item is one cart entry. The cart never owns product data, only the
// reference and the requested quantity.
type Item struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// ResolvedItem is a cart entry with the product snapshot captured for checkout.
type ResolvedItem struct {
	Product  models.Product
	Quantity int
}

// Cart is owned by a single checkout session and discarded after a
// completed or abandoned checkout.
type Cart struct {
	mu      sync.Mutex
	items   []Item
	catalog Catalog
}

func New(catalog Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// Add inserts the product with quantity 1. Adding a product already in
// the cart is a no-op; quantity only changes through Increment/Decrement.
func (c *Cart) Add(productID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.find(productID) != nil {
		return nil
	}

	p, err := c.catalog.GetByID(productID)
	if err != nil {
		return err
	}
	if p.Quantity == 0 {
		return ErrOutOfStock
	}

	c.items = append(c.items, Item{ProductID: productID, Quantity: 1})
	return nil
}

func (c *Cart) Increment(productID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.find(productID)
	if it == nil {
		return ErrNotInCart
	}

	p, err := c.catalog.GetByID(productID)
	if err != nil {
		return err
	}
	if it.Quantity+1 > p.Quantity {
		return ErrStockLimitExceeded
	}

	it.Quantity++
	return nil
}

// Decrement lowers the quantity by one, removing the item entirely when
// the quantity would drop to zero.
func (c *Cart) Decrement(productID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	it := c.find(productID)
	if it == nil {
		return ErrNotInCart
	}

	if it.Quantity > 1 {
		it.Quantity--
		return nil
	}
	c.remove(productID)
	return nil
}

func (c *Cart) Remove(productID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.find(productID) == nil {
		return ErrNotInCart
	}
	c.remove(productID)
	return nil
}

func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Total sums selling price × quantity over the cart. A dangling product
// reference contributes 0; that is a data-integrity problem worth a log
// line, not a reason to fail the whole computation.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, it := range c.items {
		p, err := c.catalog.GetByID(it.ProductID)
		if err != nil {
			log.Printf("cart references missing product %d: %v", it.ProductID, err)
			continue
		}
		total += p.Price * float64(it.Quantity)
	}
	return total
}

// Resolve snapshots the current product data for every cart item, for
// checkout. Missing products are skipped with a warning, mirroring Total.
func (c *Cart) Resolve() []ResolvedItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	resolved := make([]ResolvedItem, 0, len(c.items))
	for _, it := range c.items {
		p, err := c.catalog.GetByID(it.ProductID)
		if err != nil {
			log.Printf("cart references missing product %d: %v", it.ProductID, err)
			continue
		}
		resolved = append(resolved, ResolvedItem{Product: p, Quantity: it.Quantity})
	}
	return resolved
}

func (c *Cart) find(productID int) *Item {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return &c.items[i]
		}
	}
	return nil
}

func (c *Cart) remove(productID int) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
