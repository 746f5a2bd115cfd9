package repo

import (
	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll(ownerID int) ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error

	// AdjustQuantity applies a manual stock correction. A delta that would
	// drive the quantity negative is rejected with ErrInvalidQuantityChange.
	AdjustQuantity(productID, delta int) (models.Product, error)

	// DecrementStock reduces stock by qty for a sale, clamping at zero.
	// The bool result is true when the freshly-read stock was smaller than
	// qty, i.e. a concurrent sale depleted the product first.
	DecrementStock(productID, qty int) (models.Product, bool, error)

	// ExpiringWithin returns the owner's products whose expiry date falls
	// within the next days days, excluding products already expired.
	ExpiringWithin(ownerID, days int) ([]models.Product, error)
}
