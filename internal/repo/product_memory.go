package repo

import (
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products []models.Product
	nextID   int
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
		nextID:   1,
	}
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(product models.Product) (models.Product, error) {
	product.ID = r.nextID
	r.nextID++
	r.products = append(r.products, product)
	return product, nil
}

// GetAll retrieves all of an owner's products.
func (r *InMemoryProductRepository) GetAll(ownerID int) ([]models.Product, error) {
	var owned []models.Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(product models.Product) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
			return product, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(id int) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.products = []models.Product{}
}

// AdjustQuantity implements ProductRepository.
func (r *InMemoryProductRepository) AdjustQuantity(productID int, delta int) (models.Product, error) {
	for i, p := range r.products {
		if p.ID == productID {
			if p.Quantity+delta < 0 {
				return models.Product{}, ErrInvalidQuantityChange
			}
			p.Quantity += delta
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// DecrementStock implements the clamped sale-time decrement.
func (r *InMemoryProductRepository) DecrementStock(productID int, qty int) (models.Product, bool, error) {
	for i, p := range r.products {
		if p.ID == productID {
			clamped := p.Quantity < qty
			p.Quantity -= qty
			if p.Quantity < 0 {
				p.Quantity = 0
			}
			r.products[i] = p
			return p, clamped, nil
		}
	}
	return models.Product{}, false, ErrProductNotFound
}

// ExpiringWithin implements ProductRepository.
func (r *InMemoryProductRepository) ExpiringWithin(ownerID, days int) ([]models.Product, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	var expiring []models.Product
	for _, p := range r.products {
		if p.OwnerID != ownerID || p.ExpiresAt == nil {
			continue
		}
		if p.ExpiresAt.After(now) && !p.ExpiresAt.After(cutoff) {
			expiring = append(expiring, p)
		}
	}
	return expiring, nil
}

func (r *InMemoryProductRepository) GetByName(name string) (models.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}
