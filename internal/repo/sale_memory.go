package repo

import (
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

type InMemorySaleRepository struct {
	sales  []models.Sale
	nextID int
}

func NewInMemorySaleRepository() *InMemorySaleRepository {
	return &InMemorySaleRepository{
		sales:  []models.Sale{},
		nextID: 1,
	}
}

func (r *InMemorySaleRepository) Create(sale models.Sale) (models.Sale, error) {
	for _, s := range r.sales {
		if s.OwnerID == sale.OwnerID && s.IdempotencyKey == sale.IdempotencyKey {
			return models.Sale{}, ErrDuplicateSale
		}
	}

	sale.ID = r.nextID
	r.nextID++
	r.sales = append(r.sales, sale)
	return sale, nil
}

func (r *InMemorySaleRepository) GetByID(id int) (models.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) GetByKey(ownerID int, idempotencyKey string) (models.Sale, error) {
	for _, s := range r.sales {
		if s.OwnerID == ownerID && s.IdempotencyKey == idempotencyKey {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) GetAll(ownerID int, sf SaleFilter) ([]models.Sale, int, error) {
	var filtered []models.Sale
	for _, s := range r.sales {
		if s.OwnerID != ownerID {
			continue
		}
		if (sf.Since != nil && s.CreatedAt.Before(*sf.Since)) ||
			(sf.Until != nil && s.CreatedAt.After(*sf.Until)) {
			continue
		}
		filtered = append(filtered, s)
	}

	// newest first
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}

	if sf.Offset != nil && *sf.Offset > len(filtered) {
		return []models.Sale{}, len(filtered), nil
	}

	start := 0
	if sf.Offset != nil {
		start = clamp(*sf.Offset, 0, len(filtered))
	}
	end := len(filtered)
	if sf.Limit != nil && *sf.Limit > 0 {
		end = clamp(start+*sf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func (r *InMemorySaleRepository) Delete(id int) error {
	for i, s := range r.sales {
		if s.ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return ErrSaleNotFound
}

func (r *InMemorySaleRepository) QuantitySoldOn(ownerID, productID int, day time.Time) (int, error) {
	start, end := dayBounds(day)

	sold := 0
	for _, s := range r.sales {
		if s.OwnerID != ownerID || s.CreatedAt.Before(start) || !s.CreatedAt.Before(end) {
			continue
		}
		for _, it := range s.Items {
			if it.ProductID == productID {
				sold += it.Quantity
			}
		}
	}
	return sold, nil
}

func (r *InMemorySaleRepository) TotalsOn(ownerID int, day time.Time) (SaleTotals, error) {
	start, end := dayBounds(day)

	var t SaleTotals
	for _, s := range r.sales {
		if s.OwnerID != ownerID || s.CreatedAt.Before(start) || !s.CreatedAt.Before(end) {
			continue
		}
		t.Count++
		t.Revenue += s.Total
		t.Profit += s.Profit()
	}
	return t, nil
}

func (r *InMemorySaleRepository) Clear() {
	r.sales = []models.Sale{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
