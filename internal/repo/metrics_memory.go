package repo

import "time"

type InMemoryMetricsRepository struct {
	productRepo    ProductRepository
	saleRepo       SaleRepository
	expiryCardDays int
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{expiryCardDays: 3}
}

func (i *InMemoryMetricsRepository) SetRepositories(
	productRepo ProductRepository,
	saleRepo SaleRepository,
) {
	i.productRepo = productRepo
	i.saleRepo = saleRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(ownerID int) (Metrics, error) {
	m := Metrics{}

	products, err := i.productRepo.GetAll(ownerID)
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)

	for _, product := range products {
		if product.Quantity <= product.Threshold {
			m.LowStockCount++
		}
	}

	expiring, err := i.productRepo.ExpiringWithin(ownerID, i.expiryCardDays)
	if err != nil {
		return m, err
	}
	m.ExpiringSoon = len(expiring)

	totals, err := i.saleRepo.TotalsOn(ownerID, time.Now())
	if err != nil {
		return m, err
	}
	m.SalesToday = totals.Count
	m.RevenueToday = totals.Revenue
	m.ProfitToday = totals.Profit

	for _, product := range products {
		sold, err := i.saleRepo.QuantitySoldOn(ownerID, product.ID, time.Now())
		if err != nil {
			return m, err
		}
		if sold > m.TopSeller.UnitsSold {
			m.TopSeller.Name = product.Name
			m.TopSeller.UnitsSold = sold
		}
	}

	return m, nil
}
