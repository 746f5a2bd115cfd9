package handlers

import (
	"github.com/rogerio-castellano/pos-tracker/internal/cart"
	"github.com/rogerio-castellano/pos-tracker/internal/checkout"
	"github.com/rogerio-castellano/pos-tracker/internal/notify"
	repo "github.com/rogerio-castellano/pos-tracker/internal/repo"
)

var (
	productRepo      repo.ProductRepository
	saleRepo         repo.SaleRepository
	notificationRepo repo.NotificationRepository
	metricsRepo      repo.MetricsRepository
	userRepo         repo.UserRepository

	ruleEngine *notify.Engine
	processor  checkout.Processor

	cartSessions = cart.NewSessionStore()

	expiryWindowDays = notify.DefaultExpiryWindowDays
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetNotificationRepo(r repo.NotificationRepository) {
	notificationRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetRuleEngine(e *notify.Engine) {
	ruleEngine = e
}

func SetProcessor(p checkout.Processor) {
	processor = p
}

func SetExpiryWindowDays(days int) {
	if days > 0 {
		expiryWindowDays = days
	}
}
