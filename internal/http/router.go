package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/pos-tracker/internal/http/rate_limiter"
)

// NewRouter wires every route. Auth and sign-up endpoints stay public;
// everything else requires a bearer token and is rate limited per IP.
func NewRouter(limiter *rl.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Post("/refresh", handlers.RefreshHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}

		r.Route("/products", func(r chi.Router) {
			r.Post("/", handlers.CreateProductHandler)
			r.Get("/", handlers.GetProductsHandler)
			r.Get("/expiring", handlers.GetExpiringProductsHandler)
			r.Post("/import", handlers.ImportProductsHandler)
			r.Get("/{id}", handlers.GetProductByIDHandler)
			r.Put("/{id}", handlers.UpdateProductHandler)
			r.Delete("/{id}", handlers.DeleteProductHandler)
			r.Post("/{id}/adjust", handlers.AdjustQuantityHandler)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", handlers.GetCartHandler)
			r.Delete("/", handlers.ClearCartHandler)
			r.Post("/items", handlers.AddToCartHandler)
			r.Delete("/items/{id}", handlers.RemoveCartItemHandler)
			r.Post("/items/{id}/increment", handlers.IncrementCartItemHandler)
			r.Post("/items/{id}/decrement", handlers.DecrementCartItemHandler)
		})

		r.Post("/checkout", handlers.CheckoutHandler)

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", handlers.GetSalesHandler)
			r.Get("/{id}", handlers.GetSaleByIDHandler)
			r.Delete("/{id}", handlers.DeleteSaleHandler)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", handlers.GetNotificationsHandler)
			r.Post("/{id}/read", handlers.MarkNotificationReadHandler)
		})

		r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
	})

	return r
}
