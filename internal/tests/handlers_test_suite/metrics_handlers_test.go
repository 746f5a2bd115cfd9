package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	api "github.com/rogerio-castellano/pos-tracker/internal/http"
	handler "github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/pos-tracker/internal/repo"
)

func TestGetDashboardMetricsHandler(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	soon := time.Now().Add(2 * 24 * time.Hour)
	rice := mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", CostPrice: 90, Price: 120, Quantity: 20, Threshold: 2})
	milk := mustCreateProduct(r, handler.ProductRequest{Name: "Milk", CostPrice: 5, Price: 10, Quantity: 1, Threshold: 3})
	mustCreateProduct(r, handler.ProductRequest{Name: "Yogurt", Price: 5, Quantity: 5, ExpiresAt: &soon})

	sellUnits(r, rice.Id, 3, "m1")
	sellUnits(r, milk.Id, 1, "m2")

	w := doJSON(r, http.MethodGet, "/metrics/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var m repo.Metrics
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}

	if m.TotalProducts != 3 {
		t.Errorf("expected 3 products, got %d", m.TotalProducts)
	}
	// milk is at zero now, counted as at-or-below threshold
	if m.LowStockCount != 1 {
		t.Errorf("expected 1 low-stock product, got %d", m.LowStockCount)
	}
	if m.ExpiringSoon != 1 {
		t.Errorf("expected 1 product expiring soon, got %d", m.ExpiringSoon)
	}
	if m.SalesToday != 2 {
		t.Errorf("expected 2 sales today, got %d", m.SalesToday)
	}
	if want := 3*120.0 + 10.0; m.RevenueToday != want {
		t.Errorf("expected revenue %.2f, got %.2f", want, m.RevenueToday)
	}
	if want := 3*30.0 + 5.0; m.ProfitToday != want {
		t.Errorf("expected profit %.2f, got %.2f", want, m.ProfitToday)
	}
	if m.TopSeller.Name != "Rice 5kg" || m.TopSeller.UnitsSold != 3 {
		t.Errorf("expected Rice 5kg with 3 units as top seller, got %+v", m.TopSeller)
	}
}

func TestDashboardMetricsEmptyShop(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(clearAll)

	w := doJSON(r, http.MethodGet, "/metrics/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var m repo.Metrics
	json.NewDecoder(w.Body).Decode(&m)
	if m.TotalProducts != 0 || m.SalesToday != 0 || m.TopSeller.UnitsSold != 0 {
		t.Errorf("expected zeroed metrics, got %+v", m)
	}
}
