package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/pos-tracker/internal/http"
	handler "github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
)

func TestGetSalesHandler(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", Price: 120, Quantity: 50, Threshold: 1})
	for i := 0; i < 3; i++ {
		if w := sellUnits(r, p.Id, 1, fmt.Sprintf("sale-%d", i)); w.Code != http.StatusCreated {
			t.Fatalf("sale %d setup failed: %d", i, w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/sales", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result handler.SalesSearchResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Meta.TotalCount != 3 || len(result.Data) != 3 {
		t.Fatalf("expected 3 sales, got %d/%d", result.Meta.TotalCount, len(result.Data))
	}
	// newest first
	if result.Data[0].Id < result.Data[2].Id {
		t.Errorf("expected newest first, got ids %d..%d", result.Data[0].Id, result.Data[2].Id)
	}
}

func TestGetSalesHandler_Pagination(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", Price: 120, Quantity: 50, Threshold: 1})
	for i := 0; i < 5; i++ {
		sellUnits(r, p.Id, 1, fmt.Sprintf("sale-%d", i))
	}

	w := doJSON(r, http.MethodGet, "/sales?offset=1&limit=2", token, nil)
	var result handler.SalesSearchResult
	json.NewDecoder(w.Body).Decode(&result)

	if result.Meta.TotalCount != 5 {
		t.Errorf("total count must ignore pagination, got %d", result.Meta.TotalCount)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected a page of 2, got %d", len(result.Data))
	}
}

func TestGetSalesHandler_InvalidFilters(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(clearAll)

	tests := []string{
		"/sales?since=yesterday",
		"/sales?until=tomorrow",
		"/sales?offset=-1",
		"/sales?limit=0",
		"/sales?since=2025-06-02T00:00:00Z&until=2025-06-01T00:00:00Z",
	}
	for _, path := range tests {
		if w := doJSON(r, http.MethodGet, path, token, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

func TestGetSaleByIDHandler_OwnerScoped(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", Price: 120, Quantity: 50, Threshold: 1})
	w := sellUnits(r, p.Id, 1, "sale-key")
	sale := decodeSale(t, w)

	if w := doJSON(r, http.MethodGet, fmt.Sprintf("/sales/%d", sale.Id), token, nil); w.Code != http.StatusOK {
		t.Errorf("expected 200 for the owner, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, fmt.Sprintf("/sales/%d", sale.Id), secondToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("another owner must see 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/sales/9999", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown sale, got %d", w.Code)
	}
}

func TestDeleteSaleHandler(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", Price: 120, Quantity: 50, Threshold: 1})
	w := sellUnits(r, p.Id, 2, "sale-key")
	sale := decodeSale(t, w)

	stockAfterSale, _ := productRepo.GetByID(p.Id)

	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/sales/%d", sale.Id), secondToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("another owner must not delete the sale, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/sales/%d", sale.Id), token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// deleting the record does not restock
	after, _ := productRepo.GetByID(p.Id)
	if after.Quantity != stockAfterSale.Quantity {
		t.Errorf("stock changed on sale delete: %d -> %d", stockAfterSale.Quantity, after.Quantity)
	}

	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/sales/%d", sale.Id), token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}
}
