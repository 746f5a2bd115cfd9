package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/pos-tracker/internal/http"
	handler "github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
)

func importCSV(r http.Handler, csv, query string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csv, "products.csv")
	req := httptest.NewRequest(http.MethodPost, "/products/import"+query, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(clearAll)

	csv := "name,category,cost_price,price,quantity,threshold,expires_at\n" +
		"Rice 5kg,grains,90,120,20,3,\n" +
		"Yogurt,dairy,2,5,10,2,2026-12-01\n"

	w := importCSV(r, csv, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %+v", result.Errors)
	}

	products, _ := productRepo.GetAll(1)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[1].ExpiresAt == nil {
		t.Error("expected the expiry date parsed")
	}
}

func TestImportProductsHandler_SkipAndUpdateModes(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(clearAll)

	mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", CostPrice: 90, Price: 120, Quantity: 20, Threshold: 3})

	csv := "name,category,cost_price,price,quantity,threshold\n" +
		"Rice 5kg,grains,95,130,25,3\n"

	// default mode skips duplicates
	w := importCSV(r, csv, "")
	var result handler.ImportProductsResult
	json.NewDecoder(w.Body).Decode(&result)
	if result.ImportedProductsCount != 0 || len(result.Errors) != 1 {
		t.Errorf("skip mode: expected 0 imported and 1 error, got %d/%d", result.ImportedProductsCount, len(result.Errors))
	}

	// update mode overwrites in place
	w = importCSV(r, csv, "?mode=update")
	result = handler.ImportProductsResult{}
	json.NewDecoder(w.Body).Decode(&result)
	if result.ImportedProductsCount != 1 {
		t.Fatalf("update mode: expected 1 imported, got %d", result.ImportedProductsCount)
	}

	products, _ := productRepo.GetAll(1)
	if len(products) != 1 || products[0].Price != 130 || products[0].Quantity != 25 {
		t.Errorf("update not applied: %+v", products)
	}
}

func TestImportProductsHandler_RowErrors(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(clearAll)

	csv := "name,price,quantity,threshold\n" +
		",10,5,1\n" +
		"Valid,20,5,1\n" +
		"Bad Price,0,5,1\n"

	w := importCSV(r, csv, "")
	var result handler.ImportProductsResult
	json.NewDecoder(w.Body).Decode(&result)

	if result.ImportedProductsCount != 1 {
		t.Errorf("expected 1 imported, got %d", result.ImportedProductsCount)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 row errors, got %+v", result.Errors)
	}
}

func TestImportProductsHandler_MissingFile(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(clearAll)

	req := httptest.NewRequest(http.MethodPost, "/products/import", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a file, got %d", w.Code)
	}
}
