package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/pos-tracker/internal/http"
	handler "github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
)

func clearCart(r http.Handler) {
	doJSON(r, http.MethodDelete, "/cart", token, nil)
	doJSON(r, http.MethodDelete, "/cart", secondToken, nil)
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) handler.CartResponse {
	t.Helper()
	var resp handler.CartResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	return resp
}

func TestAddToCartHandler(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", Price: 120, Quantity: 10})

	w := addToCart(r, p.Id)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	cart := decodeCart(t, w)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Errorf("expected one item with quantity 1, got %+v", cart.Items)
	}
	if cart.Total != 120 {
		t.Errorf("expected total 120, got %.2f", cart.Total)
	}

	// adding again keeps quantity at 1
	w = addToCart(r, p.Id)
	if cart := decodeCart(t, w); len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Errorf("re-add must be a no-op, got %+v", cart.Items)
	}
}

func TestAddToCartHandler_Errors(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	depleted := mustCreateProduct(r, handler.ProductRequest{Name: "Sugar", Price: 30, Quantity: 0})

	if w := addToCart(r, depleted.Id); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for out-of-stock product, got %d", w.Code)
	}
	if w := addToCart(r, 9999); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
}

func TestCartIncrementDecrementRoundTrip(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Milk", Price: 10, Quantity: 5})
	addToCart(r, p.Id)

	// up to 3, back down to 1, then one more decrement removes the line
	incrementCartItem(r, p.Id)
	incrementCartItem(r, p.Id)
	for i := 0; i < 2; i++ {
		doJSON(r, http.MethodPost, fmt.Sprintf("/cart/items/%d/decrement", p.Id), token, nil)
	}

	w := doJSON(r, http.MethodGet, "/cart", token, nil)
	if cart := decodeCart(t, w); len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity back at 1, got %+v", cart.Items)
	}

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/cart/items/%d/decrement", p.Id), token, nil)
	if cart := decodeCart(t, w); len(cart.Items) != 0 {
		t.Errorf("expected the line removed, got %+v", cart.Items)
	}
}

func TestCartIncrementStopsAtStock(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Milk", Price: 10, Quantity: 2})
	addToCart(r, p.Id)
	incrementCartItem(r, p.Id)

	if w := incrementCartItem(r, p.Id); w.Code != http.StatusConflict {
		t.Errorf("expected 409 past available stock, got %d", w.Code)
	}
}

func TestRemoveAndClearCart(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	a := mustCreateProduct(r, handler.ProductRequest{Name: "A", Price: 1, Quantity: 5})
	b := mustCreateProduct(r, handler.ProductRequest{Name: "B", Price: 2, Quantity: 5})
	addToCart(r, a.Id)
	addToCart(r, b.Id)

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", a.Id), token, nil)
	if cart := decodeCart(t, w); len(cart.Items) != 1 {
		t.Errorf("expected one item after remove, got %+v", cart.Items)
	}
	if w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", a.Id), token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 removing an absent item, got %d", w.Code)
	}

	if w := doJSON(r, http.MethodDelete, "/cart", token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 clearing the cart, got %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/cart", token, nil)
	if cart := decodeCart(t, w); len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %+v", cart.Items)
	}
}

func TestCartsAreOwnerScoped(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	p := mustCreateProduct(r, handler.ProductRequest{Name: "Rice 5kg", Price: 120, Quantity: 10})
	addToCart(r, p.Id)

	w := doJSON(r, http.MethodGet, "/cart", secondToken, nil)
	if cart := decodeCart(t, w); len(cart.Items) != 0 {
		t.Errorf("second user's cart must be empty, got %+v", cart.Items)
	}
}
