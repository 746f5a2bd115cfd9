package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pos-tracker/internal/cart"
	repo "github.com/rogerio-castellano/pos-tracker/internal/repo"
)

func writeCart(w http.ResponseWriter, c *cart.Cart) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CartResponse{Items: c.Items(), Total: c.Total()})
}

// AddToCartHandler godoc
// @Summary Add a product to the cart
// @Description Adds with quantity 1; adding an already-carted product is a no-op
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body CartItemRequest true "Product to add"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Out of stock"
// @Router /cart/items [post]
func AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	c := cartSessions.Get(GetUserID(r), productRepo)
	if err := c.Add(req.ProductID); err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, cart.ErrOutOfStock):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "could not add to cart", http.StatusInternalServerError)
		}
		return
	}
	writeCart(w, c)
}

// GetCartHandler godoc
// @Summary View the current cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartResponse
// @Router /cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	writeCart(w, cartSessions.Get(GetUserID(r), productRepo))
}

// IncrementCartItemHandler godoc
// @Summary Increase a cart line's quantity by one
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not in cart"
// @Failure 409 {string} string "Stock limit exceeded"
// @Router /cart/items/{id}/increment [post]
func IncrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	c := cartSessions.Get(GetUserID(r), productRepo)
	if err := c.Increment(id); err != nil {
		switch {
		case errors.Is(err, cart.ErrNotInCart):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, cart.ErrStockLimitExceeded):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "could not update cart", http.StatusInternalServerError)
		}
		return
	}
	writeCart(w, c)
}

// DecrementCartItemHandler godoc
// @Summary Decrease a cart line's quantity by one
// @Description Dropping to zero removes the line entirely
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not in cart"
// @Router /cart/items/{id}/decrement [post]
func DecrementCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	c := cartSessions.Get(GetUserID(r), productRepo)
	if err := c.Decrement(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeCart(w, c)
}

// RemoveCartItemHandler godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not in cart"
// @Router /cart/items/{id} [delete]
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	c := cartSessions.Get(GetUserID(r), productRepo)
	if err := c.Remove(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeCart(w, c)
}

// ClearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Security BearerAuth
// @Success 204 "Cleared"
// @Router /cart [delete]
func ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	cartSessions.Get(GetUserID(r), productRepo).Clear()
	w.WriteHeader(http.StatusNoContent)
}
