package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/pos-tracker/internal/models"
	repo "github.com/rogerio-castellano/pos-tracker/internal/repo"
)

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		CostPrice:  p.CostPrice,
		Price:      p.Price,
		Quantity:   p.Quantity,
		Threshold:  p.Threshold,
		ExpiresAt:  p.ExpiresAt,
		LowStock:   p.Quantity > 0 && p.Quantity <= p.Threshold,
		OutOfStock: p.Quantity == 0,
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog and emits a product-added notification
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} map[string]string
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		OwnerID:   GetUserID(r),
		Name:      req.Name,
		Category:  req.Category,
		CostPrice: req.CostPrice,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		ExpiresAt: req.ExpiresAt,
		CreatedAt: time.Now().Format(time.RFC3339),
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	created, err := productRepo.Create(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create product: product name duplicated", http.StatusInternalServerError)
			return
		}
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	ruleEngine.NotifyProductAdded(created)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List the owner's products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productRepo.GetAll(GetUserID(r))
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	product := models.Product{
		ID:        id,
		OwnerID:   GetUserID(r),
		Name:      req.Name,
		Category:  req.Category,
		CostPrice: req.CostPrice,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Threshold: req.Threshold,
		ExpiresAt: req.ExpiresAt,
		UpdatedAt: time.Now().Format(time.RFC3339),
	}
	updated, err := productRepo.Update(product)
	if err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		http.Error(w, "product ID is required", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	if err := productRepo.Delete(id); err != nil {
		if err == repo.ErrProductNotFound {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustQuantityHandler godoc
// @Summary Adjust quantity of a product
// @Description Manual stock correction; sale-time decrements go through checkout instead
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param adjustment body QuantityAdjustmentRequest true "Quantity change"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid adjustment"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Quantity cannot be negative"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/adjust [post]
// @Security BearerAuth
func AdjustQuantityHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req QuantityAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	product, err := productRepo.AdjustQuantity(id, req.Delta)
	if err != nil {
		if err == repo.ErrInvalidQuantityChange {
			http.Error(w, "quantity cannot be negative", http.StatusConflict)
			return
		}
		http.Error(w, "could not update quantity", http.StatusInternalServerError)
		return
	}

	if product.Quantity <= product.Threshold {
		log.Printf("ALERT: Product %d (%s) is at or below threshold! Qty=%d, Threshold=%d",
			product.ID, product.Name, product.Quantity, product.Threshold)
	}
	ruleEngine.CheckStockLevel(product)

	json.NewEncoder(w).Encode(toProductResponse(product))
}

// GetExpiringProductsHandler godoc
// @Summary List products expiring within a window
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (defaults to the configured expiry window)"
// @Success 200 {array} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /products/expiring [get]
func GetExpiringProductsHandler(w http.ResponseWriter, r *http.Request) {
	days := expiryWindowDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		v, err := strconv.Atoi(daysStr)
		if err != nil || v <= 0 {
			http.Error(w, "days must be a positive integer", http.StatusBadRequest)
			return
		}
		days = v
	}

	products, err := productRepo.ExpiringWithin(GetUserID(r), days)
	if err != nil {
		http.Error(w, "could not fetch expiring products", http.StatusInternalServerError)
		return
	}

	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
