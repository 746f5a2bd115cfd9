package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	repo "github.com/rogerio-castellano/pos-tracker/internal/repo"
	"github.com/rogerio-castellano/pos-tracker/internal/sales"
)

// GetSalesHandler godoc
// @Summary List the owner's sales, newest first
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param since query string false "RFC3339 lower bound (inclusive)"
// @Param until query string false "RFC3339 upper bound (exclusive)"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size (default 100)"
// @Success 200 {object} SalesSearchResult
// @Failure 400 {object} map[string]any "Invalid filters"
// @Failure 500 {string} string "Internal error"
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	filter, errs := parseSaleFilter(r)
	if len(errs) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"errors": errs})
		return
	}

	records, totalCount, err := saleRepo.GetAll(GetUserID(r), filter)
	if err != nil {
		http.Error(w, "could not fetch sales", http.StatusInternalServerError)
		return
	}

	result := SalesSearchResult{
		Data: make([]SaleResponse, len(records)),
		Meta: Meta{TotalCount: totalCount},
	}
	for i, s := range records {
		result.Data[i] = toSaleResponse(sales.Result{Sale: s})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func parseSaleFilter(r *http.Request) (repo.SaleFilter, []string) {
	var (
		filter repo.SaleFilter
		errs   []string
	)
	q := r.URL.Query()

	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			errs = append(errs, "since must be an RFC3339 timestamp")
		} else {
			filter.Since = &t
		}
	}
	if v := q.Get("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			errs = append(errs, "until must be an RFC3339 timestamp")
		} else {
			filter.Until = &t
		}
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, "offset must be a non-negative integer")
		} else {
			filter.Offset = &n
		}
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errs = append(errs, "limit must be a positive integer")
		} else {
			filter.Limit = &n
		}
	}
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		errs = append(errs, "until must not precede since")
	}
	return filter, errs
}

// GetSaleByIDHandler godoc
// @Summary Get one sale record
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {object} SaleResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /sales/{id} [get]
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := saleRepo.GetByID(id)
	if err != nil {
		if err == repo.ErrSaleNotFound {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch sale", http.StatusInternalServerError)
		return
	}
	if sale.OwnerID != GetUserID(r) {
		http.Error(w, "sale not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSaleResponse(sales.Result{Sale: sale}))
}

// DeleteSaleHandler godoc
// @Summary Delete a sale record
// @Description Removes the ledger entry only; stock already decremented stays decremented
// @Tags sales
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /sales/{id} [delete]
func DeleteSaleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	sale, err := saleRepo.GetByID(id)
	if err != nil || sale.OwnerID != GetUserID(r) {
		http.Error(w, "sale not found", http.StatusNotFound)
		return
	}

	if err := saleRepo.Delete(id); err != nil {
		if err == repo.ErrSaleNotFound {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete sale", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
