package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rogerio-castellano/pos-tracker/internal/checkout"
	"github.com/rogerio-castellano/pos-tracker/internal/models"
	"github.com/rogerio-castellano/pos-tracker/internal/sales"
)

func toSaleResponse(res sales.Result) SaleResponse {
	s := res.Sale
	return SaleResponse{
		Id:                 s.ID,
		Items:              s.Items,
		Total:              s.Total,
		Profit:             s.Profit(),
		PaymentMethod:      string(s.PaymentMethod),
		Debtor:             s.Debtor,
		CreatedAt:          s.CreatedAt,
		DepletedProductIDs: res.DepletedProductIDs,
		Replayed:           res.Replayed,
	}
}

// CheckoutHandler godoc
// @Summary Check out the current cart
// @Description Runs the full payment flow over the owner's cart: payment
// @Description selection, debtor capture for credit sales, then commit.
// @Description Clients may pass an idempotency key so a retried request
// @Description replays the committed sale instead of recording a second one.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param checkout body CheckoutRequest true "Payment details"
// @Success 201 {object} SaleResponse
// @Success 200 {object} SaleResponse "Replayed from an earlier attempt"
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Empty cart"
// @Failure 500 {string} string "Commit failed"
// @Router /checkout [post]
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	ownerID := GetUserID(r)
	c := cartSessions.Get(ownerID, productRepo)

	co, err := checkout.New(ownerID, c, processor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	co.UseKey(req.IdempotencyKey)

	if err := co.SelectPayment(models.PaymentMethod(req.PaymentMethod)); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Debtor != nil {
		if err := co.SetDebtor(*req.Debtor); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	result, err := co.Confirm(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNoPaymentMethod),
			errors.Is(err, checkout.ErrMissingDebtorField):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, checkout.ErrEmptyCart):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "could not complete sale", http.StatusInternalServerError)
		}
		return
	}

	cartSessions.Drop(ownerID)

	w.Header().Set("Content-Type", "application/json")
	if result.Replayed {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(toSaleResponse(result))
}
