package handlers

import (
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/cart"
	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

type ProductRequest struct {
	Id        int        `json:"id,omitempty"`
	Name      string     `json:"name"`
	Category  string     `json:"category,omitempty"`
	CostPrice float64    `json:"cost_price"`
	Price     float64    `json:"price"`
	Quantity  int        `json:"quantity"`
	Threshold int        `json:"threshold"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ProductResponse struct {
	Id         int        `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category,omitempty"`
	CostPrice  float64    `json:"cost_price"`
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
	Threshold  int        `json:"threshold"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LowStock   bool       `json:"low_stock,omitempty"`
	OutOfStock bool       `json:"out_of_stock,omitempty"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type CartItemRequest struct {
	ProductID int `json:"product_id"`
}

type CartResponse struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
}

type CheckoutRequest struct {
	PaymentMethod  string         `json:"payment_method"`
	Debtor         *models.Debtor `json:"debtor,omitempty"`
	IdempotencyKey string         `json:"idempotency_key,omitempty"`
}

type SaleResponse struct {
	Id                 int               `json:"id"`
	Items              []models.SaleItem `json:"items"`
	Total              float64           `json:"total"`
	Profit             float64           `json:"profit"`
	PaymentMethod      string            `json:"payment_method"`
	Debtor             *models.Debtor    `json:"debtor,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	DepletedProductIDs []int             `json:"depleted_product_ids,omitempty"`
	Replayed           bool              `json:"replayed,omitempty"`
}

type SalesSearchResult struct {
	Data []SaleResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshRequest struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
