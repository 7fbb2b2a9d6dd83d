package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea del carrito.
type OrderItemRequest struct {
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PlaceOrderRequest checkout del cliente.
type PlaceOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1"`
	CustomerPhone string             `json:"customer_phone"`
	OTPCode       string             `json:"otp_code"`
}

// OrderResponse pedido y su estado.
type OrderResponse struct {
	ID        string             `json:"id"`
	TenantID  string             `json:"tenant_id"`
	Items     []OrderItemRequest `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	Status    string             `json:"status"`
	IsTest    bool               `json:"is_test"`
	CreatedAt time.Time          `json:"created_at"`
}
