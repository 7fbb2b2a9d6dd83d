package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Order.
const (
	OrderStatusReceived  = "received"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
)

// Order pedido de cliente. IsTest marca pedidos hechos en vista previa por un admin.
type Order struct {
	ID            string
	TenantID      string
	Items         []OrderItem
	Total         decimal.Decimal
	CustomerPhone string
	IsTest        bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem línea de un pedido.
type OrderItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal cantidad por precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
