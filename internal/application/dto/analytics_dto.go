package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderMetricsResponse métricas de pedidos reales del tenant en el periodo.
type OrderMetricsResponse struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	OrderCount    int             `json:"order_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	PreviewOrders int             `json:"preview_orders"`
}
