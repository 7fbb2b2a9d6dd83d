package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderMetricsResult resultado crudo de la consulta de pedidos del tenant.
// Las cifras de producción nunca incluyen pedidos de vista previa.
type OrderMetricsResult struct {
	OrderCount    int
	Revenue       decimal.Decimal
	AverageTicket decimal.Decimal
	PreviewOrders int // pedidos is_test, informados aparte
}

// AnalyticsRepository consultas de solo lectura sobre pedidos.
type AnalyticsRepository interface {
	// OrderMetrics agrega pedidos del tenant creados en [from, to).
	OrderMetrics(ctx context.Context, tenantID string, from, to time.Time) (*OrderMetricsResult, error)
}
