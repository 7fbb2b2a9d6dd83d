package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre pedidos.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// OrderMetrics conteo, ingresos y ticket promedio de pedidos reales en [from, to).
// is_test queda fuera de toda cifra de producción y solo se cuenta en preview_orders.
func (r *AnalyticsRepo) OrderMetrics(ctx context.Context, tenantID string, from, to time.Time) (*repository.OrderMetricsResult, error) {
	const query = `
	SELECT
	    COUNT(*)        FILTER (WHERE NOT is_test)               AS order_count,
	    COALESCE(SUM(total) FILTER (WHERE NOT is_test), 0)       AS revenue,
	    COUNT(*)        FILTER (WHERE is_test)                   AS preview_orders
	FROM orders
	WHERE tenant_id = $1
	  AND created_at >= $2 AND created_at < $3`

	var res repository.OrderMetricsResult
	if err := r.q.QueryRow(ctx, query, tenantID, from, to).Scan(&res.OrderCount, &res.Revenue, &res.PreviewOrders); err != nil {
		return nil, fmt.Errorf("order metrics: %w", err)
	}
	res.AverageTicket = decimal.Zero
	if res.OrderCount > 0 {
		res.AverageTicket = res.Revenue.Div(decimal.NewFromInt(int64(res.OrderCount))).Round(2)
	}
	return &res, nil
}
