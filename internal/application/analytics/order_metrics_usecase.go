// Package analytics contiene los casos de uso de métricas de pedidos del restaurante.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// maxRange rango máximo consultable en una sola llamada.
const maxRange = 366 * 24 * time.Hour

// OrderMetricsUseCase métricas de pedidos reales del tenant.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Los pedidos de vista previa
// nunca suman a conteo ni ingresos; solo se informan aparte en PreviewOrders.
type OrderMetricsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewOrderMetricsUseCase construye el caso de uso.
func NewOrderMetricsUseCase(analyticsRepo repository.AnalyticsRepository) *OrderMetricsUseCase {
	return &OrderMetricsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// SetClock reemplaza el reloj (tests).
func (uc *OrderMetricsUseCase) SetClock(now func() time.Time) { uc.now = now }

// GetOrderMetrics métricas en [from, to). Con from/to en cero usa el mes en curso hasta ahora.
func (uc *OrderMetricsUseCase) GetOrderMetrics(ctx context.Context, tc *tenant.Context, from, to time.Time) (*dto.OrderMetricsResponse, error) {
	tenantID, err := tc.Authorize(authz.MetricsView)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from debe ser anterior a to", domain.ErrInvalidInput)
	}
	if to.Sub(from) > maxRange {
		return nil, fmt.Errorf("%w: el rango no puede superar un año", domain.ErrInvalidInput)
	}

	m, err := uc.analyticsRepo.OrderMetrics(ctx, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("métricas de pedidos: %w", err)
	}
	return &dto.OrderMetricsResponse{
		From:          from,
		To:            to,
		OrderCount:    m.OrderCount,
		Revenue:       m.Revenue,
		AverageTicket: m.AverageTicket,
		PreviewOrders: m.PreviewOrders,
	}, nil
}
