package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
)

type orderMetricsService interface {
	GetOrderMetrics(ctx context.Context, tc *tenant.Context, from, to time.Time) (*dto.OrderMetricsResponse, error)
}

// AnalyticsHandler métricas de pedidos del restaurante.
type AnalyticsHandler struct {
	uc orderMetricsService
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc orderMetricsService) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// OrderMetricsQuery rango opcional en formato YYYY-MM-DD; to es exclusivo.
type OrderMetricsQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// GetOrderMetrics godoc
// @Summary      Pedidos, ingresos y ticket promedio
// @Description  Excluye los pedidos de vista previa. Sin parámetros usa el mes en curso.
// @Tags         analytics
// @Security     BearerAuth
// @Produce      json
// @Param        from  query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  false  "Fin exclusivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.OrderMetricsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/metrics/orders [get]
func (h *AnalyticsHandler) GetOrderMetrics(c *fiber.Ctx) error {
	var q OrderMetricsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	from, ok := parseDay(q.From)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "from debe ser YYYY-MM-DD"})
	}
	to, ok := parseDay(q.To)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "to debe ser YYYY-MM-DD"})
	}

	out, err := h.uc.GetOrderMetrics(c.UserContext(), GetTenantContext(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDay vacío devuelve el tiempo cero (el caso de uso aplica el rango por defecto).
func parseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
