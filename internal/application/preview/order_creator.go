package preview

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/ordering"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// OrderCreator decora la creación de pedidos. Con un scope en el contexto el pedido va al
// restaurante del scope, queda marcado como prueba y sin notificar ni verificar al cliente.
// Sin scope el comando pasa intacto. Las lecturas no pasan por aquí.
type OrderCreator struct {
	next    ordering.Creator
	metrics Metrics
	log     zerolog.Logger
}

// NewOrderCreator envuelve next.
func NewOrderCreator(next ordering.Creator, metrics Metrics, log zerolog.Logger) *OrderCreator {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &OrderCreator{next: next, metrics: metrics, log: log}
}

var _ ordering.Creator = (*OrderCreator)(nil)

// PlaceOrder aplica el scope de vista previa, si existe, y delega.
func (c *OrderCreator) PlaceOrder(ctx context.Context, cmd ordering.PlaceOrderCommand) (*entity.Order, error) {
	scope, ok := FromContext(ctx)
	if !ok {
		return c.next.PlaceOrder(ctx, cmd)
	}
	if cmd.TenantID != scope.TenantID {
		c.log.Debug().
			Str("requested_tenant_id", cmd.TenantID).
			Str("tenant_id", scope.TenantID).
			Msg("pedido de vista previa fijado al restaurante del admin")
	}
	cmd.TenantID = scope.TenantID
	cmd.IsTest = true
	cmd.SkipNotifications = true
	cmd.SkipCustomerVerification = true

	order, err := c.next.PlaceOrder(ctx, cmd)
	if err != nil {
		return nil, err
	}
	c.metrics.OrderTagged()
	return order, nil
}
