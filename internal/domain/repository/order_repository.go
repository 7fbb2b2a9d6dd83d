package repository

import (
	"context"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// OrderRepository persistencia de pedidos de clientes.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve el pedido solo si pertenece a tenantID, o (nil, nil).
	GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error)
}
