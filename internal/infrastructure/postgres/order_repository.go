package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos de clientes. Las líneas se guardan como JSONB en la misma fila.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}
	query := `
		INSERT INTO orders (id, tenant_id, items, total, customer_phone, is_test, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.TenantID, items, o.Total, nullIfEmpty(o.CustomerPhone), o.IsTest, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene el pedido del tenant, o (nil, nil).
func (r *OrderRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var o entity.Order
	var items []byte
	var phone *string
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, items, total, customer_phone, is_test, status, created_at, updated_at
		FROM orders WHERE id = $1 AND tenant_id = $2`, id, tenantID,
	).Scan(&o.ID, &o.TenantID, &items, &o.Total, &phone, &o.IsTest, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	o.CustomerPhone = derefString(phone)
	return &o, nil
}
