package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// PlaceOrderCommand pedido de un cliente sobre el menú de un restaurante.
// Los flags Skip* e IsTest solo los fija el modo vista previa; ningún handler los toma del cliente.
type PlaceOrderCommand struct {
	TenantID                 string
	Items                    []entity.OrderItem
	CustomerPhone            string
	OTPCode                  string
	IsTest                   bool
	SkipNotifications        bool
	SkipCustomerVerification bool
}

// Creator crea pedidos. Lo implementa Service y lo decora preview.OrderCreator.
type Creator interface {
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*entity.Order, error)
}

// Verifier valida el código OTP enviado al teléfono del cliente.
type Verifier interface {
	Verify(ctx context.Context, tenantID, phone, code string) (bool, error)
}

// Notifier avisa al cliente que su pedido fue recibido.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *entity.Order) error
}

// Service pipeline de pedidos: validar, verificar cliente, persistir, notificar.
type Service struct {
	orders   repository.OrderRepository
	tenants  repository.TenantRepository
	verifier Verifier
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewService construye el servicio de pedidos.
func NewService(orders repository.OrderRepository, tenants repository.TenantRepository, verifier Verifier, notifier Notifier, log zerolog.Logger) *Service {
	return &Service{
		orders:   orders,
		tenants:  tenants,
		verifier: verifier,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

var _ Creator = (*Service)(nil)

// PlaceOrder registra el pedido. Una falla al notificar se registra pero no revierte el pedido.
func (s *Service) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*entity.Order, error) {
	if strings.TrimSpace(cmd.TenantID) == "" {
		return nil, domain.ErrTenantRequired
	}
	total, err := validateItems(cmd.Items)
	if err != nil {
		return nil, err
	}
	t, err := s.tenants.GetByID(ctx, cmd.TenantID)
	if err != nil {
		return nil, fmt.Errorf("obtener restaurante: %w", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}

	if !cmd.SkipCustomerVerification {
		if cmd.CustomerPhone == "" || cmd.OTPCode == "" {
			return nil, fmt.Errorf("%w: teléfono y código de verificación requeridos", domain.ErrInvalidInput)
		}
		if s.verifier == nil {
			return nil, fmt.Errorf("%w: verificación de clientes no disponible", domain.ErrForbidden)
		}
		ok, err := s.verifier.Verify(ctx, cmd.TenantID, cmd.CustomerPhone, cmd.OTPCode)
		if err != nil {
			return nil, fmt.Errorf("verificar cliente: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: código de verificación inválido", domain.ErrUnauthorized)
		}
	}

	now := s.now()
	order := &entity.Order{
		TenantID:      cmd.TenantID,
		Items:         cmd.Items,
		Total:         total,
		CustomerPhone: cmd.CustomerPhone,
		IsTest:        cmd.IsTest,
		Status:        entity.OrderStatusReceived,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	s.log.Info().
		Str("tenant_id", order.TenantID).
		Str("order_id", order.ID).
		Bool("is_test", order.IsTest).
		Msg("pedido recibido")

	if !cmd.SkipNotifications && s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, order); err != nil {
			s.log.Error().Err(err).Str("order_id", order.ID).Msg("notificar pedido")
		}
	}
	return order, nil
}

// GetOrder estado de un pedido del restaurante tenantID.
func (s *Service) GetOrder(ctx context.Context, tenantID, id string) (*entity.Order, error) {
	if tenantID == "" {
		return nil, domain.ErrTenantRequired
	}
	o, err := s.orders.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if o == nil || o.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func validateItems(items []entity.OrderItem) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, fmt.Errorf("%w: el pedido no tiene productos", domain.ErrInvalidInput)
	}
	total := decimal.Zero
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: producto %d inválido", domain.ErrInvalidInput, i+1)
		}
		total = total.Add(it.Subtotal())
	}
	return total, nil
}
