package ordering_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/application/ordering"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

type memOrders struct{ orders []*entity.Order }

func (m *memOrders) Create(_ context.Context, o *entity.Order) error {
	o.ID = "ord-1"
	cp := *o
	m.orders = append(m.orders, &cp)
	return nil
}

func (m *memOrders) GetByID(_ context.Context, tenantID, id string) (*entity.Order, error) {
	for _, o := range m.orders {
		if o.ID == id && o.TenantID == tenantID {
			return o, nil
		}
	}
	return nil, nil
}

type memTenants map[string]*entity.Tenant

func (m memTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) { return m[id], nil }

type codeVerifier struct{ code string }

func (v codeVerifier) Verify(_ context.Context, _, _, code string) (bool, error) {
	return code == v.code, nil
}

type failingNotifier struct{ calls int }

func (n *failingNotifier) OrderPlaced(context.Context, *entity.Order) error {
	n.calls++
	return errors.New("sms caído")
}

func newService() (*ordering.Service, *memOrders, *failingNotifier) {
	orders := &memOrders{}
	notifier := &failingNotifier{}
	svc := ordering.NewService(orders, memTenants{"t-1": {ID: "t-1"}}, codeVerifier{code: "4321"}, notifier, zerolog.Nop())
	return svc, orders, notifier
}

func items() []entity.OrderItem {
	return []entity.OrderItem{{Name: "Wrap", Quantity: 3, UnitPrice: decimal.RequireFromString("20")}}
}

func TestPlaceOrder_OK(t *testing.T) {
	svc, orders, notifier := newService()
	o, err := svc.PlaceOrder(context.Background(), ordering.PlaceOrderCommand{
		TenantID: "t-1", Items: items(), CustomerPhone: "+905550000000", OTPCode: "4321",
	})
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("60")))
	assert.Equal(t, entity.OrderStatusReceived, o.Status)
	assert.False(t, o.IsTest)
	assert.Len(t, orders.orders, 1)
	assert.Equal(t, 1, notifier.calls, "la falla de notificación no revierte el pedido")
}

func TestPlaceOrder_CodigoInvalido(t *testing.T) {
	svc, orders, _ := newService()
	_, err := svc.PlaceOrder(context.Background(), ordering.PlaceOrderCommand{
		TenantID: "t-1", Items: items(), CustomerPhone: "+905550000000", OTPCode: "0000",
	})
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Empty(t, orders.orders)
}

func TestPlaceOrder_SinVerificacionNiItems(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.PlaceOrder(context.Background(), ordering.PlaceOrderCommand{TenantID: "t-1", Items: items()})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.PlaceOrder(context.Background(), ordering.PlaceOrderCommand{TenantID: "t-1", SkipCustomerVerification: true})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	bad := []entity.OrderItem{{Name: "Wrap", Quantity: 0, UnitPrice: decimal.RequireFromString("20")}}
	_, err = svc.PlaceOrder(context.Background(), ordering.PlaceOrderCommand{TenantID: "t-1", Items: bad, SkipCustomerVerification: true})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPlaceOrder_RestauranteInexistente(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.PlaceOrder(context.Background(), ordering.PlaceOrderCommand{TenantID: "t-9", Items: items(), SkipCustomerVerification: true})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetOrder_OtroRestaurante(t *testing.T) {
	svc, _, _ := newService()
	o, err := svc.PlaceOrder(context.Background(), ordering.PlaceOrderCommand{
		TenantID: "t-1", Items: items(), SkipCustomerVerification: true, SkipNotifications: true,
	})
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), "t-1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = svc.GetOrder(context.Background(), "t-2", o.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
