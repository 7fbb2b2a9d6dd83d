package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

type fakeUsers struct{ byID map[string]*entity.User }

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error { f.byID[u.ID] = u; return nil }
func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}
func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeTenants struct{ byID map[string]*entity.Tenant }

func (f *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.byID[id], nil
}

func newResolver() *tenant.Resolver {
	users := &fakeUsers{byID: map[string]*entity.User{
		"u-owner":    {ID: "u-owner", TenantID: "t-1", Role: entity.RoleOwner, Status: "active"},
		"u-manager":  {ID: "u-manager", TenantID: "t-1", Role: entity.RoleManager, Status: "active"},
		"u-orphan":   {ID: "u-orphan", TenantID: "", Role: entity.RoleOwner, Status: "active"},
		"u-dangling": {ID: "u-dangling", TenantID: "t-404", Role: entity.RoleOwner, Status: "active"},
		"u-off":      {ID: "u-off", TenantID: "t-1", Role: entity.RoleOwner, Status: "inactive"},
	}}
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{
		"t-1": {ID: "t-1", Name: "La Esquina"},
	}}
	return tenant.NewResolver(users, tenants, authz.Default(), zerolog.Nop())
}

func TestResolve_Owner(t *testing.T) {
	tc, err := newResolver().Resolve(context.Background(), "u-owner", "t-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", tc.TenantID())
	assert.Equal(t, entity.RoleOwner, tc.Role())
	assert.True(t, tc.Can(authz.BillingPay))
	assert.NoError(t, tc.Require(authz.BillingCancel))
}

func TestResolve_ManagerNoPaga(t *testing.T) {
	tc, err := newResolver().Resolve(context.Background(), "u-manager", "t-1")
	require.NoError(t, err)
	assert.True(t, tc.Can(authz.BillingView))
	err = tc.Require(authz.BillingPay)
	assert.True(t, errors.Is(err, domain.ErrAuthorizationDenied))
}

func TestResolve_TenantDelTokenDistintoFallaCerrado(t *testing.T) {
	_, err := newResolver().Resolve(context.Background(), "u-owner", "t-2")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestResolve_UsuarioInexistenteOInactivo(t *testing.T) {
	r := newResolver()
	_, err := r.Resolve(context.Background(), "nadie", "t-1")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = r.Resolve(context.Background(), "u-off", "t-1")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = r.Resolve(context.Background(), "", "")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestResolve_SinRestaurante(t *testing.T) {
	r := newResolver()
	for _, id := range []string{"u-orphan", "u-dangling"} {
		tokenTenant := ""
		if id == "u-dangling" {
			tokenTenant = "t-404"
		}
		tc, err := r.Resolve(context.Background(), id, tokenTenant)
		require.NoError(t, err)
		assert.False(t, tc.HasTenant())
		_, err = tc.Authorize(authz.BillingView)
		assert.True(t, errors.Is(err, domain.ErrTenantRequired), id)
	}
}

func TestContext_NilNuncaAutoriza(t *testing.T) {
	var tc *tenant.Context
	assert.False(t, tc.Can(authz.BillingView))
	assert.Empty(t, tc.TenantID())
	assert.Empty(t, tc.Allowed())
}
