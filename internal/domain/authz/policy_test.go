package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

func TestCan_OwnerPuedeTodo(t *testing.T) {
	p := authz.Default()
	for _, a := range authz.AllActions() {
		assert.True(t, p.Can(entity.RoleOwner, a), "owner debe poder %s", a)
	}
}

func TestCan_ManagerOperativo(t *testing.T) {
	p := authz.Default()

	allowed := []authz.Action{
		authz.KioskCreate, authz.KioskUpdate, authz.KioskDelete,
		authz.SaladCreate, authz.SaladUpdate, authz.SaladDelete,
		authz.BillingView, authz.PreviewEnter, authz.MetricsView,
	}
	for _, a := range allowed {
		assert.True(t, p.Can(entity.RoleManager, a), "manager debe poder %s", a)
	}

	denied := []authz.Action{
		authz.BillingPay, authz.BillingActivateManual, authz.BillingCancel, authz.BillingReactivate,
	}
	for _, a := range denied {
		assert.False(t, p.Can(entity.RoleManager, a), "manager no debe poder %s", a)
	}
}

// Para todo rol y acción, Can es determinista y total.
func TestCan_TotalYDeterminista(t *testing.T) {
	p := authz.Default()
	roles := []string{entity.RoleOwner, entity.RoleManager, "waiter", "", "OWNER", "admin"}
	actions := append(authz.AllActions(), "", "kiosk.*", "unknown.action")

	for _, r := range roles {
		for _, a := range actions {
			first := p.Can(r, a)
			assert.NotPanics(t, func() { p.Can(r, a) })
			assert.Equal(t, first, p.Can(r, a), "Can(%q,%q) debe ser determinista", r, a)
		}
	}
}

func TestCan_RolDesconocidoDeniega(t *testing.T) {
	p := authz.Default()
	for _, a := range authz.AllActions() {
		assert.False(t, p.Can("waiter", a))
		assert.False(t, p.Can("", a))
	}
}

func TestCan_AccionDesconocidaDeniega(t *testing.T) {
	p := authz.Default()
	assert.False(t, p.Can(entity.RoleOwner, "menu.publish"))
}

func TestCan_PoliticaNilDeniega(t *testing.T) {
	var p *authz.Policy
	assert.False(t, p.Can(entity.RoleOwner, authz.BillingView))
	assert.Empty(t, p.Allowed(entity.RoleOwner))
}

func TestNew_TablaPersonalizada(t *testing.T) {
	p := authz.New(authz.Table{
		entity.RoleManager: {authz.BillingView, "inventada"},
	})
	assert.True(t, p.Can(entity.RoleManager, authz.BillingView))
	assert.False(t, p.Can(entity.RoleManager, "inventada"), "acciones no reconocidas se ignoran")
	assert.False(t, p.Can(entity.RoleOwner, authz.BillingView), "owner no está en la tabla")
}

func TestCanUser_SuperAdminComoOwner(t *testing.T) {
	p := authz.Default()
	u := &entity.User{Role: "support", IsSuperAdmin: true}
	assert.True(t, p.CanUser(u, authz.BillingCancel))
	assert.Len(t, p.AllowedFor(u), len(authz.AllActions()))

	assert.False(t, p.CanUser(nil, authz.BillingView))
}

func TestAllowed_Ordenado(t *testing.T) {
	got := authz.Default().Allowed(entity.RoleManager)
	assert.Len(t, got, 9)
	for i := 1; i < len(got); i++ {
		assert.Less(t, string(got[i-1]), string(got[i]))
	}
}
