// Package authz decide qué puede hacer cada rol del panel. Es una tabla de configuración,
// sin efectos secundarios: los handlers y casos de uso la consultan en vez de comparar roles.
package authz

import (
	"sort"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// Action acción protegida del panel.
type Action string

const (
	KioskCreate Action = "kiosk.create"
	KioskUpdate Action = "kiosk.update"
	KioskDelete Action = "kiosk.delete"
	SaladCreate Action = "salad.create"
	SaladUpdate Action = "salad.update"
	SaladDelete Action = "salad.delete"

	BillingView           Action = "billing.view"
	BillingPay            Action = "billing.pay"
	BillingActivateManual Action = "billing.activate_manual"
	BillingCancel         Action = "billing.cancel"
	BillingReactivate     Action = "billing.reactivate"

	PreviewEnter Action = "preview.enter"
	MetricsView  Action = "metrics.view"
)

// AllActions acciones reconocidas, en orden estable.
func AllActions() []Action {
	return []Action{
		KioskCreate, KioskUpdate, KioskDelete,
		SaladCreate, SaladUpdate, SaladDelete,
		BillingView, BillingPay, BillingActivateManual, BillingCancel, BillingReactivate,
		PreviewEnter, MetricsView,
	}
}

// Table asigna a cada rol sus acciones permitidas.
type Table map[string][]Action

// DefaultTable owner puede todo; manager opera catálogo, ve facturación y métricas y entra en vista previa.
func DefaultTable() Table {
	return Table{
		entity.RoleOwner: AllActions(),
		entity.RoleManager: {
			KioskCreate, KioskUpdate, KioskDelete,
			SaladCreate, SaladUpdate, SaladDelete,
			BillingView, PreviewEnter, MetricsView,
		},
	}
}

// Policy tabla compilada para consulta O(1).
type Policy struct {
	grants map[string]map[Action]struct{}
}

// New compila la tabla. Acciones fuera de AllActions se ignoran.
func New(t Table) *Policy {
	known := make(map[Action]struct{}, len(AllActions()))
	for _, a := range AllActions() {
		known[a] = struct{}{}
	}
	p := &Policy{grants: make(map[string]map[Action]struct{}, len(t))}
	for role, actions := range t {
		set := make(map[Action]struct{}, len(actions))
		for _, a := range actions {
			if _, ok := known[a]; ok {
				set[a] = struct{}{}
			}
		}
		p.grants[role] = set
	}
	return p
}

// Default política con DefaultTable.
func Default() *Policy {
	return New(DefaultTable())
}

// Can informa si role puede ejecutar action. Rol o acción desconocidos: denegado.
func (p *Policy) Can(role string, action Action) bool {
	if p == nil {
		return false
	}
	set, ok := p.grants[role]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// CanUser aplica la política a un usuario. El super-admin obtiene los permisos de owner,
// siempre dentro de su propio tenant.
func (p *Policy) CanUser(u *entity.User, action Action) bool {
	if u == nil {
		return false
	}
	if u.IsSuperAdmin && p.Can(entity.RoleOwner, action) {
		return true
	}
	return p.Can(u.Role, action)
}

// Allowed lista las acciones permitidas para role, ordenadas.
func (p *Policy) Allowed(role string) []Action {
	if p == nil {
		return nil
	}
	out := make([]Action, 0, len(p.grants[role]))
	for a := range p.grants[role] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllowedFor lista las acciones permitidas para un usuario.
func (p *Policy) AllowedFor(u *entity.User) []Action {
	if u == nil {
		return nil
	}
	if u.IsSuperAdmin {
		return p.Allowed(entity.RoleOwner)
	}
	return p.Allowed(u.Role)
}
