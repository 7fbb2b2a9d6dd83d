// Package tenant resuelve la identidad del admin autenticado: usuario, rol y restaurante.
// Todo lo que lee o escribe datos de un tenant parte de un *Context resuelto aquí, nunca de un
// identificador enviado por el cliente.
package tenant

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// Context identidad resuelta de un request.
type Context struct {
	User   *entity.User
	Tenant *entity.Tenant // nil si el admin no tiene restaurante resoluble
	policy *authz.Policy
}

// NewContext construye un Context ya resuelto (tests y colaboradores internos).
func NewContext(user *entity.User, t *entity.Tenant, policy *authz.Policy) *Context {
	return &Context{User: user, Tenant: t, policy: policy}
}

// UserID id del admin.
func (c *Context) UserID() string {
	if c == nil || c.User == nil {
		return ""
	}
	return c.User.ID
}

// Role rol persistido del admin.
func (c *Context) Role() string {
	if c == nil || c.User == nil {
		return ""
	}
	return c.User.Role
}

// HasTenant indica si hay restaurante resuelto.
func (c *Context) HasTenant() bool {
	return c != nil && c.Tenant != nil && c.Tenant.ID != ""
}

// TenantID id del restaurante, vacío si no hay.
func (c *Context) TenantID() string {
	if !c.HasTenant() {
		return ""
	}
	return c.Tenant.ID
}

// Can consulta la política para el admin.
func (c *Context) Can(action authz.Action) bool {
	if c == nil {
		return false
	}
	return c.policy.CanUser(c.User, action)
}

// Allowed acciones permitidas para el admin.
func (c *Context) Allowed() []authz.Action {
	if c == nil {
		return nil
	}
	return c.policy.AllowedFor(c.User)
}

// Require devuelve ErrAuthorizationDenied si el rol no permite action.
func (c *Context) Require(action authz.Action) error {
	if !c.Can(action) {
		return fmt.Errorf("%w: %s", domain.ErrAuthorizationDenied, action)
	}
	return nil
}

// RequireTenant devuelve el tenant o ErrTenantRequired.
func (c *Context) RequireTenant() (string, error) {
	if !c.HasTenant() {
		return "", domain.ErrTenantRequired
	}
	return c.Tenant.ID, nil
}

// Authorize combina Require y RequireTenant.
func (c *Context) Authorize(action authz.Action) (string, error) {
	if err := c.Require(action); err != nil {
		return "", err
	}
	return c.RequireTenant()
}

// Resolver carga {usuario, rol, tenant} a partir de la identidad del token.
type Resolver struct {
	users   repository.UserRepository
	tenants repository.TenantRepository
	policy  *authz.Policy
	log     zerolog.Logger
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository, tenants repository.TenantRepository, policy *authz.Policy, log zerolog.Logger) *Resolver {
	if policy == nil {
		policy = authz.Default()
	}
	return &Resolver{users: users, tenants: tenants, policy: policy, log: log}
}

// Policy política con la que se construyen los Context.
func (r *Resolver) Policy() *authz.Policy {
	return r.policy
}

// Resolve devuelve el Context del admin userID. El rol sale del registro persistido; el
// tenant del token debe coincidir con el del usuario o el request se rechaza.
func (r *Resolver) Resolve(ctx context.Context, userID, tokenTenantID string) (*Context, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolver usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	if tokenTenantID != user.TenantID {
		r.log.Warn().
			Str("user_id", user.ID).
			Str("token_tenant_id", tokenTenantID).
			Str("tenant_id", user.TenantID).
			Msg("tenant del token no coincide con el del usuario")
		return nil, domain.ErrUnauthorized
	}

	tc := &Context{User: user, policy: r.policy}
	if user.TenantID == "" {
		return tc, nil
	}
	t, err := r.tenants.GetByID(ctx, user.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolver tenant: %w", err)
	}
	if t == nil {
		r.log.Warn().Str("user_id", user.ID).Str("tenant_id", user.TenantID).Msg("tenant del usuario no existe")
		return tc, nil
	}
	tc.Tenant = t
	return tc, nil
}
