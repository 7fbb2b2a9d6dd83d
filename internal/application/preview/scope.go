package preview

import (
	"context"
	"time"
)

// Scope vista previa activa de un admin sobre su propio restaurante.
// Vive solo en el context.Context del request; nunca en estado global.
type Scope struct {
	TenantID  string    `json:"tenant_id"`
	AdminID   string    `json:"admin_id"`
	ScopeID   string    `json:"scope_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type scopeKey struct{}

// WithScope devuelve ctx con el scope de vista previa.
func WithScope(ctx context.Context, s *Scope) context.Context {
	if s == nil {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext obtiene el scope, si el request está en vista previa.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(*Scope)
	return s, ok && s != nil
}

// Store liveness de los scopes. Salir de la vista previa borra la clave; el TTL cubre el abandono.
type Store interface {
	Save(ctx context.Context, s Scope, ttl time.Duration) error
	// Get devuelve (nil, nil) si el scope no existe o expiró.
	Get(ctx context.Context, scopeID string) (*Scope, error)
	Delete(ctx context.Context, scopeID string) error
}

// Metrics contadores del modo vista previa.
type Metrics interface {
	Entered()
	Exited()
	OrderTagged()
}

// NopMetrics no registra nada.
type NopMetrics struct{}

func (NopMetrics) Entered()     {}
func (NopMetrics) Exited()      {}
func (NopMetrics) OrderTagged() {}
