package preview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/pkg/jwt"
)

// RemediationPath pantalla donde el admin asocia su restaurante.
const RemediationPath = "/settings/restaurant"

// Guard entrada, salida y validación del modo vista previa.
type Guard struct {
	store   Store
	secret  string
	issuer  string
	ttl     time.Duration
	metrics Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewGuard construye el guard. secret es el mismo JWT_SECRET de los tokens de acceso;
// los tokens de vista previa llevan typ=preview y no sirven como acceso.
func NewGuard(store Store, secret, issuer string, ttl time.Duration, metrics Metrics, log zerolog.Logger) *Guard {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	return &Guard{store: store, secret: secret, issuer: issuer, ttl: ttl, metrics: metrics, log: log, now: time.Now}
}

// SetClock reemplaza el reloj (tests).
func (g *Guard) SetClock(now func() time.Time) { g.now = now }

// Enter abre la vista previa sobre el restaurante del admin autenticado. Sin restaurante
// asociado devuelve ErrUntenantedPreview y no se crea nada.
func (g *Guard) Enter(ctx context.Context, tc *tenant.Context) (*dto.PreviewEnterResponse, error) {
	if err := tc.Require(authz.PreviewEnter); err != nil {
		return nil, err
	}
	tenantID, err := tc.RequireTenant()
	if err != nil {
		g.log.Warn().Str("user_id", tc.UserID()).Msg("vista previa sin restaurante asociado")
		return nil, domain.ErrUntenantedPreview
	}

	scope := Scope{
		TenantID:  tenantID,
		AdminID:   tc.UserID(),
		ScopeID:   uuid.New().String(),
		ExpiresAt: g.now().Add(g.ttl),
	}
	token, err := jwt.GeneratePreview(g.secret, scope.ScopeID, scope.AdminID, scope.TenantID, g.issuer, scope.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("firmar token de vista previa: %w", err)
	}
	if err := g.store.Save(ctx, scope, g.ttl); err != nil {
		return nil, fmt.Errorf("guardar vista previa: %w", err)
	}
	g.metrics.Entered()
	g.log.Info().
		Str("tenant_id", scope.TenantID).
		Str("user_id", scope.AdminID).
		Str("scope_id", scope.ScopeID).
		Msg("vista previa iniciada")

	return &dto.PreviewEnterResponse{PreviewToken: token, TenantID: tenantID, ExpiresAt: scope.ExpiresAt}, nil
}

// Exit cierra la vista previa y devuelve el restaurante propio del admin como contexto canónico.
// Un token vencido o ajeno no impide salir: el flag ya no aplica.
func (g *Guard) Exit(ctx context.Context, tc *tenant.Context, token string) (*dto.PreviewExitResponse, error) {
	if tc == nil || tc.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if token != "" {
		claims, err := jwt.ParsePreview(g.secret, token)
		if err == nil && claims.AdminID == tc.UserID() {
			if err := g.store.Delete(ctx, claims.ID); err != nil {
				return nil, fmt.Errorf("cerrar vista previa: %w", err)
			}
			g.metrics.Exited()
			g.log.Info().Str("user_id", claims.AdminID).Str("scope_id", claims.ID).Msg("vista previa cerrada")
		}
	}
	return &dto.PreviewExitResponse{TenantID: tc.TenantID()}, nil
}

// Resolve valida token para el admin autenticado y devuelve el scope a poner en el contexto.
// Exige firma válida, clave viva y que admin y restaurante coincidan con el token.
func (g *Guard) Resolve(ctx context.Context, token string, tc *tenant.Context) (*Scope, error) {
	if tc == nil || tc.User == nil {
		return nil, domain.ErrUnauthorized
	}
	claims, err := jwt.ParsePreview(g.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: token de vista previa inválido", domain.ErrUnauthorized)
	}
	if claims.AdminID != tc.UserID() || claims.TenantID == "" || claims.TenantID != tc.TenantID() {
		g.log.Warn().
			Str("user_id", tc.UserID()).
			Str("token_tenant_id", claims.TenantID).
			Msg("token de vista previa de otro admin o restaurante")
		return nil, domain.ErrForbidden
	}
	stored, err := g.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("obtener vista previa: %w", err)
	}
	if stored == nil || stored.TenantID != claims.TenantID || stored.AdminID != claims.AdminID {
		return nil, fmt.Errorf("%w: la vista previa ya fue cerrada", domain.ErrUnauthorized)
	}
	return stored, nil
}

// IsUntenanted ayuda a la capa HTTP a elegir la respuesta de remediación.
func IsUntenanted(err error) bool {
	return errors.Is(err, domain.ErrUntenantedPreview)
}
