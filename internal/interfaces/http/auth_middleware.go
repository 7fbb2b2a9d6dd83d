package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID    = "user_id"
	LocalTenantCtx = "tenant_ctx"
)

// tenantResolver lo implementa *tenant.Resolver.
type tenantResolver interface {
	Resolve(ctx context.Context, userID, tokenTenantID string) (*tenant.Context, error)
}

// bearerToken extrae el token del header Authorization. ok=false si falta; code describe el problema.
func bearerToken(c *fiber.Ctx) (token, code string, ok bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "MISSING_TOKEN", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", false
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", false
	}
	return token, "", true
}

// authenticate valida el token de acceso y resuelve el tenant.Context del admin.
func authenticate(c *fiber.Ctx, jwtSecret string, resolver tenantResolver) (*tenant.Context, error) {
	token, code, ok := bearerToken(c)
	if !ok {
		msg := "Authorization header requerido"
		if code == "INVALID_TOKEN" {
			msg = "formato: Bearer <token>"
		}
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
	userID, tenantID, _, err := jwt.Parse(jwtSecret, token)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
	}
	tc, err := resolver.Resolve(c.UserContext(), userID, tenantID)
	if err != nil {
		return nil, respondError(c, err)
	}
	c.Locals(LocalUserID, userID)
	c.Locals(LocalTenantCtx, tc)
	return tc, nil
}

// AuthMiddleware valida el Bearer Token JWT y deja el tenant.Context resuelto en c.Locals.
// El rol y el restaurante salen del registro persistido, no de los claims.
func AuthMiddleware(jwtSecret string, resolver tenantResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc, err := authenticate(c, jwtSecret, resolver)
		if tc == nil {
			return err
		}
		return c.Next()
	}
}

// RequireAction corta con 403 si el rol del admin no permite action. Va después de AuthMiddleware.
func RequireAction(action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tc := GetTenantContext(c)
		if tc == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no resuelta"})
		}
		if !tc.Can(action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "AUTHORIZATION_DENIED",
				Message: "el rol '" + tc.Role() + "' no permite " + string(action),
			})
		}
		return c.Next()
	}
}

// GetTenantContext devuelve el contexto resuelto por AuthMiddleware, o nil.
func GetTenantContext(c *fiber.Ctx) *tenant.Context {
	tc, _ := c.Locals(LocalTenantCtx).(*tenant.Context)
	return tc
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole rol persistido del admin autenticado.
func GetRole(c *fiber.Ctx) string {
	return GetTenantContext(c).Role()
}
