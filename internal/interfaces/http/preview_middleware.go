package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-admin-api/internal/application/preview"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
)

// PreviewTokenHeader header con el token devuelto por /api/preview/enter.
const PreviewTokenHeader = "X-Preview-Token"

type previewResolver interface {
	Resolve(ctx context.Context, token string, tc *tenant.Context) (*preview.Scope, error)
}

// PreviewScope en rutas públicas de pedidos: si llega X-Preview-Token exige además el bearer del
// admin y deja el preview.Scope en el UserContext del request. Sin header el request sigue igual.
func PreviewScope(jwtSecret string, resolver tenantResolver, guard previewResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(PreviewTokenHeader)
		if token == "" {
			return c.Next()
		}
		tc, err := authenticate(c, jwtSecret, resolver)
		if tc == nil {
			return err
		}
		scope, err := guard.Resolve(c.UserContext(), token, tc)
		if err != nil {
			return respondError(c, err)
		}
		c.SetUserContext(preview.WithScope(c.UserContext(), scope))
		return c.Next()
	}
}
