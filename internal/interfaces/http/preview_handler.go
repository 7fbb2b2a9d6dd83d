package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
)

// previewService lo implementa *preview.Guard.
type previewService interface {
	Enter(ctx context.Context, tc *tenant.Context) (*dto.PreviewEnterResponse, error)
	Exit(ctx context.Context, tc *tenant.Context, token string) (*dto.PreviewExitResponse, error)
}

// PreviewHandler entrada y salida del modo vista previa.
type PreviewHandler struct {
	guard previewService
}

// NewPreviewHandler construye el handler.
func NewPreviewHandler(guard previewService) *PreviewHandler {
	return &PreviewHandler{guard: guard}
}

// Enter godoc
// @Summary      Entrar en vista previa del propio restaurante
// @Tags         preview
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PreviewEnterResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.RemediationErrorResponse
// @Router       /api/preview/enter [post]
func (h *PreviewHandler) Enter(c *fiber.Ctx) error {
	out, err := h.guard.Enter(c.UserContext(), GetTenantContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Exit godoc
// @Summary      Salir de la vista previa
// @Description  El token puede ir en el cuerpo o en X-Preview-Token. Devuelve el restaurante del admin.
// @Tags         preview
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PreviewExitRequest  false  "token"
// @Success      200  {object}  dto.PreviewExitResponse
// @Router       /api/preview/exit [post]
func (h *PreviewHandler) Exit(c *fiber.Ctx) error {
	var in dto.PreviewExitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	token := in.PreviewToken
	if token == "" {
		token = c.Get(PreviewTokenHeader)
	}
	out, err := h.guard.Exit(c.UserContext(), GetTenantContext(c), token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
