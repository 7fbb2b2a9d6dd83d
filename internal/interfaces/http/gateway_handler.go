package http

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// SignatureHeader header con el HMAC-SHA256 hex del cuerpo del webhook.
const SignatureHeader = "X-Gateway-Signature"

// callbackReconciler lo implementa *billing.PaymentSessionUseCase.
type callbackReconciler interface {
	ReconcileCallback(ctx context.Context, token, outcome string) (*billing.ReconcileResult, error)
}

// renewalHandler lo implementa *billing.WebhookUseCase.
type renewalHandler interface {
	HandleRenewal(ctx context.Context, payload []byte, signature string) (*dto.WebhookResponse, error)
}

// GatewayHandler retornos del navegador desde la pasarela y webhook de renovaciones.
// Son rutas públicas: la autenticidad sale de la verificación con la pasarela o de la firma.
type GatewayHandler struct {
	sessions    callbackReconciler
	webhooks    renewalHandler
	frontendURL string
	log         zerolog.Logger
}

// NewGatewayHandler construye el handler. frontendURL es la pantalla de facturación del panel.
func NewGatewayHandler(sessions callbackReconciler, webhooks renewalHandler, frontendURL string, log zerolog.Logger) *GatewayHandler {
	return &GatewayHandler{sessions: sessions, webhooks: webhooks, frontendURL: frontendURL, log: log}
}

// Success godoc
// @Summary      Retorno de la pasarela tras un pago aprobado
// @Tags         gateway
// @Produce      json
// @Param        token  query  string  true  "token de la sesión"
// @Success      200  {object}  dto.ReconcileResponse
// @Success      303
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billing/gateway/success [get]
func (h *GatewayHandler) Success(c *fiber.Ctx) error {
	return h.reconcile(c, string(entity.OutcomeApproved))
}

// Error godoc
// @Summary      Retorno de la pasarela tras un pago no aprobado
// @Tags         gateway
// @Produce      json
// @Param        token   query  string  true   "token de la sesión"
// @Param        reason  query  string  false  "código de motivo de la pasarela"
// @Success      200  {object}  dto.ReconcileResponse
// @Success      303
// @Router       /api/billing/gateway/error [get]
func (h *GatewayHandler) Error(c *fiber.Ctx) error {
	reason := strings.TrimSpace(c.Query("reason"))
	// La ruta de error nunca aprueba, aunque el query diga lo contrario.
	if reason == "" || strings.EqualFold(reason, string(entity.OutcomeApproved)) {
		reason = string(entity.OutcomeDeclined)
	}
	return h.reconcile(c, reason)
}

func (h *GatewayHandler) reconcile(c *fiber.Ctx, outcome string) error {
	token := c.Query("token")
	res, err := h.sessions.ReconcileCallback(c.UserContext(), token, outcome)
	if wantsJSON(c) {
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(toReconcileResponse(res))
	}

	if err != nil {
		h.log.Warn().Err(err).Str("session_token", token).Msg("retorno de pasarela no conciliado")
		return c.Redirect(h.redirectURL("error", callbackErrorReason(err)), fiber.StatusSeeOther)
	}
	out := toReconcileResponse(res)
	return c.Redirect(h.redirectURL(out.Status, out.Reason), fiber.StatusSeeOther)
}

// Webhook godoc
// @Summary      Evento de renovación firmado por la pasarela
// @Tags         gateway
// @Accept       json
// @Produce      json
// @Param        X-Gateway-Signature  header  string  true  "HMAC-SHA256 hex del cuerpo"
// @Param        body  body  dto.GatewayWebhookRequest  true  "evento"
// @Success      200  {object}  dto.WebhookResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billing/gateway/webhook [post]
func (h *GatewayHandler) Webhook(c *fiber.Ctx) error {
	// Body() apunta al buffer de fasthttp; se copia porque el caso de uso lo conserva más allá del handler.
	payload := append([]byte(nil), c.Body()...)
	out, err := h.webhooks.HandleRenewal(c.UserContext(), payload, c.Get(SignatureHeader))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func toReconcileResponse(res *billing.ReconcileResult) dto.ReconcileResponse {
	if res.Success() {
		return dto.ReconcileResponse{Status: "success", Replayed: res.Replayed}
	}
	return dto.ReconcileResponse{Status: "error", Reason: res.Reason, Replayed: res.Replayed}
}

// redirectURL agrega status y reason al query de la pantalla de facturación.
func (h *GatewayHandler) redirectURL(status, reason string) string {
	u, err := url.Parse(h.frontendURL)
	if err != nil || h.frontendURL == "" {
		u = &url.URL{Path: "/settings/billing"}
	}
	q := u.Query()
	q.Set("status", status)
	if reason != "" {
		q.Set("reason", reason)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func callbackErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, domain.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, domain.ErrSessionOutcomeConflict), errors.Is(err, domain.ErrSessionAlreadyTerminal):
		return "session_conflict"
	case errors.Is(err, domain.ErrGatewayUnavailable):
		return "gateway_unavailable"
	default:
		return "internal"
	}
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
