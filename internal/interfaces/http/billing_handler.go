package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// subscriptionService lo implementa *billing.SubscriptionUseCase.
type subscriptionService interface {
	GetBillingSnapshot(ctx context.Context, tc *tenant.Context) (*dto.BillingSnapshotResponse, error)
	ActivateSubscriptionManually(ctx context.Context, tc *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.SubscriptionResponse, error)
	Cancel(ctx context.Context, tc *tenant.Context) (*dto.SubscriptionResponse, error)
	Reactivate(ctx context.Context, tc *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.SubscriptionResponse, error)
}

// sessionCreator lo implementa *billing.PaymentSessionUseCase.
type sessionCreator interface {
	CreateSession(ctx context.Context, tc *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.PaymentSessionResponse, error)
	ManualActivationAvailable() bool
}

// receiptService lo implementa *billing.ReceiptUseCase.
type receiptService interface {
	DownloadReceipt(ctx context.Context, tc *tenant.Context, paymentID string) ([]byte, string, error)
}

// BillingHandler endpoints de facturación del panel.
type BillingHandler struct {
	subs     subscriptionService
	sessions sessionCreator
	receipts receiptService
}

// NewBillingHandler construye el handler.
func NewBillingHandler(subs subscriptionService, sessions sessionCreator, receipts receiptService) *BillingHandler {
	return &BillingHandler{subs: subs, sessions: sessions, receipts: receipts}
}

// Snapshot godoc
// @Summary      Estado de facturación del restaurante
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BillingSnapshotResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/billing/snapshot [get]
func (h *BillingHandler) Snapshot(c *fiber.Ctx) error {
	out, err := h.subs.GetBillingSnapshot(c.UserContext(), GetTenantContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreatePaymentSession godoc
// @Summary      Iniciar el pago de un plan
// @Description  Con pasarela devuelve redirect_url; sin pasarela gateway_configured=false.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PlanRequest  true  "tier y billing_cycle"
// @Success      201  {object}  dto.PaymentSessionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.RetryableErrorResponse
// @Router       /api/billing/payment-session [post]
func (h *BillingHandler) CreatePaymentSession(c *fiber.Ctx) error {
	tier, cycle, ok := parsePlan(c)
	if !ok {
		return badBody(c)
	}
	out, err := h.sessions.CreateSession(c.UserContext(), GetTenantContext(c), tier, cycle)
	if err != nil {
		if errors.Is(err, domain.ErrGatewayUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.RetryableErrorResponse{
				Code:                      "GATEWAY_UNAVAILABLE",
				Message:                   "la pasarela de pago no respondió, reintente",
				Retryable:                 true,
				ManualActivationAvailable: h.sessions.ManualActivationAvailable(),
			})
		}
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ActivateManually godoc
// @Summary      Activar la suscripción sin cobro
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PlanRequest  true  "tier y billing_cycle"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billing/activate-manually [post]
func (h *BillingHandler) ActivateManually(c *fiber.Ctx) error {
	tier, cycle, ok := parsePlan(c)
	if !ok {
		return badBody(c)
	}
	out, err := h.subs.ActivateSubscriptionManually(c.UserContext(), GetTenantContext(c), tier, cycle)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar la suscripción
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billing/cancel [post]
func (h *BillingHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.subs.Cancel(c.UserContext(), GetTenantContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reactivate godoc
// @Summary      Reactivar una suscripción cancelada
// @Tags         billing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PlanRequest  true  "tier y billing_cycle"
// @Success      201  {object}  dto.SubscriptionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/billing/reactivate [post]
func (h *BillingHandler) Reactivate(c *fiber.Ctx) error {
	tier, cycle, ok := parsePlan(c)
	if !ok {
		return badBody(c)
	}
	out, err := h.subs.Reactivate(c.UserContext(), GetTenantContext(c), tier, cycle)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receipt godoc
// @Summary      Descargar el comprobante PDF de un pago
// @Tags         billing
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "id del pago"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/payments/{id}/receipt [get]
func (h *BillingHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.receipts.DownloadReceipt(c.UserContext(), GetTenantContext(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// parsePlan lee dto.PlanRequest. Los valores se validan en el caso de uso.
func parsePlan(c *fiber.Ctx) (entity.Tier, entity.BillingCycle, bool) {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return "", "", false
	}
	return entity.Tier(in.Tier), entity.BillingCycle(in.BillingCycle), true
}
