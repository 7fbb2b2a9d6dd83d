package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/ordering"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

type orderReader interface {
	GetOrder(ctx context.Context, tenantID, id string) (*entity.Order, error)
}

// otpIssuer lo implementa *redis.OTPStore.
type otpIssuer interface {
	Issue(ctx context.Context, tenantID, phone string) (string, error)
}

// otpSender lo implementa *notify.LogNotifier.
type otpSender interface {
	OTPIssued(ctx context.Context, tenantID, phone, code string) error
}

// OrderHandler pedidos de clientes sobre el menú público de un restaurante.
type OrderHandler struct {
	creator ordering.Creator
	reader  orderReader
	tenants repository.TenantRepository
	otp     otpIssuer
	sender  otpSender
}

// NewOrderHandler construye el handler. creator ya viene decorado con la vista previa.
func NewOrderHandler(creator ordering.Creator, reader orderReader, tenants repository.TenantRepository, otp otpIssuer, sender otpSender) *OrderHandler {
	return &OrderHandler{creator: creator, reader: reader, tenants: tenants, otp: otp, sender: sender}
}

// RequestOTPRequest teléfono al que se envía el código de verificación.
type RequestOTPRequest struct {
	Phone string `json:"phone"`
}

// RequestOTP godoc
// @Summary      Enviar código de verificación al cliente
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "restaurante"
// @Param        body  body  http.RequestOTPRequest  true  "teléfono"
// @Success      202
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{tenantId}/otp [post]
func (h *OrderHandler) RequestOTP(c *fiber.Ctx) error {
	if h.otp == nil {
		return respondError(c, domain.ErrForbidden)
	}
	var in RequestOTPRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "phone es requerido"})
	}
	tenantID := c.Params("tenantId")
	t, err := h.tenants.GetByID(c.UserContext(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	if t == nil {
		return respondError(c, domain.ErrNotFound)
	}
	code, err := h.otp.Issue(c.UserContext(), tenantID, phone)
	if err != nil {
		return respondError(c, err)
	}
	if h.sender != nil {
		if err := h.sender.OTPIssued(c.UserContext(), tenantID, phone, code); err != nil {
			return respondError(c, err)
		}
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// PlaceOrder godoc
// @Summary      Crear un pedido
// @Description  Con X-Preview-Token y el bearer del admin el pedido queda marcado como prueba.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        tenantId  path  string  true  "restaurante"
// @Param        X-Preview-Token  header  string  false  "token de vista previa"
// @Param        body  body  dto.PlaceOrderRequest  true  "carrito"
// @Success      201  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{tenantId}/orders [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	// Los precios unitarios llegan del menú del cliente: el catálogo vive fuera de este servicio
	// y los pedidos no generan cobros aquí. El total siempre lo recalcula ordering.
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	order, err := h.creator.PlaceOrder(c.UserContext(), ordering.PlaceOrderCommand{
		TenantID:      c.Params("tenantId"),
		Items:         items,
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		OTPCode:       strings.TrimSpace(in.OTPCode),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

// GetOrder godoc
// @Summary      Estado de un pedido
// @Tags         orders
// @Produce      json
// @Param        tenantId  path  string  true  "restaurante"
// @Param        id        path  string  true  "pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{tenantId}/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.reader.GetOrder(c.UserContext(), c.Params("tenantId"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(order))
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	items := make([]dto.OrderItemRequest, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemRequest{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return dto.OrderResponse{
		ID:        o.ID,
		TenantID:  o.TenantID,
		Items:     items,
		Total:     o.Total,
		Status:    o.Status,
		IsTest:    o.IsTest,
		CreatedAt: o.CreatedAt,
	}
}
