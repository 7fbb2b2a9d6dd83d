package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF de un pago confirmado.
type ReceiptUseCase struct {
	paymentRepo repository.PaymentRepository
	subRepo     repository.SubscriptionRepository
	generator   ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(paymentRepo repository.PaymentRepository, subRepo repository.SubscriptionRepository, generator ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{paymentRepo: paymentRepo, subRepo: subRepo, generator: generator}
}

// DownloadReceipt devuelve (pdfBytes, filename). Un pago de otro tenant responde ErrNotFound.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, tc *tenant.Context, paymentID string) ([]byte, string, error) {
	tenantID, err := tc.Authorize(authz.BillingView)
	if err != nil {
		return nil, "", err
	}
	p, err := uc.paymentRepo.GetByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener pago: %w", err)
	}
	if p == nil || p.TenantID != tenantID {
		return nil, "", domain.ErrNotFound
	}
	if p.Status != entity.PaymentStatusPaid {
		return nil, "", fmt.Errorf("%w: el pago está en estado %s", domain.ErrInvalidInput, p.Status)
	}

	data := ReceiptData{
		TenantName: tc.Tenant.Name,
		PaymentID:  p.ID,
		Kind:       p.Kind,
		Amount:     p.Amount,
		Currency:   p.Currency,
		Method:     p.Method,
		CardLast4:  p.CardLast4,
		Reference:  p.Reference,
		PaidAt:     p.CreatedAt,
	}
	if sub, err := uc.subRepo.GetCurrent(ctx, tenantID); err == nil && sub != nil {
		data.Tier = string(sub.Tier)
		data.Cycle = string(sub.BillingCycle)
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("recibo-%s.pdf", p.ID), nil
}
