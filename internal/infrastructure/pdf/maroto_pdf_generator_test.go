package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	appbilling "github.com/jhoicas/restaurant-admin-api/internal/application/billing"
)

func TestGenerateReceiptPDF_OK(t *testing.T) {
	g := NewMarotoPDFGenerator(language.Spanish)
	out, err := g.GenerateReceiptPDF(context.Background(), appbilling.ReceiptData{
		TenantName: "La Esquina",
		PaymentID:  "5d1f6a1e-8a43-4b8e-9d55-0c1c1f6f9a10",
		Kind:       "subscription",
		Amount:     decimal.NewFromInt(99),
		Currency:   "TRY",
		Method:     "card",
		CardLast4:  "4242",
		Reference:  "tok-1",
		Tier:       "basic",
		Cycle:      "monthly",
		PaidAt:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateReceiptPDF_MonedaInvalida(t *testing.T) {
	g := NewMarotoPDFGenerator(language.Spanish)
	_, err := g.GenerateReceiptPDF(context.Background(), appbilling.ReceiptData{
		TenantName: "La Esquina",
		PaymentID:  "p-1",
		Amount:     decimal.NewFromInt(99),
		Currency:   "XXXX",
	})
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	g := NewMarotoPDFGenerator(language.English)
	s, err := g.formatAmount(decimal.RequireFromString("349.5"), "TRY")
	require.NoError(t, err)
	assert.Contains(t, s, "349.50")
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Renovación", label(kindLabels, "renewal"))
	assert.Equal(t, "otro", label(kindLabels, "otro"))
	assert.Equal(t, "—", label(kindLabels, ""))
}
