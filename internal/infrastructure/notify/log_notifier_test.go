package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+********2233", MaskPhone("+905551112233"))
	assert.Equal(t, "1234", MaskPhone("1234"))
	assert.Equal(t, "", MaskPhone(""))
}

func TestOrderPlaced_NoExponeTelefono(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	err := n.OrderPlaced(context.Background(), &entity.Order{
		ID:            "o-1",
		TenantID:      "t-1",
		CustomerPhone: "+905551112233",
		Total:         decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"order_id":"o-1"`)
	assert.Contains(t, buf.String(), `"total":"60.00"`)
	assert.NotContains(t, buf.String(), "905551112233")
}

func TestOTPIssued_CodigoSoloEnDebug(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf).Level(zerolog.InfoLevel))

	require.NoError(t, n.OTPIssued(context.Background(), "t-1", "+905551112233", "123456"))
	assert.Contains(t, buf.String(), "código de verificación enviado")
	assert.NotContains(t, buf.String(), "123456")
}
