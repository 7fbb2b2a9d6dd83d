// Package pdf genera el comprobante de pago de la suscripción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante          │  COMPROBANTE + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PLAN: Plan / Ciclo / Concepto                              │
//	│  PAGO: Método / Tarjeta / Referencia                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PAGADO                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR del id de pago + leyenda                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/restaurant-admin-api/internal/application/billing"
)

var _ appbilling.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var kindLabels = map[string]string{
	"subscription": "Suscripción",
	"setup_fee":    "Tarifa de alta",
	"renewal":      "Renovación",
}

var methodLabels = map[string]string{
	"card":   "Tarjeta",
	"manual": "Activación manual",
}

var cycleLabels = map[string]string{
	"monthly": "Mensual",
	"yearly":  "Anual",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se imprimen con el formato de lang.
func NewMarotoPDFGenerator(lang language.Tag) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(lang)}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, data appbilling.ReceiptData) ([]byte, error) {
	total, err := g.formatAmount(data.Amount, data.Currency)
	if err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago", true).
		WithAuthor(data.TenantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(planRow(data))
	m.AddRows(paymentRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// formatAmount imprime el monto con el símbolo de la moneda, p. ej. "TRY 349,00".
func (g *MarotoPDFGenerator) formatAmount(amount decimal.Decimal, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("pdf: moneda %q: %w", code, err)
	}
	return g.printer.Sprint(currency.Symbol(unit.Amount(amount.Round(2).InexactFloat64()))), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data appbilling.ReceiptData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.TenantName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Pago N° "+data.PaymentID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+data.PaidAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func planRow(data appbilling.ReceiptData) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PLAN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Plan: %s   |   Ciclo: %s   |   Concepto: %s",
				nonEmpty(data.Tier, "—"),
				label(cycleLabels, data.Cycle),
				label(kindLabels, data.Kind),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func paymentRow(data appbilling.ReceiptData) core.Row {
	card := "—"
	if data.CardLast4 != "" {
		card = "**** " + data.CardLast4
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Método: %s   |   Tarjeta: %s   |   Referencia: %s",
				label(methodLabels, data.Method),
				card,
				nonEmpty(data.Reference, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func totalRow(total string) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL PAGADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 3,
		})),
		col.New(3).Add(text.New(total, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 3,
		})),
	)
}

func footerRow(data appbilling.ReceiptData) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(data.PaymentID, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Conserve este comprobante. Para consultas sobre el cobro\nindique el número de pago o la referencia.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func label(labels map[string]string, key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return nonEmpty(key, "—")
}
