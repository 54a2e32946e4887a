// Package pdf genera el comprobante de pago de una transacción verificada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app     │  N° Transacción + Fecha      │
//	│  PAGADOR: Nombre / Email / Tel                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Detalle | Monto                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL PAGADO                                               │
//	│  FOOTER: QR con la referencia + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 18, Green: 83, Blue: 61}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.ReceiptRenderer = (*ReceiptRenderer)(nil)

// ReceiptRenderer comprobantes con Maroto v2.
type ReceiptRenderer struct {
	issuer string
}

// NewReceiptRenderer issuer es el nombre que encabeza el comprobante.
func NewReceiptRenderer(issuer string) *ReceiptRenderer {
	if issuer == "" {
		issuer = "DataCapture"
	}
	return &ReceiptRenderer{issuer: issuer}
}

type receiptLine struct {
	concept string
	detail  string
	amount  decimal.Decimal
}

func (g *ReceiptRenderer) RenderReceipt(_ context.Context, tx *entity.PaymentTransaction) ([]byte, error) {
	if tx == nil {
		return nil, fmt.Errorf("pdf: transacción nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payment receipt "+tx.TransactionID, true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.headerRow(tx))
	m.AddRows(payerRow(tx.Payer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range lineRows(receiptLines(tx), tx.Currency) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(tx))
	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(tx))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// receiptLines una línea por paquete y por ubicación del desglose.
func receiptLines(tx *entity.PaymentTransaction) []receiptLine {
	var out []receiptLine
	b := tx.Breakdown
	if b.PackageAmount.IsPositive() {
		detail := tx.PackageID
		if tx.Duration != "" {
			detail += " (" + tx.Duration + ")"
		}
		out = append(out, receiptLine{concept: "Subscription package", detail: detail, amount: b.PackageAmount})
	}
	for _, l := range b.Locations {
		out = append(out, receiptLine{
			concept: "Location verification",
			detail:  strings.TrimSpace(fmt.Sprintf("%s - %s, %s", l.LocationType, l.CityRegion, l.City)),
			amount:  l.Fee,
		})
	}
	if len(out) == 0 {
		out = append(out, receiptLine{concept: nonEmpty(tx.Description, "Payment"), amount: tx.Amount})
	}
	return out
}

func (g *ReceiptRenderer) headerRow(tx *entity.PaymentTransaction) core.Row {
	date := tx.CreatedAt
	if tx.VerifiedAt != nil {
		date = *tx.VerifiedAt
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.issuer, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Organization: "+tx.OrganizationID, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PAYMENT RECEIPT", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(tx.TransactionID, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7}),
			text.New("Date: "+date.Format("02 Jan 2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func payerRow(p entity.Payer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PAID BY", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(p.Name, "-"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Phone: %s", nonEmpty(p.Email, "-"), nonEmpty(p.Phone, "-")),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 4, align.Left),
		h("Details", 5, align.Left),
		h("Amount", 3, align.Right),
	)
}

func lineRows(lines []receiptLine, currency string) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(4).Add(text.New(l.concept, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(l.detail, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(formatMoney(l.amount, currency), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(tx *entity.PaymentTransaction) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL PAID:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(tx.Amount, tx.Currency), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(tx *entity.PaymentTransaction) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(tx.TransactionID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Status: "+strings.ToUpper(tx.Status), props.Text{Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3}),
			text.New("Quote the transaction reference above in any enquiry about this payment.",
				props.Text{Size: 8, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney "NGN 1,250,000.50".
func formatMoney(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "." + frac
	if neg {
		out = "-" + out
	}
	if currency != "" {
		out = currency + " " + out
	}
	return out
}
