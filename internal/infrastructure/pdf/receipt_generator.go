// Package pdf renderiza o recibo de venda em PDF (A5, uma página).
//
// Layout:
//
//	┌─────────────────────────────────────────────┐
//	│  AURORA FOLHEADOS      │  Nº venda + data   │
//	│  ─────────────────────────────────────────  │
//	│  CLIENTE: nome                              │
//	│  TABELA: Qtd | Peça | SKU | P.Unit | Total  │
//	│  ─────────────────────────────────────────  │
//	│  Subtotal / Desconto à vista / Crédito      │
//	│  TOTAL PAGO + forma de pagamento            │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	appsales "github.com/aurora-folheados/aurora-api/internal/application/sales"
	"github.com/aurora-folheados/aurora-api/internal/domain/entity"
)

var (
	colorGold = &props.Color{Red: 158, Green: 122, Blue: 40}
	colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appsales.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator constrói o gerador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// Generate renderiza o recibo e devolve os bytes do PDF.
func (g *ReceiptGenerator) Generate(data appsales.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venda", true).
		WithAuthor("Aurora Folheados", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGold, Thickness: 0.5}))
	if data.CustomerName != "" {
		m.AddRows(customerRow(data.CustomerName))
	}

	m.AddRows(tableHeaderRow())
	for _, r := range itemRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGold, Thickness: 0.3}))
	m.AddRows(totalsRow(data.Sale))
	m.AddRows(footerRow(data.Sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: marca à esquerda, número curto da venda e data à direita.
func headerRow(sale *entity.Sale) core.Row {
	shortID := sale.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("AURORA FOLHEADOS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorGold, Top: 1,
			}),
			text.New("Semijoias folheadas a ouro", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGold, Top: 1,
			}),
			text.New("Nº "+strings.ToUpper(shortID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func customerRow(name string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Cliente: "+name, props.Text{Size: 9, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd", 1, align.Center),
		h("Peça", 5, align.Left),
		h("SKU", 2, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func itemRows(lines []appsales.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				l.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				formatBRL(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				formatBRL(l.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: subtotal, desconto à vista, crédito e o total cobrado.
func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	labels := []core.Component{label("Subtotal:")}
	values := []core.Component{value(formatBRL(sale.Subtotal))}
	if !sale.Discount.IsZero() {
		labels = append(labels, label("Desconto à vista:"))
		values = append(values, value("-"+formatBRL(sale.Discount)))
	}
	if !sale.AppliedCredit.IsZero() {
		labels = append(labels, label("Crédito aplicado:"))
		values = append(values, value("-"+formatBRL(sale.AppliedCredit)))
	}
	labels = append(labels, text.New("TOTAL PAGO:", props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorGold, Right: 2,
	}))
	values = append(values, text.New(formatBRL(sale.Total), props.Text{
		Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorGold, Right: 1,
	}))

	return row.New(24).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

func footerRow(sale *entity.Sale) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Forma de pagamento: %s   |   Situação: %s",
			paymentLabel(sale.PaymentMethod), statusLabel(sale.Status),
		), props.Text{Size: 8, Top: 3, Color: colorGray}),
	))
}

func paymentLabel(method string) string {
	switch method {
	case entity.PaymentMethodPIX:
		return "Pix"
	case entity.PaymentMethodCard:
		return "Cartão"
	case entity.PaymentMethodCash:
		return "Dinheiro"
	case entity.PaymentMethodInstallment:
		return "Parcelado"
	}
	return method
}

func statusLabel(status string) string {
	switch status {
	case entity.SaleStatusCompleted:
		return "Paga"
	case entity.SaleStatusPending:
		return "Aguardando pagamento"
	case entity.SaleStatusCancelled:
		return "Cancelada"
	}
	return status
}

// formatBRL formata o valor em reais: "R$ 1.234,56".
func formatBRL(v decimal.Decimal) string {
	s := v.StringFixed(2) // "-1234.56"
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}
	out := "R$ " + string(buf) + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
