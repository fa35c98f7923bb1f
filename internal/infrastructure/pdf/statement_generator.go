// Package pdf genera el estado de cuenta de transacciones de un mayorista.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Estado de cuenta + mayorista │ Fecha de emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Distribuidor | Artículo | Cant | Total | Pago │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pendiente / Pagado / Total                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/agrochain-api/internal/application/supply"
	"github.com/jhoicas/agrochain-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 110, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDue     = &props.Color{Red: 180, Green: 60, Blue: 40}
)

var _ supply.StatementGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implementa supply.StatementGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatement genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatement(_ context.Context, st *supply.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Statement "+st.WholesalerID.String(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(st.Transactions) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No transactions", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableRows(st.Transactions) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(st *supply.Statement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("TRANSACTION STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Wholesaler: "+st.WholesalerID.String(), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("%d transactions", len(st.Transactions)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Issued: "+st.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
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
		h("Date", 2, align.Left),
		h("Dealer", 3, align.Left),
		h("Item", 3, align.Left),
		h("Qty", 1, align.Right),
		h("Total", 2, align.Right),
		h("Payment", 1, align.Center),
	)
}

func tableRows(txns []*entity.Transaction) []core.Row {
	result := make([]core.Row, 0, len(txns))
	for _, t := range txns {
		statusColor := colorGray
		if t.PaymentStatus == entity.PaymentDue {
			statusColor = colorDue
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(t.Date.Format("2006-01-02"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(t.DealerID.String()+" "+t.DealerEmail, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(t.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(t.Quantity.String()+" "+t.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(t.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(string(t.PaymentStatus), props.Text{Size: 8, Align: align.Center, Top: 1, Color: statusColor})),
		))
	}
	return result
}

func totalsRow(st *supply.Statement) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Due:"),
			label("Paid:"),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(formatMoney(st.TotalDue)),
			value(formatMoney(st.TotalPaid)),
			text.New(formatMoney(st.TotalDue.Add(st.TotalPaid)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// formatMoney redondea a 2 decimales e inserta comas de miles: 1234567.5 → "1,234,567.50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf) + frac
}
