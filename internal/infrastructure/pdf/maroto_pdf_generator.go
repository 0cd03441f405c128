// Package pdf implementa el reporte PDF del dashboard.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio  │  Período + filtros            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Ingresos | Margen | Tickets | Ticket medio            │
//	│        Gastos | Resultado estimado                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP PRODUCTOS │ MEDIOS DE PAGO │ GASTOS POR CATEGORÍA       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK BAJO: Producto | Categoría | Stock | Mínimo           │
//	│  FOOTER: fecha de generación                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// maxTableRows filas por tabla para que el reporte quepa en una página.
const maxTableRows = 10

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	format *analytics.MoneyFormatter
	now    func() time.Time
}

// NewMarotoPDFGenerator construye el generador. format es el mismo que usa el resumen,
// así los importes de las tablas coinciden con los textos de los KPIs.
func NewMarotoPDFGenerator(format *analytics.MoneyFormatter) *MarotoPDFGenerator {
	if format == nil {
		format = analytics.NewMoneyFormatter("es", "")
	}
	return &MarotoPDFGenerator{format: format, now: time.Now}
}

// GenerateReportPDF genera el PDF del resumen y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReportPDF(_ context.Context, s *dto.DashboardSummaryDTO) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: resumen nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte "+s.BusinessName, true).
		WithAuthor(s.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRows(s)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitlesRow("TOP PRODUCTOS", "MEDIOS DE PAGO", "GASTOS POR CATEGORÍA"))
	m.AddRows(g.breakdownRows(s)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(lowStockRows(s.LowStock)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio (izq) y período + filtros (der).
func headerRow(s *dto.DashboardSummaryDTO) core.Row {
	period := fmt.Sprintf("%s al %s", s.Filter.Period.StartDate, s.Filter.Period.EndDate)
	filters := fmt.Sprintf("Categoría: %s   |   Pago: %s", s.Filter.Category, s.Filter.PaymentMethod)

	return row.New(18).Add(
		col.New(7).Add(
			text.New(s.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen de ventas, márgenes y stock", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New(filters, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// kpiRows: dos filas de tarjetas con los KPIs ya formateados.
func kpiRows(s *dto.DashboardSummaryDTO) []core.Row {
	card := func(label, value string, valueColor *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 6, Align: align.Center, Color: valueColor,
			}),
		)
	}
	profitColor := colorPrimary
	if s.KPIs.EstimatedProfit.IsNegative() {
		profitColor = colorAlert
	}
	return []core.Row{
		row.New(16).Add(
			card("Ingresos", s.Display.Revenue, colorPrimary),
			card("Margen bruto", s.Display.GrossMargin, colorPrimary),
			card("Tickets", s.Display.Orders, colorPrimary),
			card("Ticket medio", s.Display.AvgTicket, colorPrimary),
		),
		row.New(16).Add(
			card("Gastos del período", s.Display.Expenses, colorPrimary),
			card("Resultado estimado", s.Display.EstimatedProfit, profitColor),
			col.New(6),
		),
	}
}

func sectionTitlesRow(titles ...string) core.Row {
	cols := make([]core.Col, 0, len(titles))
	for _, t := range titles {
		cols = append(cols, col.New(12/len(titles)).Add(text.New(t, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		})))
	}
	return row.New(8).Add(cols...)
}

// breakdownRows: tres tablas en paralelo (top productos, medios de pago, gastos).
func (g *MarotoPDFGenerator) breakdownRows(s *dto.DashboardSummaryDTO) []core.Row {
	top := make([][2]string, 0, len(s.TopProducts))
	for _, p := range s.TopProducts {
		top = append(top, [2]string{nonEmpty(p.Name, p.ProductID), g.money(p.Revenue)})
	}
	pay := amountPairs(s.PaymentSplit, g.money)
	exp := amountPairs(s.ExpensesByCategory, g.money)

	n := max(len(top), len(pay), len(exp))
	n = min(n, maxTableRows)
	if n == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin datos para los filtros seleccionados.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}

	rows := make([]core.Row, 0, n)
	for i := 0; i < n; i++ {
		cols := append(pairCols(top, i), pairCols(pay, i)...)
		cols = append(cols, pairCols(exp, i)...)
		rows = append(rows, row.New(5).Add(cols...))
	}
	return rows
}

// pairCols: etiqueta + importe ocupando 4 de las 12 columnas.
func pairCols(pairs [][2]string, i int) []core.Col {
	if i >= len(pairs) {
		return []core.Col{col.New(4)}
	}
	return []core.Col{
		col.New(2).Add(text.New(truncate(pairs[i][0], 22), props.Text{Size: 8, Top: 0.5})),
		col.New(2).Add(text.New(pairs[i][1], props.Text{Size: 8, Top: 0.5, Align: align.Right, Right: 3})),
	}
}

// lowStockRows: tabla de productos con stock en o por debajo del mínimo.
func lowStockRows(stock []dto.StockDTO) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	if len(stock) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Ningún producto por debajo del mínimo.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}

	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	rows = append(rows, row.New(6).Add(
		h("ID", 1, align.Left),
		h("Producto", 5, align.Left),
		h("Categoría", 3, align.Left),
		h("Stock", 1, align.Right),
		h("Mínimo", 2, align.Right),
	))
	for i, s := range stock {
		if i == maxTableRows {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(fmt.Sprintf("… y %d productos más", len(stock)-maxTableRows), props.Text{
					Size: 7, Color: colorGray, Top: 1,
				}),
			)))
			break
		}
		rows = append(rows, row.New(5).Add(
			col.New(1).Add(text.New(s.ProductID, props.Text{Size: 8, Top: 0.5, Left: 1})),
			col.New(5).Add(text.New(truncate(s.Name, 50), props.Text{Size: 8, Top: 0.5, Left: 1})),
			col.New(3).Add(text.New(s.Category, props.Text{Size: 8, Top: 0.5, Left: 1})),
			col.New(1).Add(text.New(s.CurrentStock.String(), props.Text{
				Size: 8, Top: 0.5, Align: align.Right, Right: 1, Color: colorAlert, Style: fontstyle.Bold,
			})),
			col.New(2).Add(text.New(s.MinStock.String(), props.Text{Size: 8, Top: 0.5, Align: align.Right, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Generado el "+g.now().Format("02/01/2006 15:04"), props.Text{
			Size: 6.5, Color: colorGray, Top: 2, Align: align.Right,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func amountPairs(rows []dto.AmountDTO, money func(decimal.Decimal) string) [][2]string {
	out := make([][2]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, [2]string{r.Key, money(r.Amount)})
	}
	return out
}

// money: importe sin decimales en el formato regional.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return pdfText(g.format.Money(d, 0))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// pdfText reemplaza el espacio fino de algunos locales (fr), ausente en la fuente helvetica.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "\u202f", "\u00a0")
}

// truncate corta s a n runas añadiendo "…".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
