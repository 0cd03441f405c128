// Package reporting contiene los reductores puros que producen los KPIs y las series
// del dashboard a partir de las líneas de venta enriquecidas y de los gastos.
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

// TopProductsLimit número de productos del ranking por ingresos.
const TopProductsLimit = 10

// KPIs indicadores principales de un conjunto filtrado de ventas.
type KPIs struct {
	Revenue     decimal.Decimal // Σ LinePrice
	COGS        decimal.Decimal // Σ COGS
	GrossMargin decimal.Decimal // Revenue - COGS
	Orders      int             // tickets distintos (SaleID)
	AvgTicket   decimal.Decimal // Revenue / Orders, 0 si no hay tickets
}

// DailyRevenue ingreso de un día de calendario.
type DailyRevenue struct {
	Date    time.Time
	Revenue decimal.Decimal
}

// ProductRevenue ingreso acumulado de un producto.
type ProductRevenue struct {
	ProductID string
	Name      string
	Revenue   decimal.Decimal
}

// Amount importe agrupado bajo una clave (medio de pago, categoría de gasto).
type Amount struct {
	Key    string
	Amount decimal.Decimal
}

// ComputeKPIs calcula ingresos, COGS, margen bruto, número de tickets y ticket medio.
func ComputeKPIs(lines []entity.EnrichedSaleLine) KPIs {
	var k KPIs
	tickets := make(map[string]struct{})
	for _, l := range lines {
		k.Revenue = k.Revenue.Add(l.LinePrice)
		k.COGS = k.COGS.Add(l.COGS)
		tickets[l.SaleID] = struct{}{}
	}
	k.GrossMargin = k.Revenue.Sub(k.COGS)
	k.Orders = len(tickets)
	if k.Orders > 0 {
		k.AvgTicket = k.Revenue.Div(decimal.NewFromInt(int64(k.Orders)))
	}
	return k
}

// RevenueByDay agrupa por fecha de calendario (sin hora) y suma LinePrice.
// Una fila por fecha presente, en orden ascendente.
func RevenueByDay(lines []entity.EnrichedSaleLine) []DailyRevenue {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, l := range lines {
		day := entity.CivilDate(l.Date)
		byDay[day] = byDay[day].Add(l.LinePrice)
	}
	series := make([]DailyRevenue, 0, len(byDay))
	for day, rev := range byDay {
		series = append(series, DailyRevenue{Date: day, Revenue: rev})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// TopProducts agrupa por (ProductID, Name), suma LinePrice y devuelve los `limit`
// de mayor ingreso. Los empates conservan el orden de primera aparición.
func TopProducts(lines []entity.EnrichedSaleLine, limit int) []ProductRevenue {
	type key struct{ id, name string }
	index := make(map[key]int)
	groups := make([]ProductRevenue, 0)
	for _, l := range lines {
		// Sin nombre no hay producto en el catálogo: no entra al ranking.
		if l.Name == "" {
			continue
		}
		k := key{l.ProductID, l.Name}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, ProductRevenue{ProductID: l.ProductID, Name: l.Name})
		}
		groups[i].Revenue = groups[i].Revenue.Add(l.LinePrice)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Revenue.GreaterThan(groups[j].Revenue)
	})
	if limit >= 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// RevenueByPaymentMethod suma LinePrice por medio de pago, ordenado por medio de pago.
func RevenueByPaymentMethod(lines []entity.EnrichedSaleLine) []Amount {
	b := newAmountBuilder()
	for _, l := range lines {
		b.add(l.PaymentMethod, l.LinePrice)
	}
	return b.sorted()
}

// FilterExpenses devuelve los gastos cuya fecha cae en el período.
// Los filtros de categoría de producto y medio de pago no aplican a gastos.
func FilterExpenses(expenses []entity.Expense, p entity.Period) []entity.Expense {
	out := make([]entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// TotalExpenses suma Amount.
func TotalExpenses(expenses []entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ExpensesByCategory suma Amount por categoría de gasto, ordenado por categoría.
func ExpensesByCategory(expenses []entity.Expense) []Amount {
	b := newAmountBuilder()
	for _, e := range expenses {
		b.add(e.Category, e.Amount)
	}
	return b.sorted()
}

// EstimatedProfit margen bruto menos gastos operativos.
func EstimatedProfit(grossMargin, expenses decimal.Decimal) decimal.Decimal {
	return grossMargin.Sub(expenses)
}

type amountBuilder struct {
	index map[string]int
	rows  []Amount
}

func newAmountBuilder() *amountBuilder {
	return &amountBuilder{index: make(map[string]int), rows: make([]Amount, 0)}
}

// add ignora las claves vacías.
func (b *amountBuilder) add(key string, v decimal.Decimal) {
	if key == "" {
		return
	}
	i, ok := b.index[key]
	if !ok {
		i = len(b.rows)
		b.index[key] = i
		b.rows = append(b.rows, Amount{Key: key})
	}
	b.rows[i].Amount = b.rows[i].Amount.Add(v)
}

func (b *amountBuilder) sorted() []Amount {
	sort.Slice(b.rows, func(i, j int) bool { return b.rows[i].Key < b.rows[j].Key })
	return b.rows
}
