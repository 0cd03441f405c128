package reporting_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
	"github.com/jhoicas/pyme-dashboard/internal/domain/reporting"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func line(saleID, productID, name, pay, date, price, cogs string) entity.EnrichedSaleLine {
	return entity.EnrichedSaleLine{
		SaleID: saleID, ProductID: productID, Name: name, PaymentMethod: pay,
		Date: at(date), LinePrice: d(price), COGS: d(cogs), Margin: d(price).Sub(d(cogs)),
	}
}

func TestComputeKPIs_TicketMedio(t *testing.T) {
	lines := []entity.EnrichedSaleLine{
		line("S1", "1", "Baguette", "cash", "2025-01-01 08:00", "6", "3"),
		line("S1", "2", "Tarta", "cash", "2025-01-01 08:00", "15", "6"),
		line("S2", "1", "Baguette", "card", "2025-01-02 09:00", "4", "2"),
	}

	k := reporting.ComputeKPIs(lines)
	assert.True(t, k.Revenue.Equal(d("25")))
	assert.True(t, k.COGS.Equal(d("11")))
	assert.True(t, k.GrossMargin.Equal(d("14")))
	assert.Equal(t, 2, k.Orders, "S1 agrupa dos líneas")
	assert.True(t, k.AvgTicket.Equal(d("12.5")), "25 / 2")
}

func TestComputeKPIs_SinTicketsNoDivide(t *testing.T) {
	k := reporting.ComputeKPIs(nil)
	assert.Equal(t, 0, k.Orders)
	assert.True(t, k.Revenue.IsZero())
	assert.True(t, k.AvgTicket.IsZero())
}

func TestComputeKPIs_EjemploDeReferencia(t *testing.T) {
	k := reporting.ComputeKPIs([]entity.EnrichedSaleLine{line("S1", "1", "p", "cash", "2025-01-01 00:00", "6", "3")})
	assert.True(t, k.Revenue.Equal(d("6")))
	assert.Equal(t, 1, k.Orders)
	assert.True(t, k.AvgTicket.Equal(d("6")))
	assert.True(t, k.GrossMargin.Equal(d("3")))
}

func TestRevenueByDay_AgrupaPorFechaIgnorandoHora(t *testing.T) {
	lines := []entity.EnrichedSaleLine{
		line("S3", "1", "p", "cash", "2025-01-03 18:00", "1", "0"),
		line("S1", "1", "p", "cash", "2025-01-01 07:00", "2", "0"),
		line("S2", "1", "p", "cash", "2025-01-01 19:30", "3", "0"),
	}

	series := reporting.RevenueByDay(lines)
	require.Len(t, series, 2, "solo fechas presentes")
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.True(t, series[0].Revenue.Equal(d("5")))
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), series[1].Date)
	assert.True(t, series[1].Revenue.Equal(d("1")))
}

func TestTopProducts_OrdenDescendenteYLimite(t *testing.T) {
	var lines []entity.EnrichedSaleLine
	for i := 1; i <= 12; i++ {
		lines = append(lines, line("S", fmt.Sprint(i), fmt.Sprintf("P%d", i), "cash", "2025-01-01 00:00", fmt.Sprint(i), "0"))
	}
	lines = append(lines, line("S", "1", "P1", "cash", "2025-01-01 00:00", "100", "0"))

	top := reporting.TopProducts(lines, reporting.TopProductsLimit)
	require.Len(t, top, 10)
	assert.Equal(t, "1", top[0].ProductID)
	assert.True(t, top[0].Revenue.Equal(d("101")))
	assert.Equal(t, "12", top[1].ProductID)
	assert.Equal(t, "4", top[9].ProductID)
}

func TestTopProducts_EmpatesConservanOrden(t *testing.T) {
	lines := []entity.EnrichedSaleLine{
		line("S1", "b", "B", "cash", "2025-01-01 00:00", "5", "0"),
		line("S2", "a", "A", "cash", "2025-01-01 00:00", "5", "0"),
	}

	top := reporting.TopProducts(lines, reporting.TopProductsLimit)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].ProductID)
	assert.Equal(t, "a", top[1].ProductID)
}

func TestRevenueByPaymentMethod(t *testing.T) {
	lines := []entity.EnrichedSaleLine{
		line("S1", "1", "p", "cash", "2025-01-01 00:00", "6", "0"),
		line("S2", "1", "p", "card", "2025-01-01 00:00", "4", "0"),
		line("S3", "1", "p", "cash", "2025-01-01 00:00", "1.5", "0"),
	}

	split := reporting.RevenueByPaymentMethod(lines)
	require.Len(t, split, 2)
	assert.Equal(t, "card", split[0].Key)
	assert.True(t, split[0].Amount.Equal(d("4")))
	assert.Equal(t, "cash", split[1].Key)
	assert.True(t, split[1].Amount.Equal(d("7.5")))
}

func TestAgrupaciones_OmitenClavesVacias(t *testing.T) {
	lines := []entity.EnrichedSaleLine{
		line("S1", "1", "Baguette", "cash", "2025-01-01 00:00", "6", "3"),
		line("S2", "99", "", "cash", "2025-01-01 00:00", "0", "0"),
		line("S3", "1", "Baguette", "", "2025-01-01 00:00", "2", "1"),
	}

	top := reporting.TopProducts(lines, reporting.TopProductsLimit)
	require.Len(t, top, 1, "el producto sin catálogo no aparece")
	assert.Equal(t, "1", top[0].ProductID)
	assert.True(t, top[0].Revenue.Equal(d("8")))

	split := reporting.RevenueByPaymentMethod(lines)
	require.Len(t, split, 1, "sin medio de pago no hay grupo")
	assert.Equal(t, "cash", split[0].Key)
	assert.True(t, split[0].Amount.Equal(d("6")))

	k := reporting.ComputeKPIs(lines)
	assert.True(t, k.Revenue.Equal(d("8")), "los KPIs sí cuentan todas las líneas")
	assert.Equal(t, 3, k.Orders)
}

func TestGastos_FiltroTotalesYCategorias(t *testing.T) {
	expenses := []entity.Expense{
		{Date: at("2024-12-31 12:00"), Category: "Alquiler", Amount: d("800")},
		{Date: at("2025-01-01 00:00"), Category: "Energía", Amount: d("120.50")},
		{Date: at("2025-01-15 10:00"), Category: "Alquiler", Amount: d("800")},
		{Date: at("2025-01-31 23:00"), Category: "Energía", Amount: d("30")},
	}
	p := entity.Period{Start: at("2025-01-01 00:00"), End: at("2025-01-31 00:00")}

	filtered := reporting.FilterExpenses(expenses, p)
	require.Len(t, filtered, 3)

	total := reporting.TotalExpenses(filtered)
	assert.True(t, total.Equal(d("950.50")))

	byCat := reporting.ExpensesByCategory(filtered)
	require.Len(t, byCat, 2)
	assert.Equal(t, "Alquiler", byCat[0].Key)
	assert.True(t, byCat[0].Amount.Equal(d("800")))
	assert.Equal(t, "Energía", byCat[1].Key)
	assert.True(t, byCat[1].Amount.Equal(d("150.50")))

	profit := reporting.EstimatedProfit(d("1000"), total)
	assert.True(t, profit.Equal(d("49.50")))
}
