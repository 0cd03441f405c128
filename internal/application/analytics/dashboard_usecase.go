// Package analytics contiene los casos de uso del dashboard: KPIs, series,
// stock y exportaciones, calculados sobre el contexto de datos en memoria.
package analytics

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
	"github.com/jhoicas/pyme-dashboard/internal/domain"
	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
	"github.com/jhoicas/pyme-dashboard/internal/domain/inventory"
	"github.com/jhoicas/pyme-dashboard/internal/domain/reporting"
	"github.com/jhoicas/pyme-dashboard/internal/domain/sales"
)

const dateLayout = "2006-01-02"

// Options parámetros de presentación del dashboard.
type Options struct {
	BusinessName   string
	DemoMode       bool // true = exportaciones deshabilitadas
	Locale         string
	CurrencySymbol string
}

// DashboardUseCase compone el cálculo de stock, el pipeline de ventas y los reductores
// de reporting. Cada llamada recalcula todo desde el DataContext: no guarda estado.
type DashboardUseCase struct {
	data     *DataContext
	opts     Options
	format   *MoneyFormatter
	exporter SalesExporter
	pdf      ReportPDFGenerator
}

// NewDashboardUseCase construye el caso de uso. exporter y pdf pueden ser nil
// (la exportación correspondiente devuelve error).
func NewDashboardUseCase(data *DataContext, opts Options, exporter SalesExporter, pdf ReportPDFGenerator) *DashboardUseCase {
	return &DashboardUseCase{
		data:     data,
		opts:     opts,
		format:   NewMoneyFormatter(opts.Locale, opts.CurrencySymbol),
		exporter: exporter,
		pdf:      pdf,
	}
}

// DemoMode indica si las exportaciones están deshabilitadas.
func (uc *DashboardUseCase) DemoMode() bool { return uc.opts.DemoMode }

// GetFilterOptions devuelve las categorías, medios de pago y el rango de fechas disponibles.
func (uc *DashboardUseCase) GetFilterOptions(_ context.Context) dto.FilterOptionsDTO {
	out := dto.FilterOptionsDTO{
		Categories:     append([]string{sales.All}, sales.Categories(uc.data.Products())...),
		PaymentMethods: append([]string{sales.All}, sales.PaymentMethods(uc.data.Sales())...),
	}
	if p, ok := sales.DataPeriod(uc.data.Sales()); ok {
		out.MinDate = p.Start.Format(dateLayout)
		out.MaxDate = p.End.Format(dateLayout)
	}
	return out
}

// GetDatasetInfo devuelve el número de filas cargadas por tabla.
func (uc *DashboardUseCase) GetDatasetInfo(_ context.Context) dto.DatasetInfoDTO {
	return dto.DatasetInfoDTO{
		Products:  len(uc.data.Products()),
		Customers: len(uc.data.Customers()),
		Sales:     len(uc.data.Sales()),
		Movements: len(uc.data.Movements()),
		Expenses:  len(uc.data.Expenses()),
	}
}

// GetSummary construye el DashboardSummaryDTO para los filtros indicados.
//
// Pasos:
//  1. Pipeline de ventas (fechas → medio de pago → unión con productos → categoría).
//  2. KPIs, serie diaria, top 10 y reparto por medio de pago.
//  3. Gastos del período (solo filtro de fechas) y resultado estimado.
//  4. Stock actual y lista de stock bajo (no dependen de los filtros).
func (uc *DashboardUseCase) GetSummary(ctx context.Context, req dto.DashboardFilterRequest) (*dto.DashboardSummaryDTO, error) {
	filter, err := uc.resolveFilter(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// ── Ventas ─────────────────────────────────────────────────────────────────
	lines := sales.Enrich(uc.data.Sales(), uc.data.Products(), filter)
	kpis := reporting.ComputeKPIs(lines)

	// ── Gastos ─────────────────────────────────────────────────────────────────
	expenses := reporting.FilterExpenses(uc.data.Expenses(), filter.Period)
	totalExpenses := reporting.TotalExpenses(expenses)
	profit := reporting.EstimatedProfit(kpis.GrossMargin, totalExpenses)

	// ── Stock ──────────────────────────────────────────────────────────────────
	low := inventory.LowStock(inventory.ComputeStock(uc.data.Products(), uc.data.Movements()))

	summary := &dto.DashboardSummaryDTO{
		BusinessName: uc.opts.BusinessName,
		DemoMode:     uc.opts.DemoMode,
		Filter:       appliedFilter(filter),
		KPIs: dto.KPIsDTO{
			Revenue:         kpis.Revenue.Round(2),
			COGS:            kpis.COGS.Round(2),
			GrossMargin:     kpis.GrossMargin.Round(2),
			Orders:          kpis.Orders,
			AvgTicket:       kpis.AvgTicket.Round(2),
			Expenses:        totalExpenses.Round(2),
			EstimatedProfit: profit.Round(2),
		},
		Display: dto.KPIDisplayDTO{
			Revenue:         uc.format.Money(kpis.Revenue, 0),
			GrossMargin:     uc.format.Money(kpis.GrossMargin, 0),
			Orders:          uc.format.Count(kpis.Orders),
			AvgTicket:       uc.format.Money(kpis.AvgTicket, 2),
			Expenses:        uc.format.Money(totalExpenses, 0),
			EstimatedProfit: uc.format.Money(profit, 0),
		},
		DailyRevenue:       toDailyDTOs(reporting.RevenueByDay(lines)),
		TopProducts:        toProductDTOs(reporting.TopProducts(lines, reporting.TopProductsLimit)),
		PaymentSplit:       toAmountDTOs(reporting.RevenueByPaymentMethod(lines)),
		ExpensesByCategory: toAmountDTOs(reporting.ExpensesByCategory(expenses)),
		LowStock:           toStockDTOs(low),
	}
	return summary, nil
}

// GetSales devuelve las líneas de venta enriquecidas para los filtros indicados.
func (uc *DashboardUseCase) GetSales(_ context.Context, req dto.DashboardFilterRequest) (*dto.SalesListDTO, error) {
	filter, err := uc.resolveFilter(req)
	if err != nil {
		return nil, err
	}
	lines := sales.Enrich(uc.data.Sales(), uc.data.Products(), filter)
	out := make([]dto.EnrichedSaleDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.EnrichedSaleDTO{
			SaleID:        l.SaleID,
			Date:          l.Date.Format(time.DateTime),
			ProductID:     l.ProductID,
			Name:          l.Name,
			Category:      l.Category,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			CostPrice:     l.CostPrice,
			TaxRate:       l.TaxRate,
			Discount:      l.Discount,
			PaymentMethod: l.PaymentMethod,
			LinePrice:     l.LinePrice,
			COGS:          l.COGS,
			Margin:        l.Margin,
		})
	}
	return &dto.SalesListDTO{Filter: appliedFilter(filter), Total: len(out), Lines: out}, nil
}

// GetStock devuelve el stock actual de todos los productos, recalculado desde el log de movimientos.
func (uc *DashboardUseCase) GetStock(_ context.Context) []dto.StockDTO {
	return toStockDTOs(inventory.ComputeStock(uc.data.Products(), uc.data.Movements()))
}

// GetLowStock devuelve los productos con current_stock <= min_stock.
func (uc *DashboardUseCase) GetLowStock(_ context.Context) []dto.StockDTO {
	return toStockDTOs(inventory.LowStock(inventory.ComputeStock(uc.data.Products(), uc.data.Movements())))
}

// ExportSalesCSV devuelve el CSV de las ventas filtradas y enriquecidas.
// En modo demo devuelve domain.ErrExportDisabled.
func (uc *DashboardUseCase) ExportSalesCSV(_ context.Context, req dto.DashboardFilterRequest) ([]byte, error) {
	if uc.opts.DemoMode {
		return nil, domain.ErrExportDisabled
	}
	if uc.exporter == nil {
		return nil, fmt.Errorf("export: exportador CSV no configurado")
	}
	filter, err := uc.resolveFilter(req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := uc.exporter.WriteSales(&buf, sales.Enrich(uc.data.Sales(), uc.data.Products(), filter)); err != nil {
		return nil, fmt.Errorf("export: escribir CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportReportPDF genera el resumen en PDF. En modo demo devuelve domain.ErrExportDisabled.
func (uc *DashboardUseCase) ExportReportPDF(ctx context.Context, req dto.DashboardFilterRequest) ([]byte, error) {
	if uc.opts.DemoMode {
		return nil, domain.ErrExportDisabled
	}
	if uc.pdf == nil {
		return nil, fmt.Errorf("export: generador PDF no configurado")
	}
	summary, err := uc.GetSummary(ctx, req)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(ctx, summary)
}

// resolveFilter convierte los parámetros en un sales.Filter.
// Sin fechas, el período es el rango completo de las ventas.
func (uc *DashboardUseCase) resolveFilter(req dto.DashboardFilterRequest) (sales.Filter, error) {
	period, ok := sales.DataPeriod(uc.data.Sales())
	if !ok {
		today := entity.CivilDate(time.Now())
		period = entity.Period{Start: today, End: today}
	}

	if req.StartDate != "" {
		start, err := entity.ParseDate(req.StartDate)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("%w: start_date %q", domain.ErrInvalidInput, req.StartDate)
		}
		period.Start = entity.CivilDate(start)
	}
	if req.EndDate != "" {
		end, err := entity.ParseDate(req.EndDate)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("%w: end_date %q", domain.ErrInvalidInput, req.EndDate)
		}
		period.End = entity.CivilDate(end)
	}
	// Con un solo extremo fuera del rango de datos, el otro lo acompaña (ventana vacía, no error).
	if req.EndDate == "" && period.Start.After(period.End) {
		period.End = period.Start
	}
	if req.StartDate == "" && period.Start.After(period.End) {
		period.Start = period.End
	}
	if period.Start.After(period.End) {
		return sales.Filter{}, fmt.Errorf("%w: start_date no puede ser posterior a end_date", domain.ErrInvalidInput)
	}

	return sales.Filter{
		Period:        period,
		Category:      orAll(req.Category),
		PaymentMethod: orAll(req.PaymentMethod),
	}, nil
}

func orAll(s string) string {
	if s == "" {
		return sales.All
	}
	return s
}

func appliedFilter(f sales.Filter) dto.AppliedFilterDTO {
	return dto.AppliedFilterDTO{
		Period: dto.PeriodDTO{
			StartDate: f.Period.Start.Format(dateLayout),
			EndDate:   f.Period.End.Format(dateLayout),
		},
		Category:      f.Category,
		PaymentMethod: f.PaymentMethod,
	}
}

func toDailyDTOs(rows []reporting.DailyRevenue) []dto.DailyRevenueDTO {
	out := make([]dto.DailyRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailyRevenueDTO{Date: r.Date.Format(dateLayout), Revenue: r.Revenue.Round(2)})
	}
	return out
}

func toProductDTOs(rows []reporting.ProductRevenue) []dto.ProductRevenueDTO {
	out := make([]dto.ProductRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductRevenueDTO{ProductID: r.ProductID, Name: r.Name, Revenue: r.Revenue.Round(2)})
	}
	return out
}

func toAmountDTOs(rows []reporting.Amount) []dto.AmountDTO {
	out := make([]dto.AmountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AmountDTO{Key: r.Key, Amount: r.Amount.Round(2)})
	}
	return out
}

func toStockDTOs(rows []entity.StockSnapshot) []dto.StockDTO {
	out := make([]dto.StockDTO, 0, len(rows))
	for _, s := range rows {
		out = append(out, dto.StockDTO{
			ProductID:    s.ProductID,
			Name:         s.Name,
			Category:     s.Category,
			InitialStock: s.InitialStock,
			InQty:        s.InQty,
			OutQty:       s.OutQty,
			CurrentStock: s.CurrentStock,
			MinStock:     s.MinStock,
			IsLow:        s.IsLow(),
		})
	}
	return out
}
