package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// DashboardFilterRequest parámetros comunes de /api/dashboard/* y /api/export/*.
type DashboardFilterRequest struct {
	StartDate     string `query:"start_date"`     // YYYY-MM-DD; por defecto la primera fecha con ventas
	EndDate       string `query:"end_date"`       // YYYY-MM-DD; por defecto la última fecha con ventas
	Category      string `query:"category"`       // "all" o categoría exacta
	PaymentMethod string `query:"payment_method"` // "all" o medio de pago exacto
}

// PeriodDTO rango de fechas aplicado (inclusivo).
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// AppliedFilterDTO filtros efectivamente aplicados.
type AppliedFilterDTO struct {
	Period        PeriodDTO `json:"period"`
	Category      string    `json:"category"`
	PaymentMethod string    `json:"payment_method"`
}

// ── Opciones de filtro ────────────────────────────────────────────────────────

// FilterOptionsDTO respuesta de GET /api/dashboard/filters.
// Categories y PaymentMethods empiezan por el centinela "all".
type FilterOptionsDTO struct {
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"payment_methods"`
	MinDate        string   `json:"min_date,omitempty"`
	MaxDate        string   `json:"max_date,omitempty"`
}

// DatasetInfoDTO número de filas cargadas por tabla.
type DatasetInfoDTO struct {
	Products  int `json:"products"`
	Customers int `json:"customers"`
	Sales     int `json:"sales"`
	Movements int `json:"inventory_movements"`
	Expenses  int `json:"expenses"`
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// KPIsDTO indicadores del período filtrado.
type KPIsDTO struct {
	Revenue         decimal.Decimal `json:"revenue"`          // Σ line_price
	COGS            decimal.Decimal `json:"cogs"`             // Σ cogs
	GrossMargin     decimal.Decimal `json:"gross_margin"`     // revenue - cogs
	Orders          int             `json:"orders"`           // tickets distintos
	AvgTicket       decimal.Decimal `json:"avg_ticket"`       // revenue / orders (0 sin tickets)
	Expenses        decimal.Decimal `json:"expenses"`         // gastos del período (solo filtro de fechas)
	EstimatedProfit decimal.Decimal `json:"estimated_profit"` // gross_margin - expenses
}

// KPIDisplayDTO los mismos KPIs formateados según la configuración regional.
type KPIDisplayDTO struct {
	Revenue         string `json:"revenue"`
	GrossMargin     string `json:"gross_margin"`
	Orders          string `json:"orders"`
	AvgTicket       string `json:"avg_ticket"`
	Expenses        string `json:"expenses"`
	EstimatedProfit string `json:"estimated_profit"`
}

// DailyRevenueDTO punto de la serie de ingresos por día.
type DailyRevenueDTO struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ProductRevenueDTO fila del top de productos por ingresos.
type ProductRevenueDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// AmountDTO importe agrupado (medio de pago o categoría de gasto).
type AmountDTO struct {
	Key    string          `json:"key"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	BusinessName       string              `json:"business_name"`
	DemoMode           bool                `json:"demo_mode"`
	Filter             AppliedFilterDTO    `json:"filter"`
	KPIs               KPIsDTO             `json:"kpis"`
	Display            KPIDisplayDTO       `json:"display"`
	DailyRevenue       []DailyRevenueDTO   `json:"daily_revenue"`
	TopProducts        []ProductRevenueDTO `json:"top_products"`  // top 10 por ingresos
	PaymentSplit       []AmountDTO         `json:"payment_split"` // ingresos por medio de pago
	ExpensesByCategory []AmountDTO         `json:"expenses_by_category"`
	LowStock           []StockDTO          `json:"low_stock"`
}

// ── Ventas enriquecidas ───────────────────────────────────────────────────────

// EnrichedSaleDTO línea de venta con los campos del producto y los importes calculados.
type EnrichedSaleDTO struct {
	SaleID        string          `json:"sale_id"`
	Date          string          `json:"date"`
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	LinePrice     decimal.Decimal `json:"line_price"`
	COGS          decimal.Decimal `json:"cogs"`
	Margin        decimal.Decimal `json:"margin"`
}

// SalesListDTO respuesta de GET /api/dashboard/sales.
type SalesListDTO struct {
	Filter AppliedFilterDTO  `json:"filter"`
	Total  int               `json:"total"`
	Lines  []EnrichedSaleDTO `json:"lines"`
}
