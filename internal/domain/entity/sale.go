package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine es una línea de venta (sales.csv). Varias líneas con el mismo SaleID
// forman un ticket.
//
// UnitPrice, CostPrice, TaxRate, Name y Category son opcionales: si el archivo de
// ventas los trae y no están vacíos, tienen prioridad sobre los del producto.
type SaleLine struct {
	SaleID        string
	ProductID     string
	Date          time.Time
	Quantity      decimal.Decimal
	Discount      decimal.Decimal // 0 si no viene
	PaymentMethod string

	UnitPrice decimal.NullDecimal
	CostPrice decimal.NullDecimal
	TaxRate   decimal.NullDecimal
	Name      string
	Category  string
}

// EnrichedSaleLine es una línea de venta unida al producto con los importes calculados.
type EnrichedSaleLine struct {
	SaleID        string
	ProductID     string
	Date          time.Time
	Quantity      decimal.Decimal
	Discount      decimal.Decimal
	PaymentMethod string
	Name          string
	Category      string
	UnitPrice     decimal.Decimal
	CostPrice     decimal.Decimal
	TaxRate       decimal.Decimal

	LinePrice decimal.Decimal // UnitPrice*Quantity - Discount
	COGS      decimal.Decimal // CostPrice*Quantity
	Margin    decimal.Decimal // LinePrice - COGS
}
