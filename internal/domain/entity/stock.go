package entity

import "github.com/shopspring/decimal"

// StockSnapshot es el stock actual derivado de un producto:
// CurrentStock = InitialStock + Σentradas - Σsalidas. Puede ser negativo.
type StockSnapshot struct {
	ProductID    string
	Name         string
	Category     string
	MinStock     decimal.Decimal
	InitialStock decimal.Decimal
	InQty        decimal.Decimal
	OutQty       decimal.Decimal
	CurrentStock decimal.Decimal
}

// IsLow indica si el stock está en o por debajo del umbral mínimo.
func (s StockSnapshot) IsLow() bool {
	return s.CurrentStock.LessThanOrEqual(s.MinStock)
}
