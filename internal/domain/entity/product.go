package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo (products.csv).
// ProductID es la clave única; los precios son los vigentes, no los históricos.
type Product struct {
	ProductID    string
	Name         string
	Category     string
	UnitPrice    decimal.Decimal // precio de venta sin impuestos
	CostPrice    decimal.Decimal // costo unitario
	TaxRate      decimal.Decimal // ej: 0.055, 0.20
	InitialStock decimal.Decimal
	MinStock     decimal.Decimal // umbral de stock bajo (0 si no viene)
}
