package dto

import "github.com/shopspring/decimal"

// StockDTO stock actual de un producto.
type StockDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	InitialStock decimal.Decimal `json:"initial_stock"`
	InQty        decimal.Decimal `json:"in_qty"`
	OutQty       decimal.Decimal `json:"out_qty"`
	CurrentStock decimal.Decimal `json:"current_stock"` // puede ser negativo
	MinStock     decimal.Decimal `json:"min_stock"`
	IsLow        bool            `json:"is_low"` // current_stock <= min_stock
}
