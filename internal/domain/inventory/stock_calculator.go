// Package inventory contiene los servicios de dominio de stock.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

// ComputeStock deriva el stock actual de cada producto a partir del log completo de movimientos.
//
// El universo es la lista de productos: todo producto aparece aunque no tenga movimientos.
// CurrentStock = InitialStock + Σ(in) - Σ(out), sin recortar a cero.
// Los movimientos de productos inexistentes se ignoran; los de tipo desconocido también.
func ComputeStock(products []entity.Product, movements []entity.InventoryMovement) []entity.StockSnapshot {
	inQty := make(map[string]decimal.Decimal)
	outQty := make(map[string]decimal.Decimal)
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIN:
			inQty[m.ProductID] = inQty[m.ProductID].Add(m.Quantity)
		case entity.MovementTypeOUT:
			outQty[m.ProductID] = outQty[m.ProductID].Add(m.Quantity)
		}
	}

	stock := make([]entity.StockSnapshot, 0, len(products))
	for _, p := range products {
		in := inQty[p.ProductID]
		out := outQty[p.ProductID]
		stock = append(stock, entity.StockSnapshot{
			ProductID:    p.ProductID,
			Name:         p.Name,
			Category:     p.Category,
			MinStock:     p.MinStock,
			InitialStock: p.InitialStock,
			InQty:        in,
			OutQty:       out,
			CurrentStock: p.InitialStock.Add(in).Sub(out),
		})
	}
	return stock
}

// LowStock devuelve los productos con CurrentStock <= MinStock (límite inclusivo),
// en el mismo orden del catálogo.
func LowStock(stock []entity.StockSnapshot) []entity.StockSnapshot {
	low := make([]entity.StockSnapshot, 0)
	for _, s := range stock {
		if s.IsLow() {
			low = append(low, s)
		}
	}
	return low
}
