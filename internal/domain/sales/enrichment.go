// Package sales implementa el pipeline de enriquecimiento de ventas:
// filtros, unión con el catálogo de productos y cálculo de importes.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

// All es el valor centinela que desactiva el filtro de categoría o de medio de pago.
const All = "all"

// Filter criterios del pipeline. Category y PaymentMethod vacíos equivalen a All.
type Filter struct {
	Period        entity.Period
	Category      string
	PaymentMethod string
}

func isAll(v string) bool { return v == "" || v == All }

// Enrich aplica, en orden:
//  1. filtro por fecha (inclusive);
//  2. filtro por medio de pago;
//  3. unión con el producto (el valor de la venta gana si existe, si no el del producto);
//  4. filtro por categoría (después de la unión);
//  5. cálculo de LinePrice, COGS y Margin.
//
// Una venta cuyo producto no existe no se descarta: queda con precio y costo en cero.
func Enrich(lines []entity.SaleLine, products []entity.Product, f Filter) []entity.EnrichedSaleLine {
	catalog := make(map[string]entity.Product, len(products))
	for _, p := range products {
		if _, dup := catalog[p.ProductID]; !dup {
			catalog[p.ProductID] = p
		}
	}

	out := make([]entity.EnrichedSaleLine, 0, len(lines))
	for _, s := range lines {
		if !f.Period.Contains(s.Date) {
			continue
		}
		if !isAll(f.PaymentMethod) && s.PaymentMethod != f.PaymentMethod {
			continue
		}

		e := join(s, catalog[s.ProductID])

		if !isAll(f.Category) && e.Category != f.Category {
			continue
		}

		e.LinePrice = e.UnitPrice.Mul(e.Quantity).Sub(e.Discount)
		e.COGS = e.CostPrice.Mul(e.Quantity)
		e.Margin = e.LinePrice.Sub(e.COGS)
		out = append(out, e)
	}
	return out
}

// join resuelve cada campo compartido con la regla "primer no nulo gana, prioridad venta".
// p es el valor cero cuando el producto no existe.
func join(s entity.SaleLine, p entity.Product) entity.EnrichedSaleLine {
	return entity.EnrichedSaleLine{
		SaleID:        s.SaleID,
		ProductID:     s.ProductID,
		Date:          s.Date,
		Quantity:      s.Quantity,
		Discount:      s.Discount,
		PaymentMethod: s.PaymentMethod,
		Name:          firstString(s.Name, p.Name),
		Category:      firstString(s.Category, p.Category),
		UnitPrice:     firstDecimal(s.UnitPrice, p.UnitPrice),
		CostPrice:     firstDecimal(s.CostPrice, p.CostPrice),
		TaxRate:       firstDecimal(s.TaxRate, p.TaxRate),
	}
}

func firstString(sale, product string) string {
	if sale != "" {
		return sale
	}
	return product
}

func firstDecimal(sale decimal.NullDecimal, product decimal.Decimal) decimal.Decimal {
	if sale.Valid {
		return sale.Decimal
	}
	return product
}
