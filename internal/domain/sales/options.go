package sales

import (
	"sort"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

// Categories devuelve las categorías distintas del catálogo, ordenadas.
func Categories(products []entity.Product) []string {
	seen := make(map[string]struct{})
	for _, p := range products {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// PaymentMethods devuelve los medios de pago distintos presentes en las ventas, ordenados.
func PaymentMethods(lines []entity.SaleLine) []string {
	seen := make(map[string]struct{})
	for _, s := range lines {
		if s.PaymentMethod != "" {
			seen[s.PaymentMethod] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// DataPeriod devuelve el rango [fecha mínima, fecha máxima] de las ventas.
// ok es false si no hay ventas.
func DataPeriod(lines []entity.SaleLine) (p entity.Period, ok bool) {
	for i, s := range lines {
		day := entity.CivilDate(s.Date)
		if i == 0 {
			p = entity.Period{Start: day, End: day}
			continue
		}
		if day.Before(p.Start) {
			p.Start = day
		}
		if day.After(p.End) {
			p.End = day
		}
	}
	return p, len(lines) > 0
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
