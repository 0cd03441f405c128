// Package export serializa las ventas filtradas para su descarga.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

var _ analytics.SalesExporter = (*CSVWriter)(nil)

// SalesColumns cabecera del CSV exportado: columnas de la venta, del producto y calculadas.
var SalesColumns = []string{
	"sale_id", "date", "product_id", "name", "category",
	"quantity", "unit_price", "cost_price", "tax_rate", "discount", "payment_method",
	"line_price", "cogs", "margin",
}

// CSVWriter escribe líneas enriquecidas como CSV (coma, cabecera, UTF-8).
type CSVWriter struct{}

// NewCSVWriter construye el exportador.
func NewCSVWriter() *CSVWriter { return &CSVWriter{} }

// WriteSales escribe la cabecera y una fila por línea, en el orden recibido.
func (CSVWriter) WriteSales(w io.Writer, lines []entity.EnrichedSaleLine) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SalesColumns); err != nil {
		return err
	}
	for _, l := range lines {
		rec := []string{
			l.SaleID,
			l.Date.Format(time.DateTime),
			l.ProductID,
			l.Name,
			l.Category,
			l.Quantity.String(),
			l.UnitPrice.String(),
			l.CostPrice.String(),
			l.TaxRate.String(),
			l.Discount.String(),
			l.PaymentMethod,
			money(l.LinePrice),
			money(l.COGS),
			money(l.Margin),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export csv venta %s: %w", l.SaleID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
