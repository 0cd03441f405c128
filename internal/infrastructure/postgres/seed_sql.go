package postgres

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

const seedTimeLayout = "2006-01-02 15:04:05"

// WriteSeedSQL escribe un script que vacía y repuebla las cinco tablas con el dataset.
// Se usa para migrar los CSV a PostgreSQL (cmd/seed_sql).
func WriteSeedSQL(w io.Writer, ds *entity.Dataset) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("-- Dataset del dashboard generado desde los CSV\n")
	bw.WriteString("BEGIN;\n")
	bw.WriteString("TRUNCATE products, customers, sales, inventory_movements, expenses;\n\n")

	// 1. Productos
	if len(ds.Products) > 0 {
		bw.WriteString("INSERT INTO products (product_id, name, category, unit_price, cost_price, tax_rate, initial_stock, min_stock) VALUES\n")
		for i, p := range ds.Products {
			fmt.Fprintf(bw, "  (%s, %s, %s, %s, %s, %s, %s, %s)%s\n",
				quote(p.ProductID), quote(p.Name), quote(p.Category),
				num(p.UnitPrice), num(p.CostPrice), num(p.TaxRate), num(p.InitialStock), num(p.MinStock),
				sep(i, len(ds.Products)))
		}
		bw.WriteString("\n")
	}

	// 2. Clientes
	if len(ds.Customers) > 0 {
		bw.WriteString("INSERT INTO customers (customer_id, name, email, city) VALUES\n")
		for i, c := range ds.Customers {
			fmt.Fprintf(bw, "  (%s, %s, %s, %s)%s\n",
				quote(c.CustomerID), quote(c.Name), quote(c.Email), quote(c.City), sep(i, len(ds.Customers)))
		}
		bw.WriteString("\n")
	}

	// 3. Ventas: los campos opcionales vacíos quedan en NULL
	if len(ds.Sales) > 0 {
		bw.WriteString("INSERT INTO sales (sale_id, product_id, date, quantity, discount, payment_method, unit_price, cost_price, tax_rate, name, category) VALUES\n")
		for i, s := range ds.Sales {
			fmt.Fprintf(bw, "  (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)%s\n",
				quote(s.SaleID), quote(s.ProductID), ts(s.Date), num(s.Quantity), num(s.Discount), quote(s.PaymentMethod),
				nullNum(s.UnitPrice), nullNum(s.CostPrice), nullNum(s.TaxRate), nullStr(s.Name), nullStr(s.Category),
				sep(i, len(ds.Sales)))
		}
		bw.WriteString("\n")
	}

	// 4. Movimientos
	if len(ds.Movements) > 0 {
		bw.WriteString("INSERT INTO inventory_movements (product_id, date, type, quantity) VALUES\n")
		for i, m := range ds.Movements {
			fmt.Fprintf(bw, "  (%s, %s, %s, %s)%s\n",
				quote(m.ProductID), ts(m.Date), quote(m.Type), num(m.Quantity), sep(i, len(ds.Movements)))
		}
		bw.WriteString("\n")
	}

	// 5. Gastos
	if len(ds.Expenses) > 0 {
		bw.WriteString("INSERT INTO expenses (date, category, amount) VALUES\n")
		for i, e := range ds.Expenses {
			fmt.Fprintf(bw, "  (%s, %s, %s)%s\n", ts(e.Date), quote(e.Category), num(e.Amount), sep(i, len(ds.Expenses)))
		}
		bw.WriteString("\n")
	}

	bw.WriteString("COMMIT;\n")
	return bw.Flush()
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ";"
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullStr(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

func num(d decimal.Decimal) string { return d.String() }

func nullNum(d decimal.NullDecimal) string {
	if !d.Valid {
		return "NULL"
	}
	return d.Decimal.String()
}

func ts(t time.Time) string { return quote(t.Format(seedTimeLayout)) }
