// Package csvsource implementa repository.DatasetSource leyendo los cinco archivos
// CSV del negocio desde un directorio.
package csvsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
	"github.com/jhoicas/pyme-dashboard/internal/domain/repository"
)

// Nombres de archivo esperados dentro del directorio de datos.
const (
	ProductsFile  = "products.csv"
	CustomersFile = "customers.csv"
	SalesFile     = "sales.csv"
	MovementsFile = "inventory_movements.csv"
	ExpensesFile  = "expenses.csv"
)

var _ repository.DatasetSource = (*Source)(nil)

// Codificaciones de archivo soportadas. Las hojas de cálculo en español suelen
// exportar CSV en Windows-1252.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin1"
	EncodingWindows1252 = "windows-1252"
)

// Source lee el dataset desde archivos CSV con cabecera.
type Source struct {
	dir string
	enc encoding.Encoding // nil = UTF-8
}

// Option configura la fuente CSV.
type Option func(*Source) error

// WithEncoding decodifica los archivos desde la codificación indicada.
func WithEncoding(name string) Option {
	return func(s *Source) error {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "", EncodingUTF8, "utf8":
			s.enc = nil
		case EncodingLatin1, "iso-8859-1":
			s.enc = charmap.ISO8859_1
		case EncodingWindows1252, "cp1252":
			s.enc = charmap.Windows1252
		default:
			return fmt.Errorf("csvsource: codificación no soportada %q", name)
		}
		return nil
	}
}

// NewSource construye la fuente para el directorio dado.
func NewSource(dir string, opts ...Option) (*Source, error) {
	s := &Source{dir: dir}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Load lee y tipa las cinco tablas. customers.csv es opcional; los demás son obligatorios.
// Cualquier fecha vacía o ilegible aborta la carga.
func (s *Source) Load(ctx context.Context) (*entity.Dataset, error) {
	ds := &entity.Dataset{}
	steps := []struct {
		file     string
		optional bool
		load     func(*table) error
	}{
		{ProductsFile, false, func(t *table) (err error) { ds.Products, err = products(t); return }},
		{CustomersFile, true, func(t *table) (err error) { ds.Customers, err = customers(t); return }},
		{SalesFile, false, func(t *table) (err error) { ds.Sales, err = saleLines(t); return }},
		{MovementsFile, false, func(t *table) (err error) { ds.Movements, err = movements(t); return }},
		{ExpensesFile, false, func(t *table) (err error) { ds.Expenses, err = expenses(t); return }},
	}
	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := readTable(filepath.Join(s.dir, st.file), s.enc)
		if err != nil {
			if st.optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("csvsource: %w", err)
		}
		if err := st.load(t); err != nil {
			return nil, fmt.Errorf("csvsource: %w", err)
		}
	}
	return ds, nil
}

func products(t *table) ([]entity.Product, error) {
	if err := t.require("product_id", "name", "category", "unit_price", "cost_price"); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(t.rows))
	err := t.each(func(c *cursor) {
		out = append(out, entity.Product{
			ProductID:    c.str("product_id"),
			Name:         c.str("name"),
			Category:     c.str("category"),
			UnitPrice:    c.decimal("unit_price"),
			CostPrice:    c.decimal("cost_price"),
			TaxRate:      c.decimal("tax_rate"),
			InitialStock: c.decimal("initial_stock"),
			MinStock:     c.decimal("min_stock"),
		})
	})
	return out, err
}

func customers(t *table) ([]entity.Customer, error) {
	if err := t.require("customer_id"); err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(t.rows))
	err := t.each(func(c *cursor) {
		out = append(out, entity.Customer{
			CustomerID: c.str("customer_id"),
			Name:       c.str("name"),
			Email:      c.str("email"),
			City:       c.str("city"),
		})
	})
	return out, err
}

func saleLines(t *table) ([]entity.SaleLine, error) {
	if err := t.require("sale_id", "product_id", "date", "quantity", "payment_method"); err != nil {
		return nil, err
	}
	out := make([]entity.SaleLine, 0, len(t.rows))
	err := t.each(func(c *cursor) {
		out = append(out, entity.SaleLine{
			SaleID:        c.str("sale_id"),
			ProductID:     c.str("product_id"),
			Date:          c.date("date"),
			Quantity:      c.decimal("quantity"),
			Discount:      c.decimal("discount"),
			PaymentMethod: c.str("payment_method"),
			UnitPrice:     c.nullDecimal("unit_price"),
			CostPrice:     c.nullDecimal("cost_price"),
			TaxRate:       c.nullDecimal("tax_rate"),
			Name:          c.str("name"),
			Category:      c.str("category"),
		})
	})
	return out, err
}

func movements(t *table) ([]entity.InventoryMovement, error) {
	if err := t.require("product_id", "date", "type", "quantity"); err != nil {
		return nil, err
	}
	out := make([]entity.InventoryMovement, 0, len(t.rows))
	err := t.each(func(c *cursor) {
		out = append(out, entity.InventoryMovement{
			ProductID: c.str("product_id"),
			Date:      c.date("date"),
			Type:      strings.ToLower(c.str("type")),
			Quantity:  c.decimal("quantity"),
		})
	})
	return out, err
}

func expenses(t *table) ([]entity.Expense, error) {
	if err := t.require("date", "category", "amount"); err != nil {
		return nil, err
	}
	out := make([]entity.Expense, 0, len(t.rows))
	err := t.each(func(c *cursor) {
		out = append(out, entity.Expense{
			Date:     c.date("date"),
			Category: c.str("category"),
			Amount:   c.decimal("amount"),
		})
	})
	return out, err
}
