package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
	"github.com/jhoicas/pyme-dashboard/internal/domain/repository"
)

var _ repository.DatasetSource = (*DatasetRepo)(nil)

// DatasetRepo lee las cinco tablas del negocio desde PostgreSQL.
// Las columnas reproducen las de los archivos CSV; los opcionales se resuelven con COALESCE.
type DatasetRepo struct {
	pool *pgxpool.Pool
}

// NewDatasetRepository construye el adaptador.
func NewDatasetRepository(pool *pgxpool.Pool) *DatasetRepo {
	return &DatasetRepo{pool: pool}
}

// Load carga el dataset completo. Solo lectura.
func (r *DatasetRepo) Load(ctx context.Context) (*entity.Dataset, error) {
	ds := &entity.Dataset{}
	var err error
	if ds.Products, err = r.products(ctx); err != nil {
		return nil, err
	}
	if ds.Customers, err = r.customers(ctx); err != nil {
		return nil, err
	}
	if ds.Sales, err = r.sales(ctx); err != nil {
		return nil, err
	}
	if ds.Movements, err = r.movements(ctx); err != nil {
		return nil, err
	}
	if ds.Expenses, err = r.expenses(ctx); err != nil {
		return nil, err
	}
	return ds, nil
}

func (r *DatasetRepo) products(ctx context.Context) ([]entity.Product, error) {
	const query = `
	SELECT
	    product_id::TEXT,
	    COALESCE(name, ''),
	    COALESCE(category, ''),
	    COALESCE(unit_price, 0),
	    COALESCE(cost_price, 0),
	    COALESCE(tax_rate, 0),
	    COALESCE(initial_stock, 0),
	    COALESCE(min_stock, 0)
	FROM products
	ORDER BY product_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.products: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Category, &p.UnitPrice, &p.CostPrice,
			&p.TaxRate, &p.InitialStock, &p.MinStock); err != nil {
			return nil, fmt.Errorf("dataset.products scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *DatasetRepo) customers(ctx context.Context) ([]entity.Customer, error) {
	const query = `
	SELECT customer_id::TEXT, COALESCE(name, ''), COALESCE(email, ''), COALESCE(city, '')
	FROM customers
	ORDER BY customer_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.customers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Customer, error) {
		var c entity.Customer
		err := row.Scan(&c.CustomerID, &c.Name, &c.Email, &c.City)
		return c, err
	})
}

// sales: unit_price, cost_price, tax_rate, name y category de la venta son opcionales
// (NULL = usar el valor del producto).
func (r *DatasetRepo) sales(ctx context.Context) ([]entity.SaleLine, error) {
	const query = `
	SELECT
	    sale_id::TEXT,
	    product_id::TEXT,
	    date,
	    COALESCE(quantity, 0),
	    COALESCE(discount, 0),
	    COALESCE(payment_method, ''),
	    unit_price,
	    cost_price,
	    tax_rate,
	    COALESCE(name, ''),
	    COALESCE(category, '')
	FROM sales
	ORDER BY date, sale_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.sales: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.SaleLine, error) {
		var s entity.SaleLine
		err := row.Scan(&s.SaleID, &s.ProductID, &s.Date, &s.Quantity, &s.Discount, &s.PaymentMethod,
			&s.UnitPrice, &s.CostPrice, &s.TaxRate, &s.Name, &s.Category)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("dataset.sales scan: %w", err)
	}
	return lines, nil
}

func (r *DatasetRepo) movements(ctx context.Context) ([]entity.InventoryMovement, error) {
	const query = `
	SELECT product_id::TEXT, date, type, COALESCE(quantity, 0)
	FROM inventory_movements
	ORDER BY date`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.movements: %w", err)
	}
	movs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.InventoryMovement, error) {
		var m entity.InventoryMovement
		err := row.Scan(&m.ProductID, &m.Date, &m.Type, &m.Quantity)
		m.Type = strings.ToLower(strings.TrimSpace(m.Type))
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("dataset.movements scan: %w", err)
	}
	return movs, nil
}

func (r *DatasetRepo) expenses(ctx context.Context) ([]entity.Expense, error) {
	const query = `
	SELECT date, COALESCE(category, ''), COALESCE(amount, 0)
	FROM expenses
	ORDER BY date`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("dataset.expenses: %w", err)
	}
	exps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Expense, error) {
		var e entity.Expense
		err := row.Scan(&e.Date, &e.Category, &e.Amount)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("dataset.expenses scan: %w", err)
	}
	return exps, nil
}
