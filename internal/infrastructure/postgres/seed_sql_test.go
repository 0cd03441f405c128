package postgres

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

func TestWriteSeedSQL_EscapaYUsaNull(t *testing.T) {
	d := decimal.RequireFromString
	day := time.Date(2025, 1, 2, 8, 15, 0, 0, time.UTC)
	ds := &entity.Dataset{
		Products: []entity.Product{
			{ProductID: "1", Name: "Pain d'épices", Category: "Pan", UnitPrice: d("3.5"), CostPrice: d("1.2")},
			{ProductID: "2", Name: "Tarta", Category: "Pastelería", UnitPrice: d("15"), CostPrice: d("6")},
		},
		Sales: []entity.SaleLine{
			{SaleID: "S1", ProductID: "1", Date: day, Quantity: d("2"), PaymentMethod: "cash",
				UnitPrice: decimal.NewNullDecimal(d("3"))},
		},
		Expenses: []entity.Expense{{Date: day, Category: "Luz", Amount: d("40")}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSeedSQL(&buf, ds))
	sql := buf.String()

	assert.Contains(t, sql, "TRUNCATE products, customers, sales, inventory_movements, expenses;")
	assert.Contains(t, sql, "'Pain d''épices'")
	assert.Contains(t, sql, "('1', 'Pain d''épices', 'Pan', 3.5, 1.2, 0, 0, 0),")
	assert.Contains(t, sql, "('2', 'Tarta', 'Pastelería', 15, 6, 0, 0, 0);")
	assert.Contains(t, sql, "('S1', '1', '2025-01-02 08:15:00', 2, 0, 'cash', 3, NULL, NULL, NULL, NULL);")
	assert.NotContains(t, sql, "INSERT INTO customers", "sin clientes no hay INSERT")
	assert.NotContains(t, sql, "INSERT INTO inventory_movements")
	assert.Contains(t, sql, "COMMIT;")
}
