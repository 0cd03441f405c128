package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto operativo (expenses.csv).
type Expense struct {
	Date     time.Time
	Category string
	Amount   decimal.Decimal
}
