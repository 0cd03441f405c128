package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "in"  // entrada
	MovementTypeOUT = "out" // salida
)

// InventoryMovement representa un movimiento del log de inventario (append-only).
// Quantity es siempre positiva; el signo lo da Type.
type InventoryMovement struct {
	ProductID string
	Date      time.Time
	Type      string
	Quantity  decimal.Decimal
}
