package entity

// Dataset agrupa las cinco tablas cargadas al arrancar el proceso.
// Es de solo lectura: ningún cálculo la modifica.
type Dataset struct {
	Products  []Product
	Customers []Customer
	Sales     []SaleLine
	Movements []InventoryMovement
	Expenses  []Expense
}
