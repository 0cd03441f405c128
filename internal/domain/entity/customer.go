package entity

// Customer representa un cliente (customers.csv). No participa en los cálculos;
// se carga para tenerlo disponible en el contexto de datos.
type Customer struct {
	CustomerID string
	Name       string
	Email      string
	City       string
}
