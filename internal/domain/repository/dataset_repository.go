package repository

import (
	"context"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

// DatasetSource carga las cinco tablas del negocio (productos, clientes, ventas,
// movimientos de inventario y gastos). Se invoca una sola vez al arrancar el proceso;
// las implementaciones son read-only.
type DatasetSource interface {
	Load(ctx context.Context) (*entity.Dataset, error)
}
