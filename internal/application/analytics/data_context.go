package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
	"github.com/jhoicas/pyme-dashboard/internal/domain/repository"
)

// DataContext contexto de datos de solo lectura, construido una vez al arrancar el proceso
// y compartido por todas las peticiones. Nada lo modifica después de la carga.
type DataContext struct {
	ds *entity.Dataset
}

// NewDataContext envuelve un dataset ya cargado. Un dataset nil equivale a tablas vacías.
func NewDataContext(ds *entity.Dataset) *DataContext {
	if ds == nil {
		ds = &entity.Dataset{}
	}
	return &DataContext{ds: ds}
}

// LoadDataContext carga el dataset desde la fuente indicada.
func LoadDataContext(ctx context.Context, src repository.DatasetSource) (*DataContext, error) {
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargar dataset: %w", err)
	}
	return NewDataContext(ds), nil
}

func (d *DataContext) Products() []entity.Product            { return d.ds.Products }
func (d *DataContext) Customers() []entity.Customer          { return d.ds.Customers }
func (d *DataContext) Sales() []entity.SaleLine              { return d.ds.Sales }
func (d *DataContext) Movements() []entity.InventoryMovement { return d.ds.Movements }
func (d *DataContext) Expenses() []entity.Expense            { return d.ds.Expenses }
