package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
)

// InventoryHandler expone el stock derivado del log de movimientos.
type InventoryHandler struct {
	uc *analytics.DashboardUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *analytics.DashboardUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetStock godoc
// @Summary      Stock actual por producto
// @Description  current_stock = initial_stock + entradas - salidas (puede ser negativo)
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockDTO
// @Security     BearerAuth
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetStock(c.Context()))
}

// GetLowStock godoc
// @Summary      Productos con stock en o por debajo del mínimo
// @Tags         inventory
// @Produce      json
// @Success      200  {array}  dto.StockDTO
// @Security     BearerAuth
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetLowStock(c.Context()))
}
