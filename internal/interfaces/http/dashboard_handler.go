package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
	"github.com/jhoicas/pyme-dashboard/pkg/logger"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetFilters godoc
// @Summary      Opciones de filtro (categorías, medios de pago, rango de fechas)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.FilterOptionsDTO
// @Security     BearerAuth
// @Router       /api/dashboard/filters [get]
func (h *DashboardHandler) GetFilters(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetFilterOptions(c.Context()))
}

// GetInfo godoc
// @Summary      Filas cargadas por tabla
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DatasetInfoDTO
// @Security     BearerAuth
// @Router       /api/dashboard/info [get]
func (h *DashboardHandler) GetInfo(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetDatasetInfo(c.Context()))
}

// GetSummary devuelve KPIs, series y rankings del período filtrado.
// GET /api/dashboard/summary?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD&category=all&payment_method=all
//
// Sin fechas se usa el rango completo de las ventas. Los gastos solo se filtran por fecha.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	var req dto.DashboardFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	summary, err := h.uc.GetSummary(c.Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}

// GetSales godoc
// @Summary      Líneas de venta enriquecidas del período filtrado
// @Tags         dashboard
// @Produce      json
// @Param        start_date      query  string  false  "YYYY-MM-DD"
// @Param        end_date        query  string  false  "YYYY-MM-DD"
// @Param        category        query  string  false  "all o categoría"
// @Param        payment_method  query  string  false  "all o medio de pago"
// @Success      200  {object}  dto.SalesListDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/dashboard/sales [get]
func (h *DashboardHandler) GetSales(c *fiber.Ctx) error {
	var req dto.DashboardFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	list, err := h.uc.GetSales(c.Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(list)
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
}
