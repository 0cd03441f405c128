package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
	"github.com/jhoicas/pyme-dashboard/pkg/logger"
)

// Nombres de los archivos descargados.
const (
	SalesCSVFilename  = "ventas_filtradas.csv"
	ReportPDFFilename = "reporte_dashboard.pdf"
)

// ExportHandler descargas de las ventas filtradas (CSV) y del resumen (PDF).
type ExportHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, log: log}
}

// SalesCSV godoc
// @Summary      Descargar las ventas filtradas en CSV
// @Tags         export
// @Produce      text/csv
// @Param        start_date      query  string  false  "YYYY-MM-DD"
// @Param        end_date        query  string  false  "YYYY-MM-DD"
// @Param        category        query  string  false  "all o categoría"
// @Param        payment_method  query  string  false  "all o medio de pago"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse  "EXPORT_DISABLED en modo demo"
// @Security     BearerAuth
// @Router       /api/export/sales.csv [get]
func (h *ExportHandler) SalesCSV(c *fiber.Ctx) error {
	var req dto.DashboardFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ExportSalesCSV(c.Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Attachment(SalesCSVFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(out)
}

// ReportPDF godoc
// @Summary      Descargar el resumen del dashboard en PDF
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse  "EXPORT_DISABLED en modo demo"
// @Security     BearerAuth
// @Router       /api/export/report.pdf [get]
func (h *ExportHandler) ReportPDF(c *fiber.Ctx) error {
	var req dto.DashboardFilterRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ExportReportPDF(c.Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Attachment(ReportPDFFilename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(out)
}
