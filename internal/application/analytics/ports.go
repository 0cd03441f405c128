package analytics

import (
	"context"
	"io"

	"github.com/jhoicas/pyme-dashboard/internal/application/dto"
	"github.com/jhoicas/pyme-dashboard/internal/domain/entity"
)

// SalesExporter escribe las líneas de venta enriquecidas en un formato de descarga (CSV).
type SalesExporter interface {
	WriteSales(w io.Writer, lines []entity.EnrichedSaleLine) error
}

// ReportPDFGenerator genera el reporte PDF del resumen del dashboard.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, summary *dto.DashboardSummaryDTO) ([]byte, error)
}
