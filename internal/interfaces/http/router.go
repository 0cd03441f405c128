package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
	"github.com/jhoicas/pyme-dashboard/internal/application/auth"
	"github.com/jhoicas/pyme-dashboard/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Gate      *auth.Gate
	Dashboard *analytics.DashboardUseCase
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.Gate, log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/totp", authHandler.VerifyTOTP)
	authGroup.Get("/status", authHandler.Status)

	// Rutas protegidas (token de etapa authorized, o gate abierto)
	protected := api.Group("/", RequireAuthorized(deps.Gate))

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Dashboard, log)
	dashboard.Get("/filters", dashboardHandler.GetFilters)
	dashboard.Get("/info", dashboardHandler.GetInfo)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/sales", dashboardHandler.GetSales)

	// Inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Dashboard)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	invGroup.Get("/low-stock", inventoryHandler.GetLowStock)

	// Exportaciones (deshabilitadas en modo demo)
	exports := protected.Group("/export")
	exportHandler := NewExportHandler(deps.Dashboard, log)
	exports.Get("/sales.csv", exportHandler.SalesCSV)
	exports.Get("/report.pdf", exportHandler.ReportPDF)
}
