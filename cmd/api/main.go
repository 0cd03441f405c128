package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pyme-dashboard/internal/application/analytics"
	"github.com/jhoicas/pyme-dashboard/internal/application/auth"
	"github.com/jhoicas/pyme-dashboard/internal/domain/repository"
	"github.com/jhoicas/pyme-dashboard/internal/infrastructure/csvsource"
	"github.com/jhoicas/pyme-dashboard/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/pyme-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/pyme-dashboard/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pyme-dashboard/internal/interfaces/http"
	"github.com/jhoicas/pyme-dashboard/pkg/config"
	"github.com/jhoicas/pyme-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.Data.Source).
		Bool("demo_mode", cfg.App.DemoMode).
		Msg("iniciando aplicación")

	// Dataset: se carga una sola vez y no se modifica mientras el proceso vive.
	ctx := context.Background()
	var (
		src  repository.DatasetSource
		pool *pgxpool.Pool
	)
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		src = postgres.NewDatasetRepository(pool)
	default:
		csvSrc, err := csvsource.NewSource(cfg.Data.Dir, csvsource.WithEncoding(cfg.Data.Encoding))
		if err != nil {
			log.Fatal().Err(err).Msg("fuente CSV")
		}
		src = csvSrc
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, 60*time.Second)
	data, err := analytics.LoadDataContext(loadCtx, src)
	cancelLoad()
	if pool != nil {
		// El pool solo se usa para la carga inicial.
		pool.Close()
	}
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("carga del dataset")
	}
	dashboardUC := analytics.NewDashboardUseCase(data, analytics.Options{
		BusinessName:   cfg.App.BusinessName,
		DemoMode:       cfg.App.DemoMode,
		Locale:         cfg.Display.Locale,
		CurrencySymbol: cfg.Display.CurrencySymbol,
	}, export.NewCSVWriter(), infrapdf.NewMarotoPDFGenerator(analytics.NewMoneyFormatter(cfg.Display.Locale, cfg.Display.CurrencySymbol)))

	info := dashboardUC.GetDatasetInfo(ctx)
	log.Info().
		Int("products", info.Products).
		Int("customers", info.Customers).
		Int("sales", info.Sales).
		Int("movements", info.Movements).
		Int("expenses", info.Expenses).
		Msg("dataset cargado")

	gate, err := auth.NewGate(auth.GateConfig{
		Password:     cfg.Gate.Password,
		PasswordHash: cfg.Gate.PasswordHash,
		TOTPSecret:   cfg.Gate.TOTPSecret,
		TOTPIssuer:   cfg.Gate.TOTPIssuer,
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("control de acceso")
	}
	if gate.Open() {
		log.Warn().Msg("sin APP_PASSWORD: el dashboard es público")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    cfg.App.BusinessName + " API",
		}))
	} else {
		log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Gate:      gate,
		Dashboard: dashboardUC,
		Log:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
