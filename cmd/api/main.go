package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tu-usuario/cardstock-pro/internal/application/approval"
	"github.com/tu-usuario/cardstock-pro/internal/application/inbox"
	"github.com/tu-usuario/cardstock-pro/internal/application/monitor"
	"github.com/tu-usuario/cardstock-pro/internal/application/stock"
	"github.com/tu-usuario/cardstock-pro/internal/application/summary"
	"github.com/tu-usuario/cardstock-pro/internal/application/usecase"
	"github.com/tu-usuario/cardstock-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/cardstock-pro/internal/infrastructure/rediscache"
	httpRouter "github.com/tu-usuario/cardstock-pro/internal/interfaces/http"
	"github.com/tu-usuario/cardstock-pro/pkg/config"
	"github.com/tu-usuario/cardstock-pro/pkg/logger"
)

// runMigrations aplica las migraciones de migrations/ al arrancar.
// Usa el driver database/sql de pgx; el pool de la app es aparte.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Msg("migraciones aplicadas")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient := rediscache.NewClient(cfg.Redis)
	defer func() { _ = redisClient.Close() }()
	cooldown := rediscache.NewCooldownStore(redisClient)

	// Repos de lectura atados al pool; las escrituras van por el TxRunner.
	cardRepo := postgres.NewCardRepository(pool)
	summaryRepo := postgres.NewStockSummaryRepository(pool)
	stationRepo := postgres.NewStationRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	inboxRepo := postgres.NewInboxRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	intakeUC := stock.NewIntakeUseCase(txRunner, catalogRepo)
	stockOutUC := stock.NewStockOutUseCase(txRunner, stationRepo)
	stockInUC := stock.NewStockInUseCase(txRunner)
	saleUC := stock.NewSaleUseCase(txRunner, catalogRepo)
	decisionUC := approval.NewDecisionUseCase(txRunner)
	inboxUC := inbox.New(inboxRepo)
	summaryUC := summary.New(summaryRepo, cardRepo, stationRepo, catalogRepo)
	lowStockUC := monitor.NewLowStockUseCase(
		summaryRepo, stationRepo, inboxRepo, cooldown,
		cfg.Monitor.DefaultMinStock, cfg.Monitor.AlertCooldown, log,
	)
	stationUC := usecase.NewStationUseCase(stationRepo)
	catalogUC := usecase.NewCatalogUseCase(catalogRepo)

	sweepUC := stock.NewExpirySweepUseCase(txRunner, cfg.Monitor.SweepBatchSize, log)
	go sweepUC.RunPeriodic(ctx, cfg.Monitor.SweepInterval)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CardStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		IntakeUC:   intakeUC,
		StockOutUC: stockOutUC,
		StockInUC:  stockInUC,
		SaleUC:     saleUC,
		DecisionUC: decisionUC,
		InboxUC:    inboxUC,
		SummaryUC:  summaryUC,
		LowStockUC: lowStockUC,
		StationUC:  stationUC,
		CatalogUC:  catalogUC,
		JWTSecret:  cfg.JWT.Secret,
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
	cancel() // detiene el barrido de expiración

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
