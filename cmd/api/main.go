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
	"github.com/jhoicas/ventas-ledger/internal/application/analytics"
	"github.com/jhoicas/ventas-ledger/internal/application/auth"
	"github.com/jhoicas/ventas-ledger/internal/application/ledger"
	"github.com/jhoicas/ventas-ledger/internal/application/usecase"
	infracache "github.com/jhoicas/ventas-ledger/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/ventas-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ventas-ledger/internal/interfaces/http"
	"github.com/jhoicas/ventas-ledger/pkg/config"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
)

// reportCache une lectura e invalidación; la implementa *cache.ReportCache.
type reportCache interface {
	analytics.ReportCache
	Invalidate(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	// Días calendario de reportes y ventas en la zona configurada (la misma de la sesión SQL).
	time.Local = cfg.App.Location

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Caché de reportes opcional: sin REDIS_ADDR los reportes van siempre a la BD.
	var cache reportCache
	if cfg.Redis.Enabled() {
		client, err := infracache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, reportes sin caché")
		} else {
			defer client.Close()
			cache = infracache.NewReportCache(client, cfg.Redis.TTL)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché de reportes activa")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	exportRepo := postgres.NewExportRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout)

	// Un nil tipado en una interfaz no es nil: se pasa nil explícito cuando no hay caché.
	var (
		ledgerInv ledger.ReportInvalidator
		crudInv   usecase.CacheInvalidator
		reportC   analytics.ReportCache
	)
	if cache != nil {
		ledgerInv, crudInv, reportC = cache, cache, cache
	}

	ledgerUC := ledger.NewUseCase(txRunner, saleRepo, paymentRepo, customerRepo, ledgerInv, log.Named("ledger"))
	statementUC := ledger.NewStatementUseCase(ledgerUC, infrapdf.NewMarotoPDFGenerator())
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, crudInv, log.Named("catalog"))
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, crudInv, log.Named("expenses"))
	userUC := usecase.NewUserUseCase(userRepo)
	exportUC := analytics.NewExportUseCase(exportRepo)
	reportUC := analytics.NewReportUseCase(reportRepo, saleRepo, reportC, log.Named("reports"))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		LedgerUC:    ledgerUC,
		StatementUC: statementUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		CustomerUC:  customerUC,
		ExpenseUC:   expenseUC,
		ReportUC:    reportUC,
		UserUC:      userUC,
		ExportUC:    exportUC,
		JWTSecret:   cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
