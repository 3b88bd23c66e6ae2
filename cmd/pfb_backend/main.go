package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pocketfin/pocket_finance_backend/internal/adapters/database/pgsql"
	portssvc "github.com/pocketfin/pocket_finance_backend/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_backend/internal/core/services"
	"github.com/pocketfin/pocket_finance_backend/internal/handlers"
	"github.com/pocketfin/pocket_finance_backend/internal/middleware"
	"github.com/pocketfin/pocket_finance_backend/internal/utils"
	"github.com/pocketfin/pocket_finance_backend/pkg/config"
	"github.com/pocketfin/pocket_finance_backend/pkg/database"
)

// @title Pocket Finance Backend API
// @version 1.0
// @description Personal finance ledger: wallets, transactions, budgets, goals, and reports.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(corsMiddleware(cfg))
	r.Use(rateLimitMiddleware(logger, cfg.RateLimit))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, buildServices(dbPool))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories into the service container.
func buildServices(dbPool *pgxpool.Pool) *portssvc.ServiceContainer {
	walletRepo := pgsql.NewWalletRepository(dbPool)
	txnRepo := pgsql.NewTransactionRepository(dbPool)
	budgetRepo := pgsql.NewBudgetRepository(dbPool)
	goalRepo := pgsql.NewGoalRepository(dbPool)
	reportingRepo := pgsql.NewReportingRepository(dbPool)
	userRepo := pgsql.NewUserRepository(dbPool)

	return &portssvc.ServiceContainer{
		User:        services.NewUserService(userRepo),
		Wallet:      services.NewWalletService(walletRepo),
		Transaction: services.NewTransactionService(txnRepo, walletRepo, goalRepo),
		Budget:      services.NewBudgetService(budgetRepo),
		Goal:        services.NewGoalService(goalRepo, walletRepo),
		Reporting:   services.NewReportingService(reportingRepo, walletRepo, budgetRepo),
	}
}

// runMigrations applies file migrations over a temporary database/sql
// connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return cors.New(corsCfg)
}

func rateLimitMiddleware(logger *slog.Logger, rateSpec string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(rateSpec)
	if err != nil {
		logger.Warn("Invalid rate limit, defaulting to 120-M", slog.String("value", rateSpec))
		rate, _ = limiter.NewRateFromFormatted("120-M")
	}
	return middleware.RateLimit(limiter.New(memorystore.NewStore(), rate))
}
