package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/SscSPs/money_field_kit/internal/demo/handlers"
	"github.com/SscSPs/money_field_kit/internal/demo/ports"
	"github.com/SscSPs/money_field_kit/internal/demo/repository/pgsql"
	"github.com/SscSPs/money_field_kit/internal/demo/service"
	"github.com/SscSPs/money_field_kit/internal/middleware"
	"github.com/SscSPs/money_field_kit/internal/platform/config"
	"github.com/SscSPs/money_field_kit/pkg/currency"
	"github.com/SscSPs/money_field_kit/pkg/database"
	"github.com/SscSPs/money_field_kit/pkg/exchange"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Pricing Demo API
// @version 1.0
// @description Product catalog demo for currency-aware money fields. Money attributes travel as an amount plus a "_currency" sibling key.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Amounts that arrive without a currency get denominated in this one.
	if err := currency.SetDefault(cfg.DefaultCurrency); err != nil {
		logger.Error("Failed to set default currency", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	// Defer closing the connection pool
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	// --- Run Database Migrations ---
	logger.Info("Running database migrations...")
	// Open a temporary standard sql.DB connection for migrations
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	// Create a postgres driver instance for migrate
	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	migrationsPath := "file://migrations"

	m, err := migrate.NewWithDatabaseInstance(
		migrationsPath,
		"postgres",
		driver,
	)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Apply all available "up" migrations
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	// --- End Database Migrations ---

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT format", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)
	r.Use(middleware.RateLimit(ipLimiter))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Exchange rates: live backend when credentials exist, static seed
	// rates otherwise. Rates persist in PostgreSQL either way.
	var backend exchange.Backend
	if cfg.OXRAppID != "" {
		backend = &exchange.OpenExchangeRatesBackend{AppID: cfg.OXRAppID, BaseURL: cfg.OXRBaseURL}
	} else {
		// The static table quotes USD; other base currencies need live credentials.
		backend = &exchange.StaticBackend{Base: "USD", Rates: seedRates()}
	}
	rateStore := exchange.NewPgxStore(dbPool)
	if err := exchange.Update(context.Background(), backend, rateStore, cfg.BaseCurrency); err != nil {
		// Previously stored rates keep serving, so a failed fetch is not fatal.
		logger.Warn("Failed to fetch initial exchange rates", slog.String("backend", backend.Name()), slog.String("error", err.Error()))
	}
	converter := exchange.NewConverter(rateStore, backend.Name(), cfg.BaseCurrency)

	productRepo, err := pgsql.NewPgxProductRepository(dbPool)
	if err != nil {
		logger.Error("Failed to build product repository", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := &ports.ServiceContainer{
		Product: service.NewProductService(productRepo, converter),
		Rates:   service.NewRatesService(rateStore, backend, converter, cfg.BaseCurrency),
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// seedRates is the offline demo rate table, quoted against USD.
func seedRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
		"JPY": decimal.RequireFromString("155.4"),
		"CAD": decimal.RequireFromString("1.36"),
		"AUD": decimal.RequireFromString("1.52"),
		"INR": decimal.RequireFromString("83.1"),
	}
}
