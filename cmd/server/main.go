package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/payment-reconciler/internal/adapters/notifylog"
	"github.com/kevin07696/payment-reconciler/internal/adapters/postgres"
	"github.com/kevin07696/payment-reconciler/internal/config"
	reconciliationHandler "github.com/kevin07696/payment-reconciler/internal/handlers/reconciliation"
	"github.com/kevin07696/payment-reconciler/internal/services/reconciliation"
	"github.com/kevin07696/payment-reconciler/pkg/middleware"
	"github.com/kevin07696/payment-reconciler/pkg/observability"
	"github.com/kevin07696/payment-reconciler/pkg/shutdown"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting payment reconciler",
		zap.String("version", "0.1.0"),
		zap.String("shop_id", cfg.Gateway.ShopID),
		zap.Int("enabled_methods", len(cfg.Gateway.Methods)),
	)

	dbPool, err := initDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	logger.Info("Database connection established",
		zap.String("database", cfg.Database.Database),
	)

	db := postgres.NewDBExecutor(dbPool)
	orders := postgres.NewOrderRepository(db)
	notifyLog := notifylog.FanOut{
		notifylog.NewZapLogger(logger),
		postgres.NewNotificationLogRepository(db),
	}
	engine := reconciliation.NewEngine(orders, notifyLog, cfg.Gateway, logger)

	allowlist, err := middleware.NewSourceAllowlist(cfg.Server.NotifyAllowedIPs, logger)
	if err != nil {
		logger.Fatal("Invalid gateway source allowlist", zap.Error(err))
	}
	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst, logger)

	router := mux.NewRouter()
	router.Use(observability.HTTPMiddleware)
	router.Use(middleware.NewSecurityHeaders(cfg.Server.IsDevelopment()).Middleware)

	reconciliationHandler.NewHandler(engine, cfg.Gateway, logger).Register(router, reconciliationHandler.RouteGuards{
		Webhook: allowlist.Middleware,
		Return:  rateLimiter.Middleware,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	metricsServer := observability.StartMetricsServer(
		cfg.Server.MetricsPort,
		observability.NewHealthChecker(dbPool),
		logger,
	)

	go func() {
		logger.Info("HTTP server listening", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	// Registered in reverse stop order: servers drain before the pool closes
	sm := shutdown.NewManager(logger, time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	sm.RegisterNoErr("database", dbPool.Close)
	sm.RegisterNoErr("rate_limiter", rateLimiter.Shutdown)
	sm.RegisterHTTPServer("metrics", metricsServer)
	sm.RegisterHTTPServer("http", httpServer)
	sm.WaitForShutdown()
}

// initLogger initializes the zap logger
func initLogger(cfg *config.Config) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Logger.Development || cfg.Server.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}

// initDatabase initializes the PostgreSQL connection pool
func initDatabase(cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
