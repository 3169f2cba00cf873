package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/agendafacil/backend/internal/audit"
	"github.com/agendafacil/backend/internal/catalog"
	"github.com/agendafacil/backend/internal/config"
	dbpkg "github.com/agendafacil/backend/internal/db"
	infraRepo "github.com/agendafacil/backend/internal/infra/repository"
	"github.com/agendafacil/backend/internal/logging"
	"github.com/agendafacil/backend/internal/middleware"
	"github.com/agendafacil/backend/internal/routes"
	"github.com/agendafacil/backend/internal/telemetry"
)

func main() {
	cfg := config.Load()

	logger := logging.New(telemetry.ServiceName, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		logger.Error("otel setup failed", "err", err)
		os.Exit(1)
	}

	// --------------------------------------------------
	// Database
	// --------------------------------------------------
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		logger.Error("database unavailable", "err", err)
		os.Exit(1)
	}
	if err := dbpkg.Ping(ctx, db); err != nil {
		logger.Error("database ping failed", "err", err)
		os.Exit(1)
	}
	if err := dbpkg.Migrate(db); err != nil {
		logger.Error("migration failed", "err", err)
		os.Exit(1)
	}

	// --------------------------------------------------
	// Public catalog
	// --------------------------------------------------
	var store catalog.Store
	switch cfg.CatalogStore {
	case "memory":
		store = catalog.NewMemoryStore()
	default:
		gormStore := infraRepo.NewCatalogGormStore(db)
		if err := gormStore.Seed(ctx); err != nil {
			logger.Error("catalog seed failed", "err", err)
			os.Exit(1)
		}
		store = gormStore
	}

	// --------------------------------------------------
	// Rate limiting: redis when configured
	// --------------------------------------------------
	var limiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.RateLimit, cfg.RateLimitWindow)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "err", err)
			os.Exit(1)
		}
		rdb = redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, using in-process rate limiter", "err", err)
		} else {
			limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimit, cfg.RateLimitWindow)
		}
	}

	dispatcher := audit.NewDispatcher(audit.New(db))

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Logger:  logger,
		Catalog: store,
		Audit:   dispatcher,
		Limiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "catalog_store", cfg.CatalogStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", "err", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("otel shutdown failed", "err", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server exited")
}
