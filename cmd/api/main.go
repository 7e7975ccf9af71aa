package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/growid-bridge/internal/api/http"
	"github.com/spec-kit/growid-bridge/internal/api/http/handlers"
	"github.com/spec-kit/growid-bridge/internal/auth"
	"github.com/spec-kit/growid-bridge/internal/config"
	"github.com/spec-kit/growid-bridge/internal/events"
	"github.com/spec-kit/growid-bridge/internal/observability"
	"github.com/spec-kit/growid-bridge/internal/persistence"
	"github.com/spec-kit/growid-bridge/internal/service"
	"github.com/spec-kit/growid-bridge/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	sessions := service.NewSessionService(service.SessionDependencies{
		Tokens:     auth.NewTokenManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL()),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	middlewareCfg := httptransport.MiddlewareConfig{
		Logger:           logger,
		Metrics:          metrics,
		Timeout:          cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
		RateLimit:        cfg.RateLimit,
	}
	if redis.Enabled() {
		middlewareCfg.LimiterStorage = persistence.NewLimiterStorage(redis.Client, cfg.Redis.KeyPrefix)
	}

	app := httptransport.NewApp(cfg.App)
	httptransport.RegisterMiddlewares(app, middlewareCfg)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		GrowID:    handlers.NewGrowIDHandler(sessions),
		Metrics:   metrics,
		StaticDir: cfg.App.StaticDir,
	})

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
