package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/growid-bridge/internal/api/http/handlers"
	"github.com/spec-kit/growid-bridge/internal/config"
	"github.com/spec-kit/growid-bridge/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	GrowID    *handlers.GrowIDHandler
	Metrics   *observability.Metrics
	StaticDir string
}

// NewApp builds the fiber application.
func NewApp(cfg config.AppConfig) *fiber.App {
	fiberCfg := fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
	}
	if cfg.TrustProxy {
		fiberCfg.ProxyHeader = fiber.HeaderXForwardedFor
	}
	return fiber.New(fiberCfg)
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.All(handlers.PathLogin, cfg.GrowID.Login)
	app.All(handlers.PathCheckToken, cfg.GrowID.CheckToken)
	app.All(handlers.PathLegacyCheckToken, cfg.GrowID.LegacyCheckToken)

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}
}
