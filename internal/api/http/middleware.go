package http

import (
	"context"
	"errors"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/growid-bridge/internal/api/dto"
	"github.com/spec-kit/growid-bridge/internal/config"
	"github.com/spec-kit/growid-bridge/internal/observability"
	apperrors "github.com/spec-kit/growid-bridge/pkg/util"
)

// MiddlewareConfig bundles dependencies for global middlewares. A nil
// LimiterStorage keeps rate-limit counters in memory.
type MiddlewareConfig struct {
	Logger           *zap.Logger
	Metrics          *observability.Metrics
	Timeout          time.Duration
	CORSAllowOrigins string
	RateLimit        config.RateLimitConfig
	LimiterStorage   fiber.Storage
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(observability.RequestLogger(logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(logger, cfg.Metrics))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))
	if cfg.RateLimit.Enabled {
		app.Use(rateLimitMiddleware(cfg.RateLimit, cfg.LimiterStorage))
	}
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func rateLimitMiddleware(cfg config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/health/") || c.Path() == "/metrics"
		},
		Max:        cfg.Max,
		Expiration: cfg.Window(),
		KeyGenerator: func(c *fiber.Ctx) string {
			// The proxy header is empty for direct connections.
			if ip := c.IP(); ip != "" {
				return ip
			}
			return c.Context().RemoteIP().String()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewRateLimited()
		},
		Storage: storage,
	})
}

// errorHandlingMiddleware converts every error into the {status, message}
// shape. Causes are logged, never returned.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
				} else {
					logger.Debug("request rejected", zap.String("path", c.Path()), zap.String("code", domainErr.Code))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(dto.NewErrorResponse(domainErr.Message))
				err = nil
			}
		}()
		return c.Next()
	}
}

func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.NewDomainError("HTTP_"+strconv.Itoa(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}
	return apperrors.ToDomainError(err)
}
