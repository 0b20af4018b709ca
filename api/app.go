package api

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/DSACMS/enrollment-form-api/api/middleware"
	"github.com/DSACMS/enrollment-form-api/api/routes"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
	"github.com/DSACMS/enrollment-form-api/pkg/circuitbreaker"
	"github.com/DSACMS/enrollment-form-api/pkg/core"
	"github.com/DSACMS/enrollment-form-api/pkg/form"

	"go.opentelemetry.io/otel/codes"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	slogfiber "github.com/samber/slog-fiber"
)

func errorHandler(logger *slog.Logger, otel core.OtelService) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var e *fiber.Error
		if !errors.As(err, &e) {
			logger.ErrorContext(ctx.UserContext(), "unhandled error", slog.Any("error", err))
			e = fiber.ErrInternalServerError
		}

		span := otel.SpanFromContext(ctx.UserContext())
		span.RecordError(err)
		span.SetStatus(codes.Error, e.Message)

		logger.ErrorContext(ctx.UserContext(), "fiber error",
			slog.Int("code", e.Code),
			slog.String("message", e.Message),
		)

		return ctx.
			Status(e.Code).
			SendString(e.Message)
	}
}

func stackTraceHandler(logger *slog.Logger) func(*fiber.Ctx, any) {
	return func(c *fiber.Ctx, e any) {
		logger.ErrorContext(
			c.UserContext(),
			"panic!",
			slog.String("stack", string(debug.Stack())),
			slog.Any("err", e),
		)
	}
}

type Config struct {
	Otel   core.OtelService
	Logger *slog.Logger
	core.Config

	Forms   *form.Manager
	Catalog catalog.Catalog
	// Optional; enables /status and the redis circuit breakers.
	Redis *redis.Client
	// Overrides the redis breakers, for tests.
	NewBreaker func(name string) circuitbreaker.Breaker
}

func New(cfg *Config) (*fiber.App, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Otel == nil {
		cfg.Otel = core.NewNoopOtelService()
	}

	app := fiber.New(fiber.Config{
		AppName:      "enrollment-form-api",
		ErrorHandler: errorHandler(cfg.Logger, cfg.Otel),
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace:  true,
		StackTraceHandler: stackTraceHandler(cfg.Logger),
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "*",
		AllowMethods: "*",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(slogfiber.NewWithConfig(
		cfg.Logger,
		slogfiber.Config{
			WithRequestID: true,
			WithSpanID:    true,
			WithTraceID:   true,
		},
	))

	if !cfg.SkipAuth {
		verifier, err := middleware.NewCognitoVerifier(middleware.CognitoConfig{
			Region:        cfg.Cognito.Region,
			UserPoolID:    cfg.Cognito.UserPoolID,
			ClientID:      cfg.Cognito.AppClientID,
			RequiredGroup: cfg.Cognito.RequiredGroup,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cognito middleware: %w", err)
		}
		app.Use(verifier.FiberMiddleware())
	}

	routes.RegisterRoutes(app, routes.Deps{
		Forms:      cfg.Forms,
		Catalog:    cfg.Catalog,
		Redis:      cfg.Redis,
		Logger:     cfg.Logger,
		NewBreaker: cfg.NewBreaker,
	})

	return app, nil
}
