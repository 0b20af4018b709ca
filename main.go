package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DSACMS/enrollment-form-api/api"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
	"github.com/DSACMS/enrollment-form-api/pkg/circuitbreaker"
	"github.com/DSACMS/enrollment-form-api/pkg/core"
	"github.com/DSACMS/enrollment-form-api/pkg/form"
	redisLocal "github.com/DSACMS/enrollment-form-api/pkg/redis"
	"github.com/DSACMS/enrollment-form-api/pkg/update"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLogger := core.NewLogger(core.DefaultConfig())

	if err := core.LoadEnv(); err != nil {
		bootLogger.Debug("env files not loaded", slog.Any("error", err))
	}

	cfg, err := core.NewConfigFromEnv()
	if err != nil {
		bootLogger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	otelService, err := core.NewOtelService(ctx, &cfg)
	if err != nil {
		bootLogger.Warn("otel unavailable, continuing without telemetry", slog.Any("error", err))
		otelService = core.NewNoopOtelService()
	}

	logger := core.NewLoggerWithOtel(cfg, otelService)
	slog.SetDefault(logger)
	defer otelService.Shutdown(context.Background(), logger)

	_, span := otel.Tracer("enrollment-form-api").Start(ctx, "startup")
	span.AddEvent("Starting up")
	span.End()

	app, err := buildApp(ctx, cfg, otelService, logger)
	if err != nil {
		logger.Error("failed to build app", slog.Any("error", err))
		return
	}

	if err := runServer(ctx, app, cfg.Addr()); err != nil {
		logger.Error("server error", slog.Any("error", err))
	}
}

// sessionBackend is the state shared through redis. Without REDIS_ADDR the
// sessions live in memory and the update breaker never trips.
type sessionBackend struct {
	rdb     *redis.Client
	store   form.Store
	breaker circuitbreaker.Breaker
}

func newSessionBackend(ctx context.Context, cfg core.Config, logger *slog.Logger) sessionBackend {
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR empty, form sessions are kept in memory")
		return sessionBackend{
			store:   form.NewMemoryStore(),
			breaker: circuitbreaker.Nop{},
		}
	}

	rdb := redisLocal.NewClient(cfg.Redis, logger)
	if err := redisLocal.Ping(ctx, rdb); err != nil {
		logger.Warn("redis not reachable at startup", slog.Any("error", err))
	}

	return sessionBackend{
		rdb:     rdb,
		store:   form.NewRedisStore(rdb, cfg.Form.SessionTTL),
		breaker: circuitbreaker.NewRedisBreaker(rdb, "update-api", circuitbreaker.DefaultOptions(), logger),
	}
}

func buildApp(ctx context.Context, cfg core.Config, otelService core.OtelService, logger *slog.Logger) (*fiber.App, error) {
	backend := newSessionBackend(ctx, cfg, logger)

	courses := catalog.Load(ctx, cfg.Catalog.DatabaseURL, logger)

	updater := update.New(&cfg.UpdateAPI, update.Options{
		Logger:  logger,
		Breaker: backend.breaker,
	})

	f := form.New(form.Deps{
		Catalog: courses,
		Updater: updater,
		Logger:  logger,
	}, form.Options{
		GatePersonalStep: cfg.Form.GatePersonalStep,
		RedirectPath:     cfg.Form.RedirectPath,
		RedirectDelay:    cfg.Form.RedirectDelay,
		NotificationTTL:  cfg.Form.NotificationTTL,
	})

	return api.New(&api.Config{
		Otel:    otelService,
		Logger:  logger,
		Config:  cfg,
		Forms:   form.NewManager(f, backend.store, logger),
		Catalog: courses,
		Redis:   backend.rdb,
	})
}

func runServer(ctx context.Context, app *fiber.App, addr string) error {
	srvErr := make(chan error, 1)

	go func() {
		srvErr <- app.Listen(addr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
