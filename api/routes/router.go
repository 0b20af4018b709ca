package routes

import (
	"log/slog"

	"github.com/DSACMS/enrollment-form-api/api/handlers"
	"github.com/DSACMS/enrollment-form-api/api/middleware"
	"github.com/DSACMS/enrollment-form-api/pkg/catalog"
	"github.com/DSACMS/enrollment-form-api/pkg/circuitbreaker"
	"github.com/DSACMS/enrollment-form-api/pkg/form"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type Deps struct {
	Forms   *form.Manager
	Catalog catalog.Catalog
	// Redis backs /status. Breakers are only used when it is set.
	Redis  *redis.Client
	Logger *slog.Logger
	// NewBreaker overrides the redis breaker, for tests.
	NewBreaker func(name string) circuitbreaker.Breaker
}

func RegisterRoutes(app fiber.Router, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	newBreaker := deps.NewBreaker
	if newBreaker == nil {
		newBreaker = func(name string) circuitbreaker.Breaker {
			if deps.Redis == nil {
				return circuitbreaker.Nop{}
			}
			return circuitbreaker.NewRedisBreaker(deps.Redis, name, circuitbreaker.DefaultOptions(), logger)
		}
	}
	withCB := middleware.WithCircuitBreaker(newBreaker)

	app.Get("/", handlers.Index())

	if deps.Redis != nil {
		app.Get("/status", withCB(handlers.GetRDBStatus(deps.Redis)))
	}

	api := app.Group("/api")

	api.Get("/courses", handlers.ListCourses(deps.Catalog))
	api.Post("/quote", handlers.Quote(deps.Forms.Form()))

	fh := handlers.NewFormHandlers(deps.Forms, logger)

	api.Post("/candidates/:id/form", withCB(fh.Open()))

	api.Get("/forms/:session", withCB(fh.Get()))
	api.Patch("/forms/:session/fields", withCB(fh.SetField()))
	api.Put("/forms/:session/partial-amount", withCB(fh.SetPartialAmount()))
	api.Put("/forms/:session/courses", withCB(fh.SelectCourse()))
	api.Post("/forms/:session/next", withCB(fh.Next()))
	api.Post("/forms/:session/back", withCB(fh.Back()))
	api.Delete("/forms/:session/notification", withCB(fh.DismissNotification()))
}
