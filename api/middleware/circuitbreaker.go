package middleware

import (
	"errors"
	"sync"

	"github.com/DSACMS/enrollment-form-api/pkg/circuitbreaker"
	"github.com/gofiber/fiber/v2"
)

// WithCircuitBreaker guards a handler with one breaker per route. Server
// errors returned by the handler count as failures.
func WithCircuitBreaker(newBreaker func(name string) circuitbreaker.Breaker) func(fiber.Handler) fiber.Handler {
	var mu sync.RWMutex
	breakers := make(map[string]circuitbreaker.Breaker)

	getBreaker := func(name string) circuitbreaker.Breaker {
		mu.RLock()
		b := breakers[name]
		mu.RUnlock()
		if b != nil {
			return b
		}

		mu.Lock()
		defer mu.Unlock()
		if b = breakers[name]; b != nil {
			return b
		}

		b = newBreaker(name)
		breakers[name] = b
		return b
	}

	return func(next fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			breaker := getBreaker(breakerName(c))

			if err := breaker.Allow(c.Context()); err != nil {
				code := "BREAKER_ERROR"
				if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
					code = "CIRCUIT_OPEN"
				}
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "service temporarily unavailable",
					"code":  code,
				})
			}

			err := next(c)

			var fe *fiber.Error
			switch {
			case err == nil:
				breaker.OnSuccess(c.Context())
			case errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError:
				breaker.OnSuccess(c.Context())
			default:
				breaker.OnFailure(c.Context())
			}

			return err
		}
	}
}

func breakerName(c *fiber.Ctx) string {
	var path string
	r := c.Route()
	if r != nil && r.Path != "" {
		path = r.Path
	} else {
		path = c.Path()
	}

	return c.Method() + " " + path
}
