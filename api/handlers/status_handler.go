package handlers

import (
	"context"
	"time"

	redisLocal "github.com/DSACMS/enrollment-form-api/pkg/redis"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const statusTimeout = 2 * time.Second

func Index() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("OK")
	}
}

// GetRDBStatus returns 200 when the session store answers a ping.
func GetRDBStatus(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), statusTimeout)
		defer cancel()

		if err := redisLocal.Ping(ctx, rdb); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "session store unavailable")
		}
		return c.SendStatus(fiber.StatusOK)
	}
}
