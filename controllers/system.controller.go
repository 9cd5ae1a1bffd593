package controllers

import (
	"context"
	errs "errors"
	"strconv"
	"time"

	"github.com/VinukaThejana/blog/enums"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Pinger checks the connection to the store
type Pinger interface {
	Ping(ctx context.Context) error
}

// Flags reads the health flags that an operator sets on the system redis instance
type Flags interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// System is a struct that contains system level controllers
type System struct {
	Flags   Flags
	Store   Pinger
	Timeout time.Duration
}

// Health is a function that is notifys the system health, an operator can mark the system as
// unhealthy and attach a message through the system redis instance
func (s *System) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), s.Timeout)
	defer cancel()

	health := true
	if err := s.Store.Ping(ctx); err != nil {
		logger.ErrorWithMsg(err, "Store is not reachable")
		health = false
	}

	status, err := s.Flags.Get(ctx, enums.SysHealth).Result()
	if err != nil && !errs.Is(err, redis.Nil) {
		logger.Error(err)
		health = false
	}
	if status != "" {
		flag, err := strconv.ParseBool(status)
		health = health && err == nil && flag
	}

	msg, _ := s.Flags.Get(ctx, enums.SysHealthMsg).Result()
	if msg == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"health": health,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"health":  health,
		"message": msg,
	})
}
