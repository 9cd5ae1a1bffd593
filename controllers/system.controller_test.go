package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VinukaThejana/blog/controllers"
	"github.com/VinukaThejana/blog/enums"
	"github.com/VinukaThejana/blog/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type flags struct {
	values map[string]string
	err    error
}

func (f flags) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

type store struct {
	err error
}

func (s store) Ping(context.Context) error {
	return s.err
}

func TestHealth(t *testing.T) {
	args := []struct {
		name    string
		flags   flags
		store   store
		health  bool
		message interface{}
	}{
		{name: "healthy without flags", health: true},
		{
			name:   "healthy flag",
			flags:  flags{values: map[string]string{enums.SysHealth: "true"}},
			health: true,
		},
		{
			name: "marked unhealthy with a message",
			flags: flags{values: map[string]string{
				enums.SysHealth:    "false",
				enums.SysHealthMsg: "maintenance until 10:00",
			}},
			health:  false,
			message: "maintenance until 10:00",
		},
		{
			name:   "invalid flag",
			flags:  flags{values: map[string]string{enums.SysHealth: "maybe"}},
			health: false,
		},
		{
			name:   "store unreachable",
			store:  store{err: fmt.Errorf("dial tcp: connection refused")},
			health: false,
		},
		{
			name:   "redis unreachable",
			flags:  flags{err: fmt.Errorf("dial tcp: i/o timeout")},
			health: false,
		},
	}

	for _, arg := range args {
		t.Run(arg.name, func(t *testing.T) {
			app := fiber.New()
			routes.System(app, &controllers.System{
				Flags:   arg.flags,
				Store:   arg.store,
				Timeout: time.Second,
			})

			status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/system/health", nil))
			assert.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, arg.health, body["health"])
			assert.Equal(t, arg.message, body["message"])
		})
	}
}
