package session

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGet(t *testing.T) {
	app := fiber.New()
	app.Get("/anonymous", func(c *fiber.Ctx) error {
		_, ok := Get(c)
		assert.False(t, ok)
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/user", func(c *fiber.Ctx) error {
		Add(c, &User{ID: "u-1", Email: "a@x.com", Name: "Alice"})

		user, ok := Get(c)
		require.True(t, ok)
		assert.Equal(t, User{ID: "u-1", Email: "a@x.com", Name: "Alice"}, *user)
		return c.SendStatus(fiber.StatusOK)
	})

	for _, path := range []string{"/anonymous", "/user"} {
		res, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
	}
}
