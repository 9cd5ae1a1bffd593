// Package middleware contains the fiber middlewares
package middleware

import (
	"strings"

	"github.com/VinukaThejana/blog/errors"
	"github.com/VinukaThejana/blog/session"
	"github.com/VinukaThejana/blog/token"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
)

// Auth contains auth related middlewares
type Auth struct {
	Tokens *token.Issuer
}

func bearer(c *fiber.Ctx) string {
	authorization := c.Get("Authorization")
	if !strings.HasPrefix(authorization, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
}

func (a *Auth) authenticate(c *fiber.Ctx, sessionToken string) error {
	claims, err := a.Tokens.ValidateSession(sessionToken)
	if err != nil {
		if !token.Expired(err) {
			logger.Error(err)
		}
		return errors.Unauthorized(c)
	}

	session.Add(c, &session.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
	})

	return c.Next()
}

// Check is a function that is used to check wether the user is authenticated
func (a *Auth) Check(c *fiber.Ctx) error {
	sessionToken := bearer(c)
	if sessionToken == "" {
		return errors.Unauthorized(c)
	}

	return a.authenticate(c, sessionToken)
}

// Optional adds the user to the session when a session token is provided, requests without one
// are passed through
func (a *Auth) Optional(c *fiber.Ctx) error {
	sessionToken := bearer(c)
	if sessionToken == "" {
		return c.Next()
	}

	return a.authenticate(c, sessionToken)
}
