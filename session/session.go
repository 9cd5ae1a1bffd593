// Package session contains session related activity
package session

import (
	"github.com/gofiber/fiber/v2"
)

// User is the identity of the logged in user carried by the session token
type User struct {
	ID    string
	Email string
	Name  string
}

// Add is a function that is used to add ther user details to the session
func Add(c *fiber.Ctx, user *User) {
	if user == nil {
		return
	}

	c.Locals("id", user.ID)
	c.Locals("name", user.Name)
	c.Locals("email", user.Email)
}

// Get the user details from the session, ok is false when the request is not authenticated
func Get(c *fiber.Ctx) (user *User, ok bool) {
	id, ok := c.Locals("id").(string)
	if !ok || id == "" {
		return nil, false
	}

	name, _ := c.Locals("name").(string)
	email, _ := c.Locals("email").(string)

	return &User{
		ID:    id,
		Name:  name,
		Email: email,
	}, true
}
