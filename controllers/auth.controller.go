package controllers

import (
	"github.com/VinukaThejana/blog/errors"
	"github.com/VinukaThejana/blog/schemas"
	"github.com/VinukaThejana/blog/services"
	"github.com/VinukaThejana/blog/session"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
)

// Auth struct contains all the auth related controllers
type Auth struct {
	Service *services.Auth
}

// Register is a function that is used to register users with email, password and a profile image
func (a *Auth) Register(c *fiber.Ctx) error {
	var payload schemas.RegisterInput
	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	if file, err := c.FormFile("image"); err == nil {
		body, err := file.Open()
		if err != nil {
			logger.Error(err)
			return errors.BadRequest(c)
		}
		defer body.Close()

		payload.Image = &schemas.Image{
			Body:        body,
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
		}
	}

	res, err := a.Service.Register(c.UserContext(), payload)
	if err != nil {
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(schemas.RegisterRes{
		Status:  true,
		Message: "User registered successfully. OTP sent for verification.",
		User:    schemas.FilterUser(res.User),
		Token:   res.Token,
	})
}

// Login is a function that is used to login users with the email and the password, the
// credentials are read from the body first and from the query string second
func (a *Auth) Login(c *fiber.Ctx) error {
	var credentials schemas.Credentials
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&credentials); err != nil {
			logger.Error(err)
			return errors.BadRequest(c)
		}
	}

	if credentials.Email == "" || credentials.Password == "" {
		var query schemas.Credentials
		if err := c.QueryParser(&query); err != nil {
			logger.Error(err)
			return errors.BadRequest(c)
		}

		if credentials.Email == "" {
			credentials.Email = query.Email
		}
		if credentials.Password == "" {
			credentials.Password = query.Password
		}
	}

	res, err := a.Service.Login(c.UserContext(), credentials)
	if err != nil {
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(schemas.LoginRes{
		Status:  true,
		Message: "User logged in successfully",
		User:    schemas.FilterLoginUser(res.User),
		Token:   res.Token,
	})
}

// UpdatePassword is a function that is used to change the password of the logged in user
func (a *Auth) UpdatePassword(c *fiber.Ctx) error {
	user, ok := session.Get(c)
	if !ok {
		return errors.Unauthorized(c)
	}

	var payload schemas.UpdatePasswordInput
	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	if err := a.Service.UpdatePassword(c.UserContext(), user.ID, payload); err != nil {
		return errors.Respond(c, err)
	}

	return errors.Done(c, "Password updated successfully")
}

// VerifyOTP is a function that is used to verify the email address of the user with the code
// that was emailed, the user is taken from the body or from the session
func (a *Auth) VerifyOTP(c *fiber.Ctx) error {
	var payload schemas.VerifyOTPInput
	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	if user, ok := session.Get(c); ok {
		payload.UserID = user.ID
	}

	if err := a.Service.VerifyOTP(c.UserContext(), payload); err != nil {
		return errors.Respond(c, err)
	}

	return errors.Done(c, "Email verified successfully")
}

// ResetPasswordLink is a function that is used to email the password reset link
func (a *Auth) ResetPasswordLink(c *fiber.Ctx) error {
	var payload schemas.ResetLinkInput
	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	if err := a.Service.RequestPasswordReset(c.UserContext(), payload); err != nil {
		return errors.Respond(c, err)
	}

	return errors.Done(c, "Password reset email sent. Please check your email.")
}

// ResetPassword is a function that is used to set a new password with the token from the reset link
func (a *Auth) ResetPassword(c *fiber.Ctx) error {
	var payload schemas.ResetPasswordInput
	if err := c.BodyParser(&payload); err != nil {
		logger.Error(err)
		return errors.BadRequest(c)
	}

	payload.UserID = c.Params("id")
	payload.Token = c.Params("token")

	if err := a.Service.ResetPassword(c.UserContext(), payload); err != nil {
		return errors.Respond(c, err)
	}

	return errors.Done(c, "Password reset successfully")
}

// Profile is a function that is used to get the profile of the logged in user
func (a *Auth) Profile(c *fiber.Ctx) error {
	user, ok := session.Get(c)
	if !ok {
		return errors.Unauthorized(c)
	}

	profile, err := a.Service.Profile(c.UserContext(), user.ID)
	if err != nil {
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(schemas.ProfileRes{
		Status:  true,
		Message: "Profile details fetched successfully",
		Data:    schemas.FilterUser(*profile),
	})
}
