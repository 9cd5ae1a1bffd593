package schemas

import (
	"io"
)

// Image is an uploaded profile image
type Image struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// RegisterInput contains the details required to register a user
type RegisterInput struct {
	Image           *Image `json:"-" form:"-"`
	Name            string `json:"name" form:"name" validate:"required,min=3,max=50"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6,max=72,validate_password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required"`
	Address         string `json:"address" form:"address" validate:"required"`
}

// Credentials is the normalized email and password pair used to login
type Credentials struct {
	Email    string `json:"email" form:"email" query:"email" validate:"required,email"`
	Password string `json:"password" form:"password" query:"password" validate:"required"`
}

// UpdatePasswordInput contains the old and the new password of a logged in user
type UpdatePasswordInput struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required,min=6,max=72,validate_password"`
}

// VerifyOTPInput contains the code and the identity of the user verifying it,
// either the email or the ID of an authenticated session
type VerifyOTPInput struct {
	UserID string `json:"-" form:"-"`
	Email  string `json:"email" form:"email" validate:"omitempty,email"`
	OTP    string `json:"otp" form:"otp" validate:"required,validate_otp"`
}

// ResetLinkInput contains the email to send the password reset link to
type ResetLinkInput struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// ResetPasswordInput contains the reset token and the new password
type ResetPasswordInput struct {
	UserID          string `json:"-" form:"-"`
	Token           string `json:"-" form:"-"`
	Password        string `json:"password" form:"password" validate:"required,min=6,max=72,validate_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required"`
}

// RegisterRes is returned after a successful registration
type RegisterRes struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

// LoginRes is returned after a successful login
type LoginRes struct {
	Token   string    `json:"token"`
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
	Status  bool      `json:"status"`
}

// ProfileRes contains the profile of the logged in user
type ProfileRes struct {
	Message string `json:"message"`
	Data    User   `json:"data"`
	Status  bool   `json:"status"`
}
