// Package services contains the auth workflow and the stores it depends on
package services

import (
	"context"
	"io"

	"github.com/VinukaThejana/blog/models"
)

// UserStore persists users, lookups return errors.ErrRecordNotFound when nothing matches and
// Create returns errors.ErrDuplicateKey when the email is already used
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// OTPStore persists one time codes
type OTPStore interface {
	Create(ctx context.Context, otp *models.OTP) error
	Find(ctx context.Context, userID, code string) (*models.OTP, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}

// Hasher hashes and compares passwords
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Notifier delivers emails to users
type Notifier interface {
	SendVerificationOTP(ctx context.Context, user models.User, code string) error
	SendResetLink(ctx context.Context, user models.User, link string) error
}

// ImageStore stores the profile images and returns the path of the stored object
type ImageStore interface {
	Put(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error)
	Remove(ctx context.Context, path string) error
}

// CodeGenerator generates numeric one time codes
type CodeGenerator interface {
	Generate() (string, error)
}
