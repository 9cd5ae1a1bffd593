package services

import (
	"context"
	errs "errors"
	"time"

	"github.com/VinukaThejana/blog/errors"
	"github.com/VinukaThejana/blog/models"
	"gorm.io/gorm"
)

// User is the gorm backed credential store
type User struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func (u *User) find(ctx context.Context, query, arg string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	var user models.User
	err := u.DB.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

// FindByEmail returns the user with the given email address
func (u *User) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.find(ctx, "email = ?", email)
}

// FindByID returns the user with the given ID
func (u *User) FindByID(ctx context.Context, id string) (*models.User, error) {
	return u.find(ctx, "id = ?", id)
}

// Create is a function that is used to create a new user in the relational database
func (u *User) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	err := u.DB.WithContext(ctx).Create(user).Error
	if err != nil {
		if ok := (errors.CheckDBError{}.DuplicateKey(err)); ok {
			return errors.ErrDuplicateKey
		}

		return err
	}

	return nil
}

// Update saves every field of the user
func (u *User) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	return u.DB.WithContext(ctx).Save(user).Error
}

// Delete removes the user
func (u *User) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	return u.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}
