package services

import (
	"context"
	errs "errors"
	"time"

	"github.com/VinukaThejana/blog/errors"
	"github.com/VinukaThejana/blog/models"
	"gorm.io/gorm"
)

// OTP is the gorm backed OTP store
type OTP struct {
	DB      *gorm.DB
	Timeout time.Duration
}

// Create persists a new OTP record
func (o *OTP) Create(ctx context.Context, otp *models.OTP) error {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	return o.DB.WithContext(ctx).Create(otp).Error
}

// Find returns the OTP record of the user with the given code
func (o *OTP) Find(ctx context.Context, userID, code string) (*models.OTP, error) {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	var otp models.OTP
	err := o.DB.WithContext(ctx).Where("user_id = ? AND code = ?", userID, code).First(&otp).Error
	if err != nil {
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRecordNotFound
		}

		return nil, err
	}

	return &otp, nil
}

// DeleteAllForUser deletes every outstanding OTP record of the user
func (o *OTP) DeleteAllForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	return o.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.OTP{}).Error
}
