// Package models contains the persisted records
package models

import "time"

// OTP is a one time code that is sent to the user to confirm the email address
type OTP struct {
	ID        string    `gorm:"type:uuid;primary_key" bson:"_id"`
	UserID    string    `gorm:"type:uuid;index:idx_otps_user_code;not null" bson:"user_id"`
	Code      string    `gorm:"type:varchar(8);index:idx_otps_user_code;not null" bson:"code"`
	CreatedAt time.Time `gorm:"not null;default:now()" bson:"created_at"`
}

// ExpiresAt returns the time after which the code must be rejected
func (o *OTP) ExpiresAt(ttl time.Duration) time.Time {
	return o.CreatedAt.Add(ttl)
}

// Expired reports wether the code is older than ttl at now
func (o *OTP) Expired(now time.Time, ttl time.Duration) bool {
	return now.After(o.ExpiresAt(ttl))
}
