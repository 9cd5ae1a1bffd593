package models

import "time"

// User represents the user in the credential store
type User struct {
	ID        string    `gorm:"type:uuid;primary_key" bson:"_id"`
	CreatedAt time.Time `gorm:"not null;default:now()" bson:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" bson:"updated_at"`
	Name      string    `gorm:"type:varchar(60);not null" bson:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" bson:"email"`
	Address   string    `gorm:"type:varchar(255)" bson:"address"`
	Password  string    `gorm:"not null" bson:"password"`
	ImagePath string    `gorm:"default:null" bson:"image_path,omitempty"`
	Verified  bool      `gorm:"default:false" bson:"verified"`
}
