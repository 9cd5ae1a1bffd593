package services

import (
	"context"
	errs "errors"
	"time"

	"github.com/VinukaThejana/blog/errors"
	"github.com/VinukaThejana/blog/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOTP is the mongo backed OTP store
type MongoOTP struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

// Create inserts the OTP document
func (o *MongoOTP) Create(ctx context.Context, otp *models.OTP) error {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	_, err := o.Collection.InsertOne(ctx, otp)
	return err
}

// Find returns the OTP document of the user with the given code
func (o *MongoOTP) Find(ctx context.Context, userID, code string) (*models.OTP, error) {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	var otp models.OTP
	err := o.Collection.FindOne(ctx, bson.M{"user_id": userID, "code": code}).Decode(&otp)
	if err != nil {
		if errs.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrRecordNotFound
		}

		return nil, err
	}

	return &otp, nil
}

// DeleteAllForUser deletes every outstanding OTP document of the user
func (o *MongoOTP) DeleteAllForUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	_, err := o.Collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
