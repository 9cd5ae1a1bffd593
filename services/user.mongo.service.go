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

// MongoUser is the mongo backed credential store, the collection must carry the unique email
// index created by connect.EnsureMongoIndexes
type MongoUser struct {
	Collection *mongo.Collection
	Timeout    time.Duration
}

func (u *MongoUser) find(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	var user models.User
	err := u.Collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errs.Is(err, mongo.ErrNoDocuments) {
			return nil, errors.ErrRecordNotFound
		}

		return nil, err
	}

	return &user, nil
}

// FindByEmail returns the user with the given email address
func (u *MongoUser) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.find(ctx, bson.M{"email": email})
}

// FindByID returns the user with the given ID
func (u *MongoUser) FindByID(ctx context.Context, id string) (*models.User, error) {
	return u.find(ctx, bson.M{"_id": id})
}

// Create inserts the user document
func (u *MongoUser) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := u.Collection.InsertOne(ctx, user)
	if err != nil {
		if ok := (errors.CheckDBError{}.DuplicateKey(err)); ok {
			return errors.ErrDuplicateKey
		}

		return err
	}

	return nil
}

// Update replaces the user document
func (u *MongoUser) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	user.UpdatedAt = time.Now().UTC()
	res, err := u.Collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.ErrRecordNotFound
	}

	return nil
}

// Delete removes the user document
func (u *MongoUser) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, u.Timeout)
	defer cancel()

	_, err := u.Collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
