package connect

import (
	"context"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/go-utils/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collections used when the users are stored in mongo
const (
	UsersCollection = "users"
	OTPsCollection  = "otps"
)

// InitMongo is a function to initialize the connection with the mongo database
func (c *Connector) InitMongo(env *config.Env) {
	ctx, cancel := context.WithTimeout(context.Background(), env.DBTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(env.MongoURI))
	if err != nil {
		logger.Errorf(err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Errorf(err)
	}

	c.Mongo = client.Database(env.MongoDatabase)
	if err := c.EnsureMongoIndexes(env); err != nil {
		logger.Errorf(err)
	}
}

// EnsureMongoIndexes creates the unique email index and the OTP lookup index, existing indexes
// are left as they are
func (c *Connector) EnsureMongoIndexes(env *config.Env) error {
	ctx, cancel := context.WithTimeout(context.Background(), env.DBTimeout)
	defer cancel()

	_, err := c.Mongo.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("idx_users_email"),
	})
	if err != nil {
		return err
	}

	_, err = c.Mongo.Collection(OTPsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "code", Value: 1}},
		Options: options.Index().SetName("idx_otps_user_code"),
	})
	return err
}
