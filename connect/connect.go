// Package connect is used to initialize connections to thrid party services
package connect

import (
	"context"
	"fmt"

	"github.com/gofiber/storage/redis"
	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// Connector contains various connections to thrid party serivces
type Connector struct {
	DB          *gorm.DB
	Mongo       *mongo.Database
	Ratelimiter *redis.Storage
	R           *Redis
	M           *minio.Client
}

// Ping checks the connection to the store that holds the users
func (c *Connector) Ping(ctx context.Context) error {
	switch {
	case c.DB != nil:
		db, err := c.DB.DB()
		if err != nil {
			return err
		}
		return db.PingContext(ctx)
	case c.Mongo != nil:
		return c.Mongo.Client().Ping(ctx, readpref.Primary())
	default:
		return fmt.Errorf("no store is connected")
	}
}

// Close closes every open connection
func (c *Connector) Close(ctx context.Context) {
	if c.DB != nil {
		if db, err := c.DB.DB(); err == nil {
			db.Close()
		}
	}
	if c.Mongo != nil {
		c.Mongo.Client().Disconnect(ctx)
	}
	if c.R != nil && c.R.System != nil {
		c.R.System.Close()
	}
	if c.Ratelimiter != nil {
		c.Ratelimiter.Close()
	}
}
