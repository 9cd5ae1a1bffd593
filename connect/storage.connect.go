package connect

import (
	"context"
	"fmt"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/storage/redis"
)

// InitRatelimiter is a function that is used to initialize the storage of the request limiter
// that is shared by every instance of the api
func (c *Connector) InitRatelimiter(env *config.Env) {
	store := redis.New(redis.Config{
		Username: env.RedisRatelimiterUsername,
		Password: env.RedisRatelimiterPassword,
		Host:     env.RedisRatelimiterHost,
		Port:     env.RedisRatelimiterPort,
		Database: 0,
		Reset:    false,
	})

	ctx, cancel := context.WithTimeout(context.Background(), env.DBTimeout)
	defer cancel()

	if err := store.Conn().Ping(ctx).Err(); err != nil {
		logger.Errorf(fmt.Errorf("ratelimiter storage %s:%d : %w", env.RedisRatelimiterHost, env.RedisRatelimiterPort, err))
	}

	c.Ratelimiter = store
}
