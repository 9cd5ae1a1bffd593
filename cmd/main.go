// Blog is the backend of the blog api
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/blog/connect"
	"github.com/VinukaThejana/blog/controllers"
	"github.com/VinukaThejana/blog/middleware"
	"github.com/VinukaThejana/blog/routes"
	"github.com/VinukaThejana/blog/services"
	"github.com/VinukaThejana/blog/utils"
	"github.com/VinukaThejana/go-utils/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/resendlabs/resend-go"
)

const shutdownTimeout = 15 * time.Second

var (
	env  config.Env
	conn connect.Connector
)

func init() {
	env.Load()

	if config.GetStoreDriver(&env) == config.Mongo {
		conn.InitMongo(&env)
	} else {
		conn.InitDatabase(&env)
	}
	utils.CheckForMigrations(&conn, &env)

	conn.InitRatelimiter(&env)
	conn.InitRedis(&env)
	conn.InitMinioClient(&env)
}

func stores() (services.UserStore, services.OTPStore) {
	if config.GetStoreDriver(&env) == config.Mongo {
		return &services.MongoUser{
				Collection: conn.Mongo.Collection(connect.UsersCollection),
				Timeout:    env.DBTimeout,
			}, &services.MongoOTP{
				Collection: conn.Mongo.Collection(connect.OTPsCollection),
				Timeout:    env.DBTimeout,
			}
	}

	return &services.User{DB: conn.DB, Timeout: env.DBTimeout},
		&services.OTP{DB: conn.DB, Timeout: env.DBTimeout}
}

func main() {
	users, otps := stores()
	images := &services.Image{
		M:       conn.M,
		Bucket:  env.MinioBucket,
		Timeout: env.DBTimeout,
	}
	mail := utils.NewEmail(resend.NewClient(env.ResendAPIKey), &env)
	auth := services.NewAuth(&env, users, otps, images, mail)

	app := fiber.New(fiber.Config{
		BodyLimit: 8 * 1024 * 1024,
	})
	if config.GetDevEnv(&env) == config.Dev {
		app.Use(fiberLogger.New())
	}

	app.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowOrigins:     env.FrontendHostname,
		AllowCredentials: true,
		AllowMethods:     "*",
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        env.RateLimitMax,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusTooManyRequests)
		},
		SkipFailedRequests:     false,
		SkipSuccessfulRequests: false,
		LimiterMiddleware:      limiter.SlidingWindow{},
		Storage:                conn.Ratelimiter,
	}))

	routes.Auth(app, &controllers.Auth{Service: auth}, &middleware.Auth{Tokens: auth.Tokens})
	routes.System(app, &controllers.System{
		Flags:   conn.R.System,
		Store:   &conn,
		Timeout: env.DBTimeout,
	})

	app.Route("/monitor", func(router fiber.Router) {
		router.Get("/metrics", monitor.New(monitor.Config{
			Title: "Monitor Blog",
		}))
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		logger.Log("Shutting down the server")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error(err)
		}
	}()

	if err := app.Listen(fmt.Sprintf(":%s", env.Port)); err != nil {
		logger.Errorf(err)
	}

	auth.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	conn.Close(ctx)
}
