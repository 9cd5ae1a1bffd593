package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Env is structure containing env variables
type Env struct {
	Port                     string        `mapstructure:"PORT" validate:"required,numeric"`
	DevEnv                   string        `mapstructure:"DEV_ENV" validate:"required,oneof=DEV PROD TEST"`
	StoreDriver              string        `mapstructure:"STORE_DRIVER" validate:"required,oneof=postgres mongo"`
	DSN                      string        `mapstructure:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`
	MongoURI                 string        `mapstructure:"MONGO_URI" validate:"required_if=StoreDriver mongo"`
	MongoDatabase            string        `mapstructure:"MONGO_DATABASE" validate:"required_if=StoreDriver mongo"`
	RedisSystemURL           string        `mapstructure:"REDIS_SYSTEM_URL" validate:"required,uri"`
	RedisRatelimiterHost     string        `mapstructure:"REDIS_RATELIMITER_HOST" validate:"required"`
	RedisRatelimiterUsername string        `mapstructure:"REDIS_RATELIMITER_USERNAME"`
	RedisRatelimiterPassword string        `mapstructure:"REDIS_RATELIMITER_PASSWORD"`
	JWTSecret                string        `mapstructure:"JWT_SECRET" validate:"required"`
	ResendAPIKey             string        `mapstructure:"RESEND_API_KEY" validate:"required"`
	MailFrom                 string        `mapstructure:"MAIL_FROM" validate:"required"`
	FrontendURL              string        `mapstructure:"FRONTEND_URL" validate:"required,url"`
	FrontendHostname         string        `mapstructure:"FRONTEND_HOSTNAME" validate:"required"`
	MinioEndpoint            string        `mapstructure:"MINIO_ENDPOINT" validate:"required"`
	MinioAPIKeyID            string        `mapstructure:"MINIO_API_KEY_ID" validate:"required"`
	MinioAPIKeySecret        string        `mapstructure:"MINIO_API_KEY_SECRET" validate:"required"`
	MinioBucket              string        `mapstructure:"MINIO_BUCKET" validate:"required"`
	SessionTokenExpires      time.Duration `mapstructure:"SESSION_TOKEN_EXPIRED_IN" validate:"required"`
	ResetTokenExpires        time.Duration `mapstructure:"RESET_TOKEN_EXPIRED_IN" validate:"required"`
	OTPTTL                   time.Duration `mapstructure:"OTP_TTL" validate:"required"`
	DBTimeout                time.Duration `mapstructure:"DB_TIMEOUT" validate:"required"`
	MailTimeout              time.Duration `mapstructure:"MAIL_TIMEOUT" validate:"required"`
	PasswordMinEntropy       float64       `mapstructure:"PASSWORD_MIN_ENTROPY" validate:"gte=0"`
	RedisRatelimiterPort     int           `mapstructure:"REDIS_RATELIMITER_PORT" validate:"required,number"`
	OTPDigits                int           `mapstructure:"OTP_DIGITS" validate:"oneof=4 6"`
	RateLimitMax             int           `mapstructure:"RATE_LIMIT_MAX" validate:"required,gt=0"`
	MinioUseSSL              bool          `mapstructure:"MINIO_USE_SSL"`
	MailAsync                bool          `mapstructure:"MAIL_ASYNC"`
	RequireProfileImage      bool          `mapstructure:"REQUIRE_PROFILE_IMAGE"`
}

// defaults also registers every key so that AutomaticEnv values reach Unmarshal
var defaults = map[string]interface{}{
	"PORT":                       "4000",
	"DEV_ENV":                    string(Dev),
	"STORE_DRIVER":               string(Postgres),
	"DATABASE_URL":               "",
	"MONGO_URI":                  "",
	"MONGO_DATABASE":             "",
	"REDIS_SYSTEM_URL":           "",
	"REDIS_RATELIMITER_HOST":     "",
	"REDIS_RATELIMITER_USERNAME": "",
	"REDIS_RATELIMITER_PASSWORD": "",
	"REDIS_RATELIMITER_PORT":     6379,
	"JWT_SECRET":                 "",
	"RESEND_API_KEY":             "",
	"MAIL_FROM":                  "",
	"FRONTEND_URL":               "",
	"FRONTEND_HOSTNAME":          "",
	"MINIO_ENDPOINT":             "",
	"MINIO_API_KEY_ID":           "",
	"MINIO_API_KEY_SECRET":       "",
	"MINIO_BUCKET":               "profile-images",
	"MINIO_USE_SSL":              false,
	"SESSION_TOKEN_EXPIRED_IN":   "24h",
	"RESET_TOKEN_EXPIRED_IN":     "20m",
	"OTP_TTL":                    "15m",
	"OTP_DIGITS":                 6,
	"DB_TIMEOUT":                 "5s",
	"MAIL_TIMEOUT":               "10s",
	"MAIL_ASYNC":                 true,
	"REQUIRE_PROFILE_IMAGE":      true,
	"PASSWORD_MIN_ENTROPY":       0,
	"RATE_LIMIT_MAX":             100,
}

// Read reads the env variables from the .env file in path (if present) and the enviroment
// and validates them
func (e *Env) Read(path ...string) error {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	dir := "."
	if len(path) > 0 {
		dir = path[0]
	}
	v.SetConfigFile(filepath.Join(dir, ".env"))
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Log(fmt.Sprintf("No .env file found in %s, using the enviroment", dir))
	}

	if err := v.Unmarshal(e); err != nil {
		return err
	}

	return validator.New().Struct(e)
}

// Load is a function that is used to load the env variables from the file and the enviroment
func (e *Env) Load(path ...string) {
	if err := e.Read(path...); err != nil {
		logger.Errorf(err)
	}
}
