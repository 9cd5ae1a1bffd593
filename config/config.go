// Package config contains configurations
package config

// DevEnv contains production and development enviroments
type DevEnv string

const (
	// Prod defines the production enviroment
	Prod DevEnv = "PROD"
	// Dev defines the development enviroment
	Dev DevEnv = "DEV"
	// Test defined the test enviroment
	Test DevEnv = "TEST"
)

// GetDevEnv is a function to get the development enviroment based
// on the enviroment configuration
func GetDevEnv(env *Env) DevEnv {
	switch env.DevEnv {
	case string(Prod):
		return Prod
	case string(Dev):
		return Dev
	default:
		return Test
	}
}

// StoreDriver is the backend that holds users and OTP records
type StoreDriver string

const (
	// Postgres stores users and OTP records in postgres through gorm
	Postgres StoreDriver = "postgres"
	// Mongo stores users and OTP records as mongo documents
	Mongo StoreDriver = "mongo"
)

// GetStoreDriver returns the configured store driver, postgres being the default
func GetStoreDriver(env *Env) StoreDriver {
	if env.StoreDriver == string(Mongo) {
		return Mongo
	}
	return Postgres
}
