package connect

import (
	"fmt"
	"os"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/blog/models"
	"github.com/VinukaThejana/go-utils/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// InitDatabase is a fucntion to initialize the connection with the postgres database
func (c *Connector) InitDatabase(env *config.Env) {
	db, err := gorm.Open(postgres.Open(env.DSN), &gorm.Config{})
	if err != nil {
		logger.Errorf(err)
	}

	if config.GetDevEnv(env) != config.Prod {
		db.Logger = gormLogger.Default.LogMode(gormLogger.Info)
	}

	c.DB = db
}

// MigrateSchemaChanges is a fucntion that is used to migrate schema changes to the store
func (c *Connector) MigrateSchemaChanges(env *config.Env) {
	if config.GetDevEnv(env) == config.Prod {
		logger.Error(fmt.Errorf(" 🪨 Cannot migrate schema changes on production !"))
		os.Exit(0)
	}

	if config.GetStoreDriver(env) == config.Mongo {
		if err := c.EnsureMongoIndexes(env); err != nil {
			logger.Errorf(err)
		}

		logger.Log("\n\n ✅ All indexes have been created !")
		return
	}

	migrations := []interface{}{
		models.User{},
		models.OTP{},
	}

	err := c.DB.AutoMigrate(migrations...)
	if err != nil {
		logger.Errorf(err)
	}

	logger.Log("\n\n ✅ All schema changes have been migrated !")
}
