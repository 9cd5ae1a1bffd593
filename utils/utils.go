// Package utils contains the utility packages
package utils

import (
	"flag"
	"os"

	"github.com/VinukaThejana/blog/config"
	"github.com/VinukaThejana/blog/connect"
)

// CheckForMigrations is a function that checks wether the schema changes should be migrated to
// the store, the process exits once they are
func CheckForMigrations(c *connect.Connector, env *config.Env) {
	enableMigrations := flag.Bool("migrate", false, "Migrate the schema to the store selected with STORE_DRIVER")
	flag.Parse()
	if enableMigrations != nil && *enableMigrations {
		c.MigrateSchemaChanges(env)
		os.Exit(0)
	}
}
