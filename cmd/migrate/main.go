// Command migrate runs schema migrations and exits. Deployments run it as a
// pre-start step so the API process never races a half-migrated schema.
package main

import (
	"os"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		middleware.Logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	middleware.Logger.Info("migrations applied", "database", cfg.DBName)
}
