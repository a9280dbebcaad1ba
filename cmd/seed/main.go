// Command seed fills a development database with demo data, either random
// (factory-generated) or from a curated YAML preset.
package main

import (
	"flag"
	"os"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/seed"
)

func main() {
	users := flag.Int("users", seed.DefaultOptions.Users, "number of users to create")
	posts := flag.Int("posts", seed.DefaultOptions.Posts, "number of posts to create")
	comments := flag.Int("comments", seed.DefaultOptions.Comments, "number of comments to create")
	clean := flag.Bool("clean", false, "truncate all tables before seeding")
	preset := flag.String("preset", "", "path to a YAML preset; skips random seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		middleware.Logger.Error("refusing to seed a production database")
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

	if *preset != "" {
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			middleware.Logger.Error("failed to load preset", "path", *preset, "error", err)
			os.Exit(1)
		}
		if *clean {
			if err := seed.Clean(db); err != nil {
				middleware.Logger.Error("failed to clean database", "error", err)
				os.Exit(1)
			}
		}
		if err := p.Apply(db); err != nil {
			middleware.Logger.Error("failed to apply preset", "error", err)
			os.Exit(1)
		}
		middleware.Logger.Info("preset applied", "path", *preset, "users", len(p.Users), "posts", len(p.Posts))
		return
	}

	opts := seed.Options{Users: *users, Posts: *posts, Comments: *comments, Clean: *clean}
	if err := seed.Run(db, opts); err != nil {
		middleware.Logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
