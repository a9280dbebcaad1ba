// Package bootstrap owns process startup: connecting backing services,
// running migrations and preparing the runtime the HTTP server needs.
package bootstrap

import (
	"errors"
	"fmt"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/storage"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Runtime holds the process-wide backing connections.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Store storage.ObjectStore
}

// InitRuntime connects the database, Redis and object storage, and runs
// schema migrations. Redis being down is not fatal; callers get a nil client
// and the cache layer degrades to pass-through.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()
	if redisClient == nil {
		middleware.Logger.Warn("redis unavailable, caching and token revocation disabled")
	}

	var store storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		store, err = storage.NewMinIOStorage(cfg)
		if err != nil {
			return nil, fmt.Errorf("object storage init failed: %w", err)
		}
	} else {
		store = storage.NewMemoryStore(cfg.PublicBaseURL + "/uploads")
		middleware.Logger.Warn("MINIO_ENDPOINT not set, using in-memory object store")
	}

	if err := EnsureDevAdmin(db, cfg); err != nil {
		return nil, err
	}

	return &Runtime{DB: db, Redis: redisClient, Store: store}, nil
}

// EnsureDevAdmin creates the configured development admin account if it does
// not exist yet. It is a no-op outside the development environment or when
// the account is not configured.
func EnsureDevAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Env != "development" || cfg.DevAdminEmail == "" || cfg.DevAdminPassword == "" {
		return nil
	}
	if len(cfg.DevAdminPassword) < 8 {
		return errors.New("DEV_ADMIN_PASSWORD must be at least 8 characters")
	}

	var existing models.User
	err := db.Where("email = ?", cfg.DevAdminEmail).First(&existing).Error
	if err == nil {
		if existing.Role != models.RoleAdmin {
			return fmt.Errorf("dev admin email %s is taken by a non-admin account", cfg.DevAdminEmail)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("dev admin lookup failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DevAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("dev admin password hash failed: %w", err)
	}

	admin := &models.User{
		Name:     "Dev Admin",
		Email:    cfg.DevAdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("dev admin creation failed: %w", err)
	}

	middleware.Logger.Info("created development admin account", "email", cfg.DevAdminEmail)
	return nil
}
