// Package db opens the gorm connection shared by every repository.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blog_backend/internal/config"
	authentity "blog_backend/internal/feature/auth/domain/entity"
	commententity "blog_backend/internal/feature/comments/domain/entity"
	postentity "blog_backend/internal/feature/posts/domain/entity"
)

const (
	sqlitePrefix  = "sqlite://"
	retryInterval = 3 * time.Second
)

// Opener opens a gorm connection for a dialector.
type Opener func(dialector gorm.Dialector) (*gorm.DB, error)

// Dialector selects the gorm driver for a DATABASE_URL.
// "sqlite://<path>" selects sqlite; anything else is handed to the postgres driver.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	switch {
	case databaseURL == "":
		return nil, errors.New("database url is empty")
	case strings.HasPrefix(databaseURL, sqlitePrefix):
		path := strings.TrimPrefix(databaseURL, sqlitePrefix)
		if path == "" {
			return nil, errors.New("sqlite database path is empty")
		}
		return sqlite.Open(path), nil
	default:
		return postgres.Open(databaseURL), nil
	}
}

// ConnectWithRetry opens a connection, retrying until timeout elapses.
func ConnectWithRetry(dialector gorm.Dialector, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dialector)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// DefaultOpener opens gorm with duplicate-key errors translated to gorm.ErrDuplicatedKey.
func DefaultOpener(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

// OpenDB connects to the configured database and runs migrations when enabled.
func OpenDB(cfg config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(dialector, cfg.DBConnectTimeout, DefaultOpener)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Migrate creates or updates the users, posts and comments tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&authentity.User{},
		&postentity.Post{},
		&commententity.Comment{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
