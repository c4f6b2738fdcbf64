package sqlite

import (
	"fmt"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the GORM handle for the file-backed SQLite store.
type DB struct {
	*gorm.DB
}

// Config captures the settings for opening the SQLite store.
type Config struct {
	Path string
	// Reset removes any existing database file before opening.
	Reset bool
}

// Open connects to the SQLite file at cfg.Path, creating it when absent.
// With cfg.Reset the previous file is deleted first, so every start begins
// from an empty schema.
func Open(cfg Config) (*DB, error) {
	if cfg.Reset {
		if err := os.Remove(cfg.Path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("sqlite reset: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the table for each model.
func (db *DB) AutoMigrate(models ...interface{}) error {
	return db.DB.AutoMigrate(models...)
}

// Ping verifies the underlying connection is still usable.
func (db *DB) Ping() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
