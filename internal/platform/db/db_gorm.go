// Package db opens the application database. A DATABASE_URL selects
// PostgreSQL; without one the server falls back to a local SQLite file,
// which keeps development and CI self-contained.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "finance_backend/internal/feature/auth/domain/entity"
	txentity "finance_backend/internal/feature/transactions/domain/entity"
)

// Config holds the database connection settings.
type Config struct {
	// URL is a PostgreSQL DSN. When empty, SQLitePath is used instead.
	URL        string
	SQLitePath string
}

// LoadConfigFromEnv reads the connection settings from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		URL:        os.Getenv("DATABASE_URL"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "./finance.db"
	}
	return cfg
}

// Opener opens a gorm.DB from a DSN. Extracted so retry logic is testable
// without a running database.
type Opener func(dsn string) (*gorm.DB, error)

// gormConfig enables error translation so adapters can match
// gorm.ErrDuplicatedKey across drivers.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// PostgresOpener returns an Opener backed by the postgres driver.
func PostgresOpener() Opener {
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), gormConfig())
	}
}

// SQLiteOpener returns an Opener backed by the sqlite driver.
func SQLiteOpener() Opener {
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), gormConfig())
	}
}

// ConnectWithRetry keeps trying the opener until it succeeds or the timeout
// elapses. Container setups often start the database and the server at the
// same time, so the first attempts may be refused.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB connects using the environment configuration and, when
// RUN_MIGRATIONS=true, migrates the schema.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	var (
		db  *gorm.DB
		err error
	)
	if cfg.URL != "" {
		db, err = ConnectWithRetry(cfg.URL, 60*time.Second, PostgresOpener())
	} else {
		db, err = SQLiteOpener()(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&txentity.Transaction{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
