package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "conversation_backend/internal/feature/auth/adapters"
	authentity "conversation_backend/internal/feature/auth/domain/entity"
	conventity "conversation_backend/internal/feature/conversations/domain/entity"
)

// Config holds the storage configuration, fixed at process startup.
type Config struct {
	Driver   string // "sqlite" (default) or "postgres"
	Path     string // SQLite database file location
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// LoadConfigFromEnv loads storage configuration from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:   os.Getenv("DB_DRIVER"),
		Path:     os.Getenv("DB_PATH"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.Path == "" {
		cfg.Path = "./conversations.db"
	}
	return cfg
}

// BuildDSN returns the driver DSN for the given configuration.
// The SQLite DSN turns foreign-key enforcement on; the cascade from users
// to their conversations depends on it.
func BuildDSN(cfg Config) string {
	if cfg.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("file:%s?_fk=1", cfg.Path)
}

// openerFunc opens a GORM connection for a DSN.
type openerFunc func(dsn string) (*gorm.DB, error)

// gormOpener returns the real opener for the configured backend.
// TranslateError maps driver-specific constraint violations onto
// gorm.ErrDuplicatedKey so the adapters stay backend-agnostic.
func gormOpener(cfg Config) openerFunc {
	return func(dsn string) (*gorm.DB, error) {
		if cfg.Driver == "postgres" {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	}
}

// ConnectWithRetry attempts to connect to the database, retrying every
// 3 seconds until the timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener openerFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB opens the configured database and runs migrations when requested.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, gormOpener(cfg))
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Conversation, Session）
		if err := db.AutoMigrate(
			&authentity.User{},
			&conventity.Conversation{},
			&authadapters.SessionModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
