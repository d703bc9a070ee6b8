package Models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

const ISODateTime = "2006-01-02 15:04:05"

func UTCNowString() string {
	return time.Now().UTC().Format(ISODateTime)
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Connect opens the configured backend and migrates the schema. DB_BACKEND
// selects sqlite (DB_PATH) or postgres (DB_HOST/DB_PORT/DB_NAME/DB_USER/
// DB_PASSWORD). On Cloud SQL the host is a /cloudsql/... unix socket path.
func Connect() error {
	backend := env("DB_BACKEND", "postgres")

	var err error
	if backend == "sqlite" {
		path := env("DB_PATH", "data/app.db")
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	} else {
		name := os.Getenv("DB_NAME")
		user := os.Getenv("DB_USER")
		if name == "" || user == "" {
			return fmt.Errorf("missing DB_NAME/DB_USER environment variables")
		}
		dsn := fmt.Sprintf("user=%s password=%s dbname=%s port=%s sslmode=disable",
			user, os.Getenv("DB_PASSWORD"), name, env("DB_PORT", "5432"))
		if host := os.Getenv("DB_HOST"); host != "" {
			dsn += " host=" + host
		}
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return err
	}

	if err := Migrate(DB); err != nil {
		return err
	}
	log.Printf("connected to %s backend", backend)
	return nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Person{},
		&Parte{},
		&Item{},
	)
}
