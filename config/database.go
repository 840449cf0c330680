package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDatabase establishes a connection to the database.
// PostgreSQL is used when DATABASE_URL has a postgres scheme; anything else
// is treated as a SQLite DSN (file path or :memory:), which is the default
// for local development since the transaction table is a single flat import.
func ConnectDatabase() error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Fallback to a local SQLite file for development
		databaseURL = "file:menu_analytics.db"
		log.Println("DATABASE_URL not set, using default:", databaseURL)
	}

	dialector := openDialector(databaseURL)

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established successfully")
	return nil
}

// openDialector selects the GORM driver based on the URL scheme
func openDialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(strings.TrimPrefix(databaseURL, "file:"))
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
