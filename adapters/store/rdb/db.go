package rdb

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenFromURL opens a GORM DB based on a simple store-url string.
// Supported:
//   - sqlite:<dsn>   e.g., sqlite:./slipway.db or sqlite::memory:
//   - sqlite3:<dsn>  alias of sqlite
func OpenFromURL(storeURL string) (*gorm.DB, error) {
	switch {
	case strings.HasPrefix(storeURL, "sqlite:"):
		dsn := strings.TrimPrefix(storeURL, "sqlite:")
		if dsn == "" {
			dsn = "./slipway.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case strings.HasPrefix(storeURL, "sqlite3:"):
		dsn := strings.TrimPrefix(storeURL, "sqlite3:")
		if dsn == "" {
			dsn = "./slipway.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported store scheme: %s", storeURL)
	}
}

// AutoMigrate applies schema migrations for all RDB models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&RevisionRecord{})
}
