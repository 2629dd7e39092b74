package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slipway-dev/slipway/adapters/store/inmem"
	"github.com/slipway-dev/slipway/adapters/store/rdb"
	"github.com/slipway-dev/slipway/domain"
)

// getStoreURL extracts the store-url flag value from the command hierarchy.
func getStoreURL(cmd *cobra.Command) string {
	return flagString(cmd, "store-url", "sqlite:./slipway.db")
}

// buildRevisionRepository creates the revision store selected by store-url.
// memory: stores live only for the process; sqlite: persists across runs.
func buildRevisionRepository(cmd *cobra.Command) (domain.RevisionRepository, error) {
	storeURL := getStoreURL(cmd)

	switch {
	case strings.HasPrefix(storeURL, "memory:"):
		return inmem.NewRevisionRepository(), nil

	case strings.HasPrefix(storeURL, "sqlite:") || strings.HasPrefix(storeURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(storeURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, err
		}
		return rdb.NewRevisionRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported store scheme: %s", storeURL)
	}
}
