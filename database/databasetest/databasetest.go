// Package databasetest provides throwaway in-memory databases for tests.
package databasetest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront-api/database"
	"gorm.io/gorm"
)

// New returns a migrated SQLite database private to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	// one connection keeps shared-cache sqlite from reporting locked tables
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
