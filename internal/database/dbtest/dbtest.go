// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"testing"

	"impactcore/internal/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory SQLite database private to t.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db := open(t, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the shared-cache database alive and serializes writers.
	sqlDB.SetMaxOpenConns(1)
	return db
}

// NewFileTestDB returns a migrated SQLite database in a temp file that allows
// maxConns concurrent connections, for tests that race transactions.
func NewFileTestDB(t testing.TB, maxConns int) *gorm.DB {
	t.Helper()
	db := open(t, filepath.Join(t.TempDir(), "impact.db")+"?_pragma=busy_timeout(10000)")
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	return db
}

func open(t testing.TB, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
