package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/schooltest/config"
	"github.com/lshigami/schooltest/database"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var ResultTables = []string{"quiz_results", "drawing_results"}

// DB opens a migrated SQLite database in a per-test temp dir.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.Open(config.Database{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(tb.TempDir(), "test.db"),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	db.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	if err := database.AutoMigrate(db, ResultTables); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Tx begins a transaction rolled back at test end.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("failed to begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() { _ = tx.Rollback().Error })
	return tx
}

func Config() *config.Config {
	cfg := &config.Config{}
	cfg.Database.TxTimeout = 10 * time.Second
	cfg.Retest.SubmitMaxRetries = 3
	cfg.Auth.JWTSecret = "test-secret"
	cfg.ResultTables = ResultTables
	return cfg
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock { return &Clock{now: now.UTC()} }

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
