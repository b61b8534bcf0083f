package database

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"time"

	"github.com/lshigami/schooltest/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewDatabase opens the configured database. fx provider.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	return Open(cfg.Database)
}

// Open connects to Postgres or SQLite. SQLite runs every transaction as
// BEGIN IMMEDIATE so concurrent submissions queue on the write lock.
func Open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags), gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Driver).Msg("Failed to connect to database")
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(4)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	log.Info().Str("driver", cfg.Driver).Msg("Database connection established")
	return db, nil
}

func SQLiteDSN(path string) string {
	if path == "" {
		path = "schooltest.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	return path + sep + "_busy_timeout=10000&_txlock=immediate&_foreign_keys=on"
}
