package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/4oBuko/spycats/internal/config"
	"github.com/4oBuko/spycats/internal/models"
)

// Open connects to the configured database. SQLite is limited to a single
// connection so that in-memory databases are shared by every query.
func Open(cfg config.Database, log *zap.SugaredLogger, debug bool) (*gorm.DB, error) {
	dialector, err := dialect(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	gormLogger := logger.New(zap.NewStdLog(log.Desugar()), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetConnMaxLifetime(time.Minute * 3)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(10)
	}
	return db, nil
}

func dialect(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "mysql":
		dsn, err := NormalizeMySQLDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NormalizeMySQLDSN validates dsn and turns on the options the repositories
// rely on: parsed time values and matched (not changed) row counts.
func NormalizeMySQLDSN(dsn string) (string, error) {
	parsed, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	parsed.ParseTime = true
	parsed.ClientFoundRows = true
	return parsed.FormatDSN(), nil
}

// Migrate creates or updates the cats, missions and targets tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Cat{}, &models.Mission{}, &models.Target{}); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping reports whether the database still answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
