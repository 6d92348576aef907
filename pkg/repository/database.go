// Package repository stores tasks and tags with gorm on sqlite or postgres.
package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kutbudev/yaru/internal/config"
	"github.com/kutbudev/yaru/internal/logger"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database wraps the gorm connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase connects to the database selected by cfg and migrates the schema.
func NewDatabase(cfg *config.StorageConfig, log *zap.Logger, logLevel string) (*Database, error) {
	db, err := Connect(cfg, log, logLevel)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}
	return db, nil
}

// Connect opens the database selected by cfg and applies the pool limits.
func Connect(cfg *config.StorageConfig, log *zap.Logger, logLevel string) (*Database, error) {
	var dialector gorm.Dialector
	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns

	switch cfg.Driver {
	case config.DriverSQLite:
		dsn, err := cfg.SQLiteDSN()
		if err != nil {
			return nil, err
		}
		if file := cfg.SQLiteFile(); file != "" {
			if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		} else {
			// Every connection to :memory: opens a separate database.
			maxOpen, maxIdle = 1, 1
		}
		dialector = sqlite.Open(dsn)
	case config.DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        cfg.PostgresDSN(),
		})
	default:
		return nil, fmt.Errorf("driver %q is not a database driver", cfg.Driver)
	}

	db, err := Open(dialector, log, logger.MapGormLogLevel(logLevel))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	return db, nil
}

// Open connects through dialector without migrating.
func Open(dialector gorm.Dialector, log *zap.Logger, level gormlogger.LogLevel) (*Database, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(log, level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Health pings the database
func (d *Database) Health(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
