package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pankajredekar/storefront/internal/config"
	"github.com/pankajredekar/storefront/internal/migrations"
	"github.com/pankajredekar/storefront/internal/runner"
	"github.com/pankajredekar/storefront/internal/versioner"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Connect opens the database named by cfg.DatabaseURL. SQL is logged through
// logger: every statement when cfg.LogSQL is set, otherwise only slow or
// failing ones.
func Connect(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	dialector, memory, err := dialectorFor(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(logger, cfg.LogSQL)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// every pooled connection to :memory: would see its own empty database
	if memory {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return postgres.Open(databaseURL), false, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		return sqlite.Open(path), path == ":memory:", nil
	}
	return nil, false, fmt.Errorf("unsupported database URL: %s", databaseURL)
}

func newGormLogger(logger *slog.Logger, logSQL bool) gormlogger.Interface {
	if logger == nil {
		logger = slog.Default()
	}
	level := gormlogger.Warn
	if logSQL {
		level = gormlogger.Info
	}
	return gormlogger.New(slog.NewLogLogger(logger.Handler(), slog.LevelInfo), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// NewRunner wires the storefront migrations to db, recording versions in table
func NewRunner(db *gorm.DB, table string, logger *slog.Logger) (*runner.Runner, *versioner.Versioner, error) {
	ver := versioner.NewVersioner(db, table)
	if err := ver.Initialize(); err != nil {
		return nil, nil, err
	}
	return runner.NewRunner(db, migrations.Registry(), ver).WithLogger(logger), ver, nil
}

// Migrate applies every pending migration and returns how many ran
func Migrate(db *gorm.DB, table string, logger *slog.Logger) (int, error) {
	run, _, err := NewRunner(db, table, logger)
	if err != nil {
		return 0, err
	}
	return run.Migrate()
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
