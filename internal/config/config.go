package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile           = "storefront.yml"
	DefaultMigrationTable = "_storefront_migrations"
	DefaultTopProducts    = 5

	EnvDatabaseURL = "STOREFRONT_DATABASE_URL"
	EnvLogLevel    = "STOREFRONT_LOG_LEVEL"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

type Config struct {
	DatabaseURL               string `yaml:"database_url"`
	MigrationTable            string `yaml:"migration_table"`
	LogLevel                  string `yaml:"log_level"`
	LogSQL                    bool   `yaml:"log_sql"`
	TopProducts               int    `yaml:"top_products"`
	PreventDuplicatePurchases bool   `yaml:"prevent_duplicate_purchases"`
}

// Default returns the configuration written by `storefront init`
func Default() *Config {
	return &Config{
		DatabaseURL:    "sqlite://storefront.db",
		MigrationTable: DefaultMigrationTable,
		LogLevel:       "info",
		TopProducts:    DefaultTopProducts,
	}
}

// LoadConfig reads configPath, loads a .env file next to it when present and
// applies STOREFRONT_* environment overrides.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	cfg.applyEnv()

	if cfg.MigrationTable == "" {
		cfg.MigrationTable = DefaultMigrationTable
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.TopProducts == 0 {
		cfg.TopProducts = DefaultTopProducts
	}

	cfg.DatabaseURL = resolveSQLitePath(cfg.DatabaseURL, filepath.Dir(configPath))

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// resolveSQLitePath makes a relative sqlite file path relative to baseDir
func resolveSQLitePath(databaseURL, baseDir string) string {
	path, ok := strings.CutPrefix(databaseURL, "sqlite://")
	if !ok || path == ":memory:" || strings.HasPrefix(path, "file:") || filepath.IsAbs(path) {
		return databaseURL
	}
	return "sqlite://" + filepath.Join(baseDir, path)
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if !strings.HasPrefix(c.DatabaseURL, "sqlite://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("database_url must start with sqlite://, postgres:// or postgresql://")
	}
	if !logLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	if c.TopProducts <= 0 {
		return fmt.Errorf("top_products must be greater than 0")
	}
	return nil
}
