package cli

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/pankajredekar/storefront/internal/config"
	"github.com/pankajredekar/storefront/internal/database"
	"github.com/pankajredekar/storefront/internal/store"
	"github.com/pankajredekar/storefront/internal/utils"
	"gorm.io/gorm"
)

// mustLoadConfig loads and validates the configuration or exits
func mustLoadConfig() (*config.Config, *slog.Logger) {
	if !utils.FileExists(configPath) {
		utils.PrintError("%s not found. Run 'storefront init' first", configPath)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		utils.PrintError("Failed to load config: %v", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		utils.PrintError("Invalid config: %v", err)
		os.Exit(1)
	}

	return cfg, utils.NewLogger(os.Stderr, cfg.LogLevel)
}

// mustConnect opens the configured database or exits
func mustConnect(cfg *config.Config, logger *slog.Logger) *gorm.DB {
	db, err := database.Connect(cfg, logger)
	if err != nil {
		utils.PrintError("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	return db
}

// mustOpenStore connects, applies pending migrations and builds the store
func mustOpenStore() (*config.Config, *store.Store, func()) {
	cfg, logger := mustLoadConfig()
	db := mustConnect(cfg, logger)

	n, err := database.Migrate(db, cfg.MigrationTable, logger)
	if err != nil {
		utils.PrintError("Failed to apply migrations: %v", err)
		os.Exit(1)
	}
	if n > 0 {
		logger.Info("schema initialised", slog.Int("migrations", n))
	}

	s := store.New(db)
	if cfg.PreventDuplicatePurchases {
		s.WithPurchaseGuard(store.DistinctPurchaseGuard{})
	}

	return cfg, s, func() {
		if err := database.Close(db); err != nil {
			logger.Warn("failed to close database", slog.Any("error", err))
		}
	}
}

// formatCents renders an amount in cents as "123.45"
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// parseCents parses "123", "123.4" or "123.45" into cents
func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if amount.Exponent() < -2 {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}

	cents := amount.Shift(2)
	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || cents.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, fmt.Errorf("invalid amount %q: out of range", s)
	}
	return cents.IntPart(), nil
}
