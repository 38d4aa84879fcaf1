package runner

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/pankajredekar/storefront/internal/schema"
	"github.com/pankajredekar/storefront/internal/versioner"
	"gorm.io/gorm"
)

// Migration is a single, reversible schema change
type Migration interface {
	Version() string
	Name() string
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// Simulator is implemented by migrations that can describe their effect on
// an in-memory schema.
type Simulator interface {
	Simulate(sb *schema.SchemaBuilder)
}

// Registry holds migrations keyed by version
type Registry struct {
	migrations map[string]Migration
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		migrations: make(map[string]Migration),
	}
}

// RegisterMigration registers a migration, replacing any with the same version
func (r *Registry) RegisterMigration(m Migration) {
	r.migrations[m.Version()] = m
}

// GetMigration returns a migration by version
func (r *Registry) GetMigration(version string) (Migration, bool) {
	m, ok := r.migrations[version]
	return m, ok
}

// GetAllMigrations returns all migrations sorted by version
func (r *Registry) GetAllMigrations() []Migration {
	migrations := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		migrations = append(migrations, m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version() < migrations[j].Version()
	})
	return migrations
}

// Runner applies and rolls back migrations
type Runner struct {
	db        *gorm.DB
	registry  *Registry
	versioner *versioner.Versioner
	logger    *slog.Logger
}

// NewRunner creates a new migration runner
func NewRunner(db *gorm.DB, registry *Registry, versioner *versioner.Versioner) *Runner {
	return &Runner{
		db:        db,
		registry:  registry,
		versioner: versioner,
		logger:    slog.Default(),
	}
}

// WithLogger replaces the runner's logger
func (r *Runner) WithLogger(logger *slog.Logger) *Runner {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Migrate applies all pending migrations in version order and returns how
// many were applied.
func (r *Runner) Migrate() (int, error) {
	pending, err := r.GetPendingMigrations()
	if err != nil {
		return 0, err
	}

	for i, m := range pending {
		if err := m.Up(r.db); err != nil {
			return i, fmt.Errorf("failed to apply migration %s: %w", m.Version(), err)
		}
		if err := r.versioner.RecordApplied(m.Version(), m.Name()); err != nil {
			return i, fmt.Errorf("failed to record migration %s: %w", m.Version(), err)
		}
		r.logger.Info("migration applied", slog.String("version", m.Version()), slog.String("name", m.Name()))
	}

	return len(pending), nil
}

// Rollback reverts the last n applied migrations, newest first
func (r *Runner) Rollback(n int) error {
	applied, err := r.versioner.AppliedVersions()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	if len(applied) == 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	if n > len(applied) {
		n = len(applied)
	}

	for i := len(applied) - 1; i >= len(applied)-n; i-- {
		version := applied[i]
		m, ok := r.registry.GetMigration(version)
		if !ok {
			return fmt.Errorf("migration %s not found in registry", version)
		}

		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", version, err)
		}

		if err := r.versioner.RemoveApplied(version); err != nil {
			return fmt.Errorf("failed to remove migration record %s: %w", version, err)
		}
		r.logger.Info("migration rolled back", slog.String("version", version), slog.String("name", m.Name()))
	}

	return nil
}

// GetPendingMigrations returns registered migrations that haven't been applied
func (r *Runner) GetPendingMigrations() ([]Migration, error) {
	applied, err := r.versioner.AppliedVersions()
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	appliedMap := make(map[string]bool, len(applied))
	for _, v := range applied {
		appliedMap[v] = true
	}

	var pending []Migration
	for _, m := range r.registry.GetAllMigrations() {
		if !appliedMap[m.Version()] {
			pending = append(pending, m)
		}
	}

	return pending, nil
}

// GetAppliedMigrations returns applied migrations known to the registry
func (r *Runner) GetAppliedMigrations() ([]Migration, error) {
	applied, err := r.versioner.AppliedVersions()
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	var migrations []Migration
	for _, v := range applied {
		if m, ok := r.registry.GetMigration(v); ok {
			migrations = append(migrations, m)
		}
	}

	return migrations, nil
}

// SimulateSchema replays every migration that implements Simulator. It needs
// no database connection.
func (r *Runner) SimulateSchema() *schema.SchemaBuilder {
	builder := schema.NewSchemaBuilder()
	for _, m := range r.registry.GetAllMigrations() {
		if sim, ok := m.(Simulator); ok {
			sim.Simulate(builder)
		}
	}
	return builder
}
