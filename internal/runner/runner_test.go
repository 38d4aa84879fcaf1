package runner

import (
	"errors"
	"slices"
	"testing"

	"github.com/pankajredekar/storefront/internal/schema"
	"github.com/pankajredekar/storefront/internal/versioner"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestMigration implements the Migration interface
type TestMigration struct {
	version  string
	name     string
	upFunc   func(*gorm.DB) error
	downFunc func(*gorm.DB) error
}

func (m TestMigration) Version() string { return m.version }
func (m TestMigration) Name() string    { return m.name }
func (m TestMigration) Up(db *gorm.DB) error {
	if m.upFunc != nil {
		return m.upFunc(db)
	}
	return nil
}
func (m TestMigration) Down(db *gorm.DB) error {
	if m.downFunc != nil {
		return m.downFunc(db)
	}
	return nil
}

// simulatedMigration also implements Simulator
type simulatedMigration struct {
	TestMigration
	table string
}

func (m simulatedMigration) Simulate(sb *schema.SchemaBuilder) {
	sb.CreateTable(m.table).AddColumnWithOptions("id", "bigint", false, true, false)
}

func setupTestRunner(t *testing.T) (*gorm.DB, *Registry, *versioner.Versioner, *Runner) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	registry := NewRegistry()
	ver := versioner.NewVersioner(db, "_test_migrations")
	if err := ver.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return db, registry, ver, NewRunner(db, registry, ver)
}

func TestGetAllMigrationsSorted(t *testing.T) {
	registry := NewRegistry()
	for _, m := range []Migration{
		TestMigration{version: "0003", name: "third"},
		TestMigration{version: "0001", name: "first"},
		TestMigration{version: "0002", name: "second"},
	} {
		registry.RegisterMigration(m)
	}

	all := registry.GetAllMigrations()
	if len(all) != 3 {
		t.Fatalf("Expected 3 migrations, got %d", len(all))
	}
	if all[0].Version() != "0001" || all[2].Version() != "0003" {
		t.Errorf("Expected ascending versions, got %s..%s", all[0].Version(), all[2].Version())
	}
}

func TestMigrate(t *testing.T) {
	db, registry, ver, run := setupTestRunner(t)

	registry.RegisterMigration(TestMigration{
		version: "0001",
		name:    "create_test_table",
		upFunc: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE test_table (id INTEGER)").Error
		},
	})

	n, err := run.Migrate()
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 applied migration, got %d", n)
	}
	if !db.Migrator().HasTable("test_table") {
		t.Error("test_table should exist")
	}
	if versions, _ := ver.AppliedVersions(); !slices.Contains(versions, "0001") {
		t.Error("Migration should be marked as applied")
	}

	// second run is a no-op
	n, err = run.Migrate()
	if err != nil {
		t.Fatalf("Second Migrate failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 applied migrations, got %d", n)
	}
}

func TestMigrateStopsOnFailure(t *testing.T) {
	_, registry, ver, run := setupTestRunner(t)

	boom := errors.New("boom")
	registry.RegisterMigration(TestMigration{version: "0001", name: "ok"})
	registry.RegisterMigration(TestMigration{
		version: "0002",
		name:    "fails",
		upFunc:  func(*gorm.DB) error { return boom },
	})
	registry.RegisterMigration(TestMigration{version: "0003", name: "never"})

	n, err := run.Migrate()
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 applied migration, got %d", n)
	}
	if versions, _ := ver.AppliedVersions(); slices.Contains(versions, "0003") {
		t.Error("Migration after a failure should not be applied")
	}
}

func TestGetPendingMigrations(t *testing.T) {
	_, registry, ver, run := setupTestRunner(t)

	registry.RegisterMigration(TestMigration{version: "0001", name: "first"})
	registry.RegisterMigration(TestMigration{version: "0002", name: "second"})
	if err := ver.RecordApplied("0001", "first"); err != nil {
		t.Fatalf("RecordApplied failed: %v", err)
	}

	pending, err := run.GetPendingMigrations()
	if err != nil {
		t.Fatalf("GetPendingMigrations failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Version() != "0002" {
		t.Errorf("Expected only 0002 pending, got %v", pending)
	}

	applied, err := run.GetAppliedMigrations()
	if err != nil {
		t.Fatalf("GetAppliedMigrations failed: %v", err)
	}
	if len(applied) != 1 || applied[0].Name() != "first" {
		t.Errorf("Expected only 'first' applied, got %v", applied)
	}
}

func TestRollback(t *testing.T) {
	_, registry, ver, run := setupTestRunner(t)

	var downs []string
	for _, v := range []string{"0001", "0002"} {
		version := v
		registry.RegisterMigration(TestMigration{
			version:  version,
			name:     "m" + version,
			downFunc: func(*gorm.DB) error { downs = append(downs, version); return nil },
		})
	}
	if _, err := run.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	if err := run.Rollback(5); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	if len(downs) != 2 || downs[0] != "0002" || downs[1] != "0001" {
		t.Errorf("Expected newest-first rollback, got %v", downs)
	}
	if count, _ := ver.AppliedCount(); count != 0 {
		t.Errorf("Expected no applied migrations, got %d", count)
	}

	if err := run.Rollback(1); err == nil {
		t.Error("Rollback with nothing applied should error")
	}
}

func TestSimulateSchema(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterMigration(simulatedMigration{TestMigration: TestMigration{version: "0001"}, table: "customers"})
	registry.RegisterMigration(TestMigration{version: "0002"})
	registry.RegisterMigration(simulatedMigration{TestMigration: TestMigration{version: "0003"}, table: "products"})

	builder := NewRunner(nil, registry, nil).SimulateSchema()

	if !builder.TableExists("customers") || !builder.TableExists("products") {
		t.Errorf("Expected simulated tables, got %v", builder.Schema.TableNames())
	}
	if len(builder.Schema.Tables) != 2 {
		t.Errorf("Expected 2 tables, got %d", len(builder.Schema.Tables))
	}
}
