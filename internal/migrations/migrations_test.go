package migrations

import (
	"testing"

	"github.com/pankajredekar/storefront/internal/runner"
	"github.com/pankajredekar/storefront/internal/versioner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var tables = []string{"customers", "orders", "orders_products", "products"}

func setupRunner(t *testing.T) (*gorm.DB, *runner.Runner) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	ver := versioner.NewVersioner(db, "")
	require.NoError(t, ver.Initialize())

	return db, runner.NewRunner(db, Registry(), ver)
}

func TestRegistry_VersionsAreOrdered(t *testing.T) {
	all := Registry().GetAllMigrations()
	require.Len(t, all, 4)

	names := make([]string, len(all))
	for i, m := range all {
		names[i] = m.Name()
	}
	assert.Equal(t, []string{"create_customers", "create_products", "create_orders", "create_orders_products"}, names)
}

func TestMigrations_UpCreatesSchema(t *testing.T) {
	db, run := setupRunner(t)

	n, err := run.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, table := range tables {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	columns := map[string][]string{
		"customers":       {"id", "name", "email"},
		"products":        {"id", "name", "path", "price_cents"},
		"orders":          {"id", "customer_id", "price_cents"},
		"orders_products": {"id", "order_id", "product_id"},
	}
	for table, cols := range columns {
		for _, col := range cols {
			assert.True(t, db.Migrator().HasColumn(table, col), "%s.%s", table, col)
		}
	}
	assert.True(t, db.Migrator().HasIndex("orders_products", "idx_orders_products_product_id"))
}

func TestMigrations_DownDropsSchema(t *testing.T) {
	db, run := setupRunner(t)

	_, err := run.Migrate()
	require.NoError(t, err)
	require.NoError(t, run.Rollback(4))

	for _, table := range tables {
		assert.False(t, db.Migrator().HasTable(table), table)
	}
}

func TestMigrations_SimulateMatchesTables(t *testing.T) {
	builder := runner.NewRunner(nil, Registry(), nil).SimulateSchema()

	assert.Equal(t, tables, builder.Schema.TableNames())

	products, ok := builder.GetTable("products")
	require.True(t, ok)
	assert.Equal(t, []string{"id", "name", "path", "price_cents"}, products.ColumnNames())

	orders, ok := builder.GetTable("orders")
	require.True(t, ok)
	customerID, ok := orders.Column("customer_id")
	require.True(t, ok)
	assert.True(t, customerID.Null)
}
