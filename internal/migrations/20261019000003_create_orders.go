package migrations

import (
	"github.com/pankajredekar/storefront/internal/schema"
	"gorm.io/gorm"
)

type CreateOrders struct{}

func (m CreateOrders) Version() string { return "20261019000003" }

func (m CreateOrders) Name() string { return "create_orders" }

func (m CreateOrders) Up(db *gorm.DB) error {
	type order struct {
		ID         uint  `gorm:"primaryKey"`
		CustomerID *uint `gorm:"index:idx_orders_customer_id"`
		PriceCents *int64
	}
	return db.Table("orders").AutoMigrate(&order{})
}

func (m CreateOrders) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

func (m CreateOrders) Simulate(sb *schema.SchemaBuilder) {
	sb.CreateTable("orders").
		AddColumnWithOptions("id", "bigint", false, true, false).
		AddColumnWithOptions("customer_id", "bigint", true, false, false).
		AddColumnWithOptions("price_cents", "bigint", true, false, false).
		AddIndex("idx_orders_customer_id")
}

func init() {
	register(CreateOrders{})
}
