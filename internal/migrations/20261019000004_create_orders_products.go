package migrations

import (
	"github.com/pankajredekar/storefront/internal/schema"
	"gorm.io/gorm"
)

// CreateOrdersProducts creates the order/product join table. The
// (order_id, product_id) pair is intentionally not unique.
type CreateOrdersProducts struct{}

func (m CreateOrdersProducts) Version() string { return "20261019000004" }

func (m CreateOrdersProducts) Name() string { return "create_orders_products" }

func (m CreateOrdersProducts) Up(db *gorm.DB) error {
	type ordersProduct struct {
		ID        uint `gorm:"primaryKey"`
		OrderID   uint `gorm:"not null;index:idx_orders_products_order_id"`
		ProductID uint `gorm:"not null;index:idx_orders_products_product_id"`
	}
	return db.Table("orders_products").AutoMigrate(&ordersProduct{})
}

func (m CreateOrdersProducts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders_products")
}

func (m CreateOrdersProducts) Simulate(sb *schema.SchemaBuilder) {
	sb.CreateTable("orders_products").
		AddColumnWithOptions("id", "bigint", false, true, false).
		AddColumnWithOptions("order_id", "bigint", false, false, false).
		AddColumnWithOptions("product_id", "bigint", false, false, false).
		AddIndex("idx_orders_products_order_id").
		AddIndex("idx_orders_products_product_id")
}

func init() {
	register(CreateOrdersProducts{})
}
