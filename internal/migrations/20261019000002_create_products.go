package migrations

import (
	"github.com/pankajredekar/storefront/internal/schema"
	"gorm.io/gorm"
)

type CreateProducts struct{}

func (m CreateProducts) Version() string { return "20261019000002" }

func (m CreateProducts) Name() string { return "create_products" }

func (m CreateProducts) Up(db *gorm.DB) error {
	type product struct {
		ID         uint `gorm:"primaryKey"`
		Name       string
		Path       string
		PriceCents int64 `gorm:"not null;default:0"`
	}
	return db.Table("products").AutoMigrate(&product{})
}

func (m CreateProducts) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

func (m CreateProducts) Simulate(sb *schema.SchemaBuilder) {
	sb.CreateTable("products").
		AddColumnWithOptions("id", "bigint", false, true, false).
		AddColumnWithOptions("name", "string", true, false, false).
		AddColumnWithOptions("path", "string", true, false, false).
		AddColumnWithOptions("price_cents", "bigint", false, false, false)
}

func init() {
	register(CreateProducts{})
}
