package migrations

import (
	"github.com/pankajredekar/storefront/internal/schema"
	"gorm.io/gorm"
)

type CreateCustomers struct{}

func (m CreateCustomers) Version() string { return "20261019000001" }

func (m CreateCustomers) Name() string { return "create_customers" }

func (m CreateCustomers) Up(db *gorm.DB) error {
	type customer struct {
		ID    uint `gorm:"primaryKey"`
		Name  string
		Email string
	}
	return db.Table("customers").AutoMigrate(&customer{})
}

func (m CreateCustomers) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("customers")
}

func (m CreateCustomers) Simulate(sb *schema.SchemaBuilder) {
	sb.CreateTable("customers").
		AddColumnWithOptions("id", "bigint", false, true, false).
		AddColumnWithOptions("name", "string", true, false, false).
		AddColumnWithOptions("email", "string", true, false, false)
}

func init() {
	register(CreateCustomers{})
}
