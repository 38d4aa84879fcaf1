package models

// Customer is a named buyer. Email is stored as given.
type Customer struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Orders []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}

// TableName returns the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
