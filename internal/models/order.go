package models

// Order is a single purchase. PriceCents is captured when the order is placed
// and never follows later changes to the product price.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID *uint     `gorm:"index" json:"customer_id"`
	Customer   *Customer `json:"customer,omitempty"`
	PriceCents *int64    `json:"price_cents"`
	Products   []Product `gorm:"many2many:orders_products" json:"products,omitempty"`
}

// TableName returns the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrdersProduct links one order to one product. The pair is not unique:
// an order may reference the same product more than once.
type OrdersProduct struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
}

// TableName returns the table name for OrdersProduct
func (OrdersProduct) TableName() string {
	return "orders_products"
}
