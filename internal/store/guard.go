package store

import (
	"fmt"

	"github.com/pankajredekar/storefront/internal/models"
	"gorm.io/gorm"
)

// PurchaseGuard vets an order before it is written. It runs on the order's
// transaction; returning an error aborts the order.
type PurchaseGuard interface {
	CheckPurchase(tx *gorm.DB, customerID *uint, productIDs []uint) error
}

// DistinctPurchaseGuard stops a customer from buying the same product twice,
// either across orders or within one order. Orders without a customer are
// not checked.
//
// This is a check-then-insert: two concurrent requests can both pass. Under
// concurrency it must be backed by a unique (customer_id, product_id)
// constraint or an idempotency key from the client.
type DistinctPurchaseGuard struct{}

func (DistinctPurchaseGuard) CheckPurchase(tx *gorm.DB, customerID *uint, productIDs []uint) error {
	if customerID == nil || len(productIDs) == 0 {
		return nil
	}

	seen := make(map[uint]bool, len(productIDs))
	for _, id := range productIDs {
		if seen[id] {
			return fmt.Errorf("product %d listed twice: %w", id, ErrDuplicatePurchase)
		}
		seen[id] = true
	}

	var owned []uint
	err := tx.Model(&models.OrdersProduct{}).
		Joins("JOIN orders ON orders.id = orders_products.order_id").
		Where("orders.customer_id = ? AND orders_products.product_id IN ?", *customerID, productIDs).
		Order("orders_products.product_id").
		Pluck("orders_products.product_id", &owned).Error
	if err != nil {
		return fmt.Errorf("failed to check previous purchases: %w", err)
	}
	if len(owned) > 0 {
		return fmt.Errorf("customer %d already owns product %d: %w", *customerID, owned[0], ErrDuplicatePurchase)
	}
	return nil
}
