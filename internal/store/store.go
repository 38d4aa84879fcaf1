package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pankajredekar/storefront/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Store is the repository over customers, products and orders. The caller
// owns the connection and its schema.
type Store struct {
	db    *gorm.DB
	guard PurchaseGuard
}

// New creates a store over db with no purchase guard
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WithPurchaseGuard installs g; it runs inside CreateOrder's transaction
func (s *Store) WithPurchaseGuard(g PurchaseGuard) *Store {
	s.guard = g
	return s
}

// CreateCustomer inserts a customer
func (s *Store) CreateCustomer(ctx context.Context, name, email string) (*models.Customer, error) {
	customer := &models.Customer{Name: name, Email: email}
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// ValidateProduct checks p without persisting it
func (s *Store) ValidateProduct(p models.Product) models.Errors {
	return p.Validate()
}

// CreateProduct validates and inserts a product. A failed validation is
// returned as *models.ValidationError and nothing is written.
func (s *Store) CreateProduct(ctx context.Context, name, path string, priceCents int64) (*models.Product, error) {
	product := &models.Product{Name: name, Path: path, PriceCents: priceCents}
	if errs := product.Validate(); !errs.Valid() {
		return nil, &models.ValidationError{Model: "Product", Errors: errs}
	}
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProductPrice changes a product's current price. Orders keep the
// price they were placed with.
func (s *Store) UpdateProductPrice(ctx context.Context, id uint, priceCents int64) (*models.Product, error) {
	product, err := s.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.PriceCents = priceCents
	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return product, nil
}

// CreateOrder inserts an order and one orders_products row per entry of
// productIDs. Repeated IDs produce repeated rows.
func (s *Store) CreateOrder(ctx context.Context, customerID *uint, productIDs []uint, priceCents *int64) (*models.Order, error) {
	if priceCents != nil && *priceCents < 0 {
		return nil, fmt.Errorf("order price must not be negative, got %d: %w", *priceCents, ErrInvalidArgument)
	}
	order := &models.Order{CustomerID: customerID, PriceCents: priceCents}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if customerID != nil {
			if err := exists(tx, &models.Customer{}, "customer", *customerID); err != nil {
				return err
			}
		}
		products, err := loadProducts(tx, productIDs)
		if err != nil {
			return err
		}
		if s.guard != nil {
			if err := s.guard.CheckPurchase(tx, customerID, productIDs); err != nil {
				return err
			}
		}

		if err := tx.Omit("Products", "Customer").Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if len(productIDs) > 0 {
			links := make([]models.OrdersProduct, len(productIDs))
			for i, id := range productIDs {
				links[i] = models.OrdersProduct{OrderID: order.ID, ProductID: id}
			}
			if err := tx.Create(&links).Error; err != nil {
				return fmt.Errorf("failed to link products to order %d: %w", order.ID, err)
			}
		}
		order.Products = products
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AttachOrder assigns an existing order to a customer
func (s *Store) AttachOrder(ctx context.Context, customerID, orderID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &models.Customer{}, "customer", customerID); err != nil {
			return err
		}
		res := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("customer_id", customerID)
		if res.Error != nil {
			return fmt.Errorf("failed to attach order %d: %w", orderID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil
	})
}

// FindOrder returns an order with its customer and products
func (s *Store) FindOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Customer").Preload("Products").First(&order, id).Error
	if err != nil {
		return nil, notFound("order", id, err)
	}
	return &order, nil
}

// FindCustomer returns a customer with its orders
func (s *Store) FindCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Preload("Orders", func(db *gorm.DB) *gorm.DB {
		return db.Order("orders.id ASC")
	}).First(&customer, id).Error
	if err != nil {
		return nil, notFound("customer", id, err)
	}
	return &customer, nil
}

// FindProduct returns a product by id
func (s *Store) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound("product", id, err)
	}
	return &product, nil
}

// ListProducts returns every product in id order
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CountCustomers returns the number of customers
func (s *Store) CountCustomers(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.Customer{}, "customers")
}

// CountProducts returns the number of products
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.Product{}, "products")
}

// CountOrders returns the number of orders
func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	return s.count(ctx, &models.Order{}, "orders")
}

// CountCustomerOrders returns the number of orders referencing customerID
func (s *Store) CountCustomerOrders(ctx context.Context, customerID uint) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders of customer %d: %w", customerID, err)
	}
	return n, nil
}

// DeleteAll removes every row, join rows first. Nothing cascades.
func (s *Store) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []schema.Tabler{&models.OrdersProduct{}, &models.Order{}, &models.Product{}, &models.Customer{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", model.TableName(), err)
			}
		}
		return nil
	})
}

func (s *Store) count(ctx context.Context, model interface{}, resource string) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", resource, err)
	}
	return n, nil
}

func exists(tx *gorm.DB, model interface{}, resource string, id uint) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to look up %s %d: %w", resource, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", resource, id, ErrNotFound)
	}
	return nil
}

// loadProducts returns the products for ids in the order given, repeats included
func loadProducts(tx *gorm.DB, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.Product
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	byID := make(map[uint]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]models.Product, len(ids))
	for i, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		products[i] = p
	}
	return products, nil
}

func notFound(resource string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", resource, id, ErrNotFound)
	}
	return fmt.Errorf("failed to find %s %d: %w", resource, id, err)
}
