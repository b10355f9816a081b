package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	"github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/order/repository"
)

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&domain.SalesOrder{},
		&domain.OrderItem{},
		&inventory.InventoryAdjustment{},
	)
	require.NoError(t, err)

	return db
}

func seedCheckoutProduct(t *testing.T, db *gorm.DB, sku string, price float64, stock int) *catalog.Product {
	product := &catalog.Product{
		Name:            "Product " + sku,
		SKU:             sku,
		UnitPrice:       price,
		QuantityInStock: stock,
		IsActive:        true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCheckout(t *testing.T) {
	t.Run("creates the order with items and stock decrements", func(t *testing.T) {
		db := setupCheckoutTestDB(t)
		handler := NewCheckoutHandler(repository.NewGormCheckoutStore(db))
		product := seedCheckoutProduct(t, db, "SKU-1", 100.00, 10)

		// 2 x 100 subtotal + 12% VAT = 224
		created, err := handler.Handle(CheckoutCommand{
			UserID:        1,
			Items:         []CheckoutItem{{ProductID: product.ID, Quantity: 2}},
			PaymentMethod: "cash",
			AmountGiven:   250.00,
		})
		require.NoError(t, err)

		assert.NotEmpty(t, created.OrderCode)
		assert.Equal(t, 224.00, created.TotalPrice)
		assert.Equal(t, 26.00, created.ChangeDue)
		require.Len(t, created.Items, 1)
		assert.Equal(t, 100.00, created.Items[0].UnitPrice)

		var product2 catalog.Product
		require.NoError(t, db.First(&product2, product.ID).Error)
		assert.Equal(t, 8, product2.QuantityInStock)

		var adjustment inventory.InventoryAdjustment
		require.NoError(t, db.First(&adjustment).Error)
		assert.Equal(t, -2, adjustment.QuantityChanged)
		assert.Equal(t, "sale", adjustment.Reason)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		db := setupCheckoutTestDB(t)
		handler := NewCheckoutHandler(repository.NewGormCheckoutStore(db))

		_, err := handler.Handle(CheckoutCommand{UserID: 1, AmountGiven: 100})
		assert.ErrorIs(t, err, domain.ErrEmptyOrder)
	})

	t.Run("rejects payment below the total", func(t *testing.T) {
		db := setupCheckoutTestDB(t)
		handler := NewCheckoutHandler(repository.NewGormCheckoutStore(db))
		product := seedCheckoutProduct(t, db, "SKU-1", 100.00, 10)

		_, err := handler.Handle(CheckoutCommand{
			UserID:      1,
			Items:       []CheckoutItem{{ProductID: product.ID, Quantity: 2}},
			AmountGiven: 200.00,
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientPayment)

		// Nothing persisted
		var count int64
		require.NoError(t, db.Model(&domain.SalesOrder{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("insufficient stock rolls everything back", func(t *testing.T) {
		db := setupCheckoutTestDB(t)
		handler := NewCheckoutHandler(repository.NewGormCheckoutStore(db))
		product := seedCheckoutProduct(t, db, "SKU-1", 10.00, 1)

		_, err := handler.Handle(CheckoutCommand{
			UserID:      1,
			Items:       []CheckoutItem{{ProductID: product.ID, Quantity: 3}},
			AmountGiven: 100.00,
		})
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

		var orders, items int64
		require.NoError(t, db.Model(&domain.SalesOrder{}).Count(&orders).Error)
		require.NoError(t, db.Model(&domain.OrderItem{}).Count(&items).Error)
		assert.Zero(t, orders)
		assert.Zero(t, items)

		var product2 catalog.Product
		require.NoError(t, db.First(&product2, product.ID).Error)
		assert.Equal(t, 1, product2.QuantityInStock)
	})

	t.Run("unknown product fails", func(t *testing.T) {
		db := setupCheckoutTestDB(t)
		handler := NewCheckoutHandler(repository.NewGormCheckoutStore(db))

		_, err := handler.Handle(CheckoutCommand{
			UserID:      1,
			Items:       []CheckoutItem{{ProductID: 99, Quantity: 1}},
			AmountGiven: 100.00,
		})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}
