package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	order "github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/internal/returns/repository"
)

func setupReturnsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&order.SalesOrder{},
		&order.OrderItem{},
		&inventory.InventoryAdjustment{},
		&domain.Return{},
		&domain.Replace{},
	)
	require.NoError(t, err)

	return db
}

func seedTestProduct(t *testing.T, db *gorm.DB, sku string, price float64, stock int) *catalog.Product {
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

// seedTestOrder creates a sales order with a single line item
func seedTestOrder(t *testing.T, db *gorm.DB, productID uint, quantity int, unitPrice float64) *order.SalesOrder {
	o := &order.SalesOrder{
		OrderCode:     order.NewOrderCode(),
		UserID:        1,
		PaymentMethod: "cash",
		TotalPrice:    unitPrice * float64(quantity),
	}
	require.NoError(t, db.Create(o).Error)

	item := &order.OrderItem{
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	require.NoError(t, db.Create(item).Error)

	return o
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func stockOf(t *testing.T, db *gorm.DB, productID uint) int {
	var product catalog.Product
	require.NoError(t, db.First(&product, productID).Error)
	return product.QuantityInStock
}

func TestCreateReturn_ProductReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("removes returned goods from stock", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)

		result, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   product.ID,
			Quantity:   5,
			Reason:     domain.ReasonReturn,
		})
		require.NoError(t, err)
		require.NotNil(t, result.Return)
		assert.Nil(t, result.FollowUp)

		require.NotNil(t, result.Return.ProductID)
		assert.Equal(t, product.ID, *result.Return.ProductID)
		assert.Nil(t, result.Return.OrderID)
		assert.Equal(t, domain.SourceProduct, result.Return.SourceKind())

		assert.Equal(t, 5, stockOf(t, db, product.ID))

		var adjustment inventory.InventoryAdjustment
		require.NoError(t, db.First(&adjustment).Error)
		assert.Equal(t, -5, adjustment.QuantityChanged)
	})

	t.Run("rejects quantity exceeding available stock without writing", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 5)

		_, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   product.ID,
			Quantity:   6,
			Reason:     domain.ReasonReturn,
		})
		assert.ErrorIs(t, err, domain.ErrExceedsAvailableStock)

		assert.Equal(t, 5, stockOf(t, db, product.ID))
		assert.Zero(t, countRows(t, db, &domain.Return{}))
		assert.Zero(t, countRows(t, db, &inventory.InventoryAdjustment{}))
	})

	t.Run("unknown product fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)

		_, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   999,
			Quantity:   1,
			Reason:     domain.ReasonReturn,
		})
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})
}

func TestCreateReturn_OrderReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("restores returned goods to stock", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)
		o := seedTestOrder(t, db, product.ID, 3, 25.00)

		result, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   o.ID,
			Quantity:   2,
			Reason:     domain.ReasonRefund,
		})
		require.NoError(t, err)

		require.NotNil(t, result.Return.OrderID)
		assert.Equal(t, o.ID, *result.Return.OrderID)
		assert.Nil(t, result.Return.ProductID)

		assert.Equal(t, 12, stockOf(t, db, product.ID))

		var adjustment inventory.InventoryAdjustment
		require.NoError(t, db.First(&adjustment).Error)
		assert.Equal(t, 2, adjustment.QuantityChanged)
	})

	t.Run("cumulative returns cannot exceed the ordered quantity", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)
		o := seedTestOrder(t, db, product.ID, 3, 25.00)

		_, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   o.ID,
			Quantity:   2,
			Reason:     domain.ReasonRefund,
		})
		require.NoError(t, err)

		_, err = handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   o.ID,
			Quantity:   2,
			Reason:     domain.ReasonRefund,
		})
		assert.ErrorIs(t, err, domain.ErrExceedsOrderedQuantity)

		// Only the first return survived
		assert.Equal(t, int64(1), countRows(t, db, &domain.Return{}))
		assert.Equal(t, 12, stockOf(t, db, product.ID))
	})

	t.Run("unknown order fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)

		_, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   42,
			Quantity:   1,
			Reason:     domain.ReasonRefund,
		})
		assert.ErrorIs(t, err, order.ErrOrderItemNotFound)
	})
}

func TestCreateReturn_ReplaceFollowUp(t *testing.T) {
	ctx := context.Background()

	t.Run("carries amount into the order creation flow", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)
		product := seedTestProduct(t, db, "SKU-1", 100.00, 10)
		o := seedTestOrder(t, db, product.ID, 3, 100.00)

		result, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   o.ID,
			Quantity:   2,
			Reason:     domain.ReasonReplace,
		})
		require.NoError(t, err)
		require.NotNil(t, result.FollowUp)

		assert.Equal(t, result.Return.ID, result.FollowUp.ReturnID)
		assert.Equal(t, product.ID, result.FollowUp.ProductID)
		assert.Equal(t, 100.00, result.FollowUp.UnitPrice)
		assert.Equal(t, 200.00, result.FollowUp.Amount)
		assert.Contains(t, result.FollowUp.RedirectURL, "amount=200.00")
		assert.Contains(t, result.FollowUp.RedirectURL, fmt.Sprintf("product_id=%d", product.ID))

		// The return itself is still recorded with the stock restored
		assert.Equal(t, 12, stockOf(t, db, product.ID))
	})
}

func TestCreateReturn_Reasons(t *testing.T) {
	ctx := context.Background()

	t.Run("Other substitutes the free-text reason", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)

		result, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:      1,
			SourceType:  domain.SourceProduct,
			SourceID:    product.ID,
			Quantity:    1,
			Reason:      domain.ReasonOther,
			OtherReason: "Damaged in transit",
		})
		require.NoError(t, err)
		assert.Equal(t, "Damaged in transit", result.Return.Reason)
	})

	t.Run("Other without free text fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)

		_, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   1,
			Quantity:   1,
			Reason:     domain.ReasonOther,
		})
		assert.ErrorIs(t, err, domain.ErrMissingOtherReason)
	})

	t.Run("unknown reason fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)

		_, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   1,
			Quantity:   1,
			Reason:     "Whatever",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidReason)
	})

	t.Run("non-positive quantity fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateReturnHandler(store, nil)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)

		_, err := handler.Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   product.ID,
			Quantity:   0,
			Reason:     domain.ReasonReturn,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}
