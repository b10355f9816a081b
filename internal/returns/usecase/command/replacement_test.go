package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	order "github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/internal/returns/repository"
)

func TestCreateOrderReplacement(t *testing.T) {
	ctx := context.Background()

	t.Run("spawns a replacement order with items, stock movements and link", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateOrderReplacementHandler(store, nil)

		original := seedTestProduct(t, db, "SKU-OLD", 100.00, 10)
		replacement := seedTestProduct(t, db, "SKU-NEW", 100.00, 8)
		originalOrder := seedTestOrder(t, db, original.ID, 2, 100.00)

		// 2 x 100 subtotal + 12% VAT = 224
		result, err := handler.Handle(ctx, CreateOrderReplacementCommand{
			UserID:          1,
			OriginalOrderID: originalOrder.ID,
			Items: []ReplacementItem{
				{ProductID: replacement.ID, Quantity: 2, UnitPrice: 100.00},
			},
			PaymentMethod: "cash",
			AmountGiven:   250.00,
			Reason:        domain.ReasonReplace,
		})
		require.NoError(t, err)

		require.NotNil(t, result.Order)
		assert.NotEmpty(t, result.Order.OrderCode)
		assert.Equal(t, 224.00, result.Order.TotalPrice)
		assert.Equal(t, 26.00, result.Order.ChangeDue)

		require.NotNil(t, result.Replacement)
		assert.Equal(t, originalOrder.ID, result.Replacement.OriginalOrderID)
		assert.Equal(t, original.ID, result.Replacement.OriginalProductID)
		assert.Equal(t, replacement.ID, result.Replacement.ReplacementProductID)
		require.NotNil(t, result.Replacement.ReplacementOrderID)
		assert.Equal(t, result.Order.ID, *result.Replacement.ReplacementOrderID)

		// One original order plus the spawned one
		assert.Equal(t, int64(2), countRows(t, db, &order.SalesOrder{}))
		assert.Equal(t, int64(2), countRows(t, db, &order.OrderItem{}))
		assert.Equal(t, int64(1), countRows(t, db, &domain.Replace{}))

		assert.Equal(t, 6, stockOf(t, db, replacement.ID))

		var adjustment inventory.InventoryAdjustment
		require.NoError(t, db.First(&adjustment).Error)
		assert.Equal(t, replacement.ID, adjustment.ProductID)
		assert.Equal(t, -2, adjustment.QuantityChanged)
	})

	t.Run("insufficient stock rolls the whole transaction back", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateOrderReplacementHandler(store, nil)

		original := seedTestProduct(t, db, "SKU-OLD", 10.00, 10)
		replacement := seedTestProduct(t, db, "SKU-NEW", 10.00, 3)
		originalOrder := seedTestOrder(t, db, original.ID, 1, 10.00)

		_, err := handler.Handle(ctx, CreateOrderReplacementCommand{
			UserID:          1,
			OriginalOrderID: originalOrder.ID,
			Items: []ReplacementItem{
				{ProductID: replacement.ID, Quantity: 5, UnitPrice: 10.00},
			},
			PaymentMethod: "cash",
			AmountGiven:   100.00,
			Reason:        domain.ReasonReplace,
		})
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)

		// Nothing from the failed attempt survives
		assert.Equal(t, int64(1), countRows(t, db, &order.SalesOrder{}))
		assert.Equal(t, int64(1), countRows(t, db, &order.OrderItem{}))
		assert.Zero(t, countRows(t, db, &domain.Replace{}))
		assert.Zero(t, countRows(t, db, &inventory.InventoryAdjustment{}))
		assert.Equal(t, 3, stockOf(t, db, replacement.ID))
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateOrderReplacementHandler(store, nil)

		_, err := handler.Handle(ctx, CreateOrderReplacementCommand{
			UserID:          1,
			OriginalOrderID: 1,
			AmountGiven:     100.00,
		})
		assert.ErrorIs(t, err, order.ErrEmptyOrder)
	})

	t.Run("rejects payment below the total", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateOrderReplacementHandler(store, nil)

		_, err := handler.Handle(ctx, CreateOrderReplacementCommand{
			UserID:          1,
			OriginalOrderID: 1,
			Items: []ReplacementItem{
				{ProductID: 1, Quantity: 1, UnitPrice: 100.00},
			},
			AmountGiven: 50.00,
		})
		assert.ErrorIs(t, err, order.ErrInsufficientPayment)
	})

	t.Run("unknown original order fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateOrderReplacementHandler(store, nil)

		_, err := handler.Handle(ctx, CreateOrderReplacementCommand{
			UserID:          1,
			OriginalOrderID: 77,
			Items: []ReplacementItem{
				{ProductID: 1, Quantity: 1, UnitPrice: 10.00},
			},
			AmountGiven: 100.00,
		})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

func TestCreateProductReplacement(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps product stock without spawning an order", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateProductReplacementHandler(store, nil)

		original := seedTestProduct(t, db, "SKU-OLD", 25.00, 10)
		replacement := seedTestProduct(t, db, "SKU-NEW", 25.00, 10)
		originalOrder := seedTestOrder(t, db, original.ID, 2, 25.00)

		rep, err := handler.Handle(ctx, CreateProductReplacementCommand{
			UserID:               1,
			OriginalOrderID:      originalOrder.ID,
			OriginalProductID:    original.ID,
			ReplacementProductID: replacement.ID,
			Quantity:             2,
			Reason:               domain.ReasonReplace,
		})
		require.NoError(t, err)

		assert.Nil(t, rep.ReplacementOrderID)
		assert.Equal(t, replacement.ID, rep.ReplacementProductID)
		assert.Equal(t, 8, stockOf(t, db, replacement.ID))
		assert.Equal(t, int64(1), countRows(t, db, &order.SalesOrder{}))
	})

	t.Run("rejects quantity above replacement stock", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		handler := NewCreateProductReplacementHandler(store, nil)

		original := seedTestProduct(t, db, "SKU-OLD", 25.00, 10)
		replacement := seedTestProduct(t, db, "SKU-NEW", 25.00, 1)
		originalOrder := seedTestOrder(t, db, original.ID, 2, 25.00)

		_, err := handler.Handle(ctx, CreateProductReplacementCommand{
			UserID:               1,
			OriginalOrderID:      originalOrder.ID,
			OriginalProductID:    original.ID,
			ReplacementProductID: replacement.ID,
			Quantity:             2,
			Reason:               domain.ReasonReplace,
		})
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Zero(t, countRows(t, db, &domain.Replace{}))
		assert.Equal(t, 1, stockOf(t, db, replacement.ID))
	})
}
