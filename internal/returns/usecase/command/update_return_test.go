package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/internal/returns/repository"
)

func TestUpdateReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("order return quantity increase applies the difference", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)
		o := seedTestOrder(t, db, product.ID, 3, 25.00)

		created, err := NewCreateReturnHandler(store, nil).Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   o.ID,
			Quantity:   2,
			Reason:     domain.ReasonRefund,
		})
		require.NoError(t, err)
		require.Equal(t, 12, stockOf(t, db, product.ID))

		updated, err := NewUpdateReturnHandler(store, nil).Handle(ctx, UpdateReturnCommand{
			ReturnID: created.Return.ID,
			UserID:   2,
			Quantity: 3,
			Reason:   domain.ReasonRefund,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, updated.Quantity)
		assert.Equal(t, uint(2), updated.ProcessedBy)
		// Only one more unit comes back into stock
		assert.Equal(t, 13, stockOf(t, db, product.ID))

		var last inventory.InventoryAdjustment
		require.NoError(t, db.Order("id DESC").First(&last).Error)
		assert.Equal(t, 1, last.QuantityChanged)
	})

	t.Run("order return update cannot exceed the ordered quantity", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)
		o := seedTestOrder(t, db, product.ID, 3, 25.00)

		created, err := NewCreateReturnHandler(store, nil).Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   o.ID,
			Quantity:   2,
			Reason:     domain.ReasonRefund,
		})
		require.NoError(t, err)

		_, err = NewUpdateReturnHandler(store, nil).Handle(ctx, UpdateReturnCommand{
			ReturnID: created.Return.ID,
			UserID:   1,
			Quantity: 4,
			Reason:   domain.ReasonRefund,
		})
		assert.ErrorIs(t, err, domain.ErrExceedsOrderedQuantity)

		// Stock and record are untouched
		assert.Equal(t, 12, stockOf(t, db, product.ID))
		current, err := store.FindReturnByID(created.Return.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, current.Quantity)
	})

	t.Run("product return quantity decrease restores stock", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)

		created, err := NewCreateReturnHandler(store, nil).Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   product.ID,
			Quantity:   5,
			Reason:     domain.ReasonReturn,
		})
		require.NoError(t, err)
		require.Equal(t, 5, stockOf(t, db, product.ID))

		updated, err := NewUpdateReturnHandler(store, nil).Handle(ctx, UpdateReturnCommand{
			ReturnID: created.Return.ID,
			UserID:   1,
			Quantity: 3,
			Reason:   domain.ReasonReturn,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, updated.Quantity)
		// Two units of the over-counted return come back
		assert.Equal(t, 7, stockOf(t, db, product.ID))
	})

	t.Run("unchanged quantity writes no stock movement", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)

		created, err := NewCreateReturnHandler(store, nil).Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   product.ID,
			Quantity:   5,
			Reason:     domain.ReasonReturn,
		})
		require.NoError(t, err)
		before := countRows(t, db, &inventory.InventoryAdjustment{})

		_, err = NewUpdateReturnHandler(store, nil).Handle(ctx, UpdateReturnCommand{
			ReturnID: created.Return.ID,
			UserID:   1,
			Quantity: 5,
			Reason:   domain.ReasonRefund,
		})
		require.NoError(t, err)

		assert.Equal(t, before, countRows(t, db, &inventory.InventoryAdjustment{}))
		assert.Equal(t, 5, stockOf(t, db, product.ID))
	})

	t.Run("missing return fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)

		_, err := NewUpdateReturnHandler(store, nil).Handle(ctx, UpdateReturnCommand{
			ReturnID: 999,
			UserID:   1,
			Quantity: 1,
			Reason:   domain.ReasonRefund,
		})
		assert.ErrorIs(t, err, domain.ErrReturnNotFound)
	})
}

func TestDeleteReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("order return deletion takes the stock back out", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)
		o := seedTestOrder(t, db, product.ID, 3, 25.00)

		created, err := NewCreateReturnHandler(store, nil).Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceOrder,
			SourceID:   o.ID,
			Quantity:   2,
			Reason:     domain.ReasonRefund,
		})
		require.NoError(t, err)
		require.Equal(t, 12, stockOf(t, db, product.ID))

		err = NewDeleteReturnHandler(store, nil).Handle(ctx, DeleteReturnCommand{
			ReturnID: created.Return.ID,
			UserID:   1,
		})
		require.NoError(t, err)

		assert.Equal(t, 10, stockOf(t, db, product.ID))
		_, err = store.FindReturnByID(created.Return.ID)
		assert.ErrorIs(t, err, domain.ErrReturnNotFound)
	})

	t.Run("product return deletion restores the stock", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)
		product := seedTestProduct(t, db, "SKU-1", 25.00, 10)

		created, err := NewCreateReturnHandler(store, nil).Handle(ctx, CreateReturnCommand{
			UserID:     1,
			SourceType: domain.SourceProduct,
			SourceID:   product.ID,
			Quantity:   4,
			Reason:     domain.ReasonReturn,
		})
		require.NoError(t, err)
		require.Equal(t, 6, stockOf(t, db, product.ID))

		err = NewDeleteReturnHandler(store, nil).Handle(ctx, DeleteReturnCommand{
			ReturnID: created.Return.ID,
			UserID:   1,
		})
		require.NoError(t, err)

		assert.Equal(t, 10, stockOf(t, db, product.ID))
	})

	t.Run("missing return fails", func(t *testing.T) {
		db := setupReturnsTestDB(t)
		store := repository.NewGormReturnStore(db)

		err := NewDeleteReturnHandler(store, nil).Handle(ctx, DeleteReturnCommand{
			ReturnID: 123,
			UserID:   1,
		})
		assert.ErrorIs(t, err, domain.ErrReturnNotFound)
	})
}
