package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	"github.com/tair/retail-inventory/internal/inventory/domain"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Product{}, &domain.InventoryAdjustment{})
	require.NoError(t, err)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) *catalog.Product {
	product := &catalog.Product{
		Name:            "Test Widget",
		SKU:             "WID-001",
		UnitPrice:       49.99,
		QuantityInStock: stock,
		IsActive:        true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestStockLedger_Adjust(t *testing.T) {
	t.Run("applies positive delta and writes adjustment row", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormStockLedger(db)
		product := seedProduct(t, db, 10)

		newQty, err := ledger.Adjust(product.ID, 5, "Return", 1)
		require.NoError(t, err)
		assert.Equal(t, 15, newQty)

		var adjustments []domain.InventoryAdjustment
		require.NoError(t, db.Find(&adjustments).Error)
		require.Len(t, adjustments, 1)
		assert.Equal(t, product.ID, adjustments[0].ProductID)
		assert.Equal(t, 5, adjustments[0].QuantityChanged)
		assert.Equal(t, "Return", adjustments[0].Reason)
		assert.Equal(t, uint(1), adjustments[0].AdjustedBy)
	})

	t.Run("applies negative delta down to zero", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormStockLedger(db)
		product := seedProduct(t, db, 10)

		newQty, err := ledger.Adjust(product.ID, -10, "sale", 1)
		require.NoError(t, err)
		assert.Equal(t, 0, newQty)
	})

	t.Run("rejects delta that would drive stock negative", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormStockLedger(db)
		product := seedProduct(t, db, 3)

		_, err := ledger.Adjust(product.ID, -4, "sale", 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		// Nothing changed and nothing was written
		stock, err := ledger.StockOf(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, stock)

		var count int64
		require.NoError(t, db.Model(&domain.InventoryAdjustment{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormStockLedger(db)
		product := seedProduct(t, db, 3)

		_, err := ledger.Adjust(product.ID, 0, "noop", 1)
		assert.ErrorIs(t, err, domain.ErrZeroDelta)
	})

	t.Run("returns product not found for unknown product", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormStockLedger(db)

		_, err := ledger.Adjust(999, -1, "sale", 1)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("writes one adjustment row per mutation", func(t *testing.T) {
		db := setupLedgerTestDB(t)
		ledger := NewGormStockLedger(db)
		product := seedProduct(t, db, 20)

		_, err := ledger.Adjust(product.ID, -5, "sale", 1)
		require.NoError(t, err)
		_, err = ledger.Adjust(product.ID, 2, "Return", 2)
		require.NoError(t, err)
		_, err = ledger.Adjust(product.ID, -3, "Replace", 1)
		require.NoError(t, err)

		var adjustments []domain.InventoryAdjustment
		require.NoError(t, db.Order("id").Find(&adjustments).Error)
		require.Len(t, adjustments, 3)
		assert.Equal(t, -5, adjustments[0].QuantityChanged)
		assert.Equal(t, 2, adjustments[1].QuantityChanged)
		assert.Equal(t, -3, adjustments[2].QuantityChanged)

		stock, err := ledger.StockOf(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 14, stock)
	})
}

func TestStockLedger_StockOf(t *testing.T) {
	db := setupLedgerTestDB(t)
	ledger := NewGormStockLedger(db)
	product := seedProduct(t, db, 7)

	stock, err := ledger.StockOf(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)

	_, err = ledger.StockOf(12345)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
