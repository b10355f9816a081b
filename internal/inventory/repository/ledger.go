package repository

import (
	"errors"

	"gorm.io/gorm"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	"github.com/tair/retail-inventory/internal/inventory/domain"
)

// GormStockLedger owns quantity_in_stock mutations. The check-and-write is a
// single conditional UPDATE so concurrent callers against the same product
// cannot both pass a stale read: the guard runs inside the database.
type GormStockLedger struct {
	db *gorm.DB
}

func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Adjust applies a signed delta to the product's stock and appends the
// matching inventory adjustment row. When the delta would drive stock
// negative nothing is written and ErrInsufficientStock is returned.
func (l *GormStockLedger) Adjust(productID uint, delta int, reason string, adjustedBy uint) (int, error) {
	if delta == 0 {
		return 0, domain.ErrZeroDelta
	}

	result := l.db.Model(&catalog.Product{}).
		Where("id = ? AND quantity_in_stock + ? >= 0", productID, delta).
		Update("quantity_in_stock", gorm.Expr("quantity_in_stock + ?", delta))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing product from a stock violation
		var probe catalog.Product
		if err := l.db.Select("id").First(&probe, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, domain.ErrProductNotFound
			}
			return 0, err
		}
		return 0, domain.ErrInsufficientStock
	}

	adjustment := domain.InventoryAdjustment{
		ProductID:       productID,
		QuantityChanged: delta,
		Reason:          reason,
		AdjustedBy:      adjustedBy,
	}
	if err := l.db.Create(&adjustment).Error; err != nil {
		return 0, err
	}

	return l.StockOf(productID)
}

// StockOf reads the current quantity for a product
func (l *GormStockLedger) StockOf(productID uint) (int, error) {
	var product catalog.Product
	if err := l.db.Select("id", "quantity_in_stock").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrProductNotFound
		}
		return 0, err
	}
	return product.QuantityInStock, nil
}
