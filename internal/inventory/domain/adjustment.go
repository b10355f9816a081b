package domain

import (
	"errors"
	"time"
)

// InventoryAdjustment is the append-only audit trail of stock movements.
// Every stock mutation that goes through the ledger writes exactly one row,
// with QuantityChanged carrying the signed delta that was applied.
type InventoryAdjustment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ProductID       uint      `json:"product_id" gorm:"not null;index"`
	QuantityChanged int       `json:"quantity_changed" gorm:"not null"`
	Reason          string    `json:"reason" gorm:"not null"`
	AdjustedBy      uint      `json:"adjusted_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}

var (
	// ErrInsufficientStock is returned when a negative delta would take the
	// product's quantity below zero. Nothing is written in that case.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
	ErrZeroDelta         = errors.New("stock delta must be non-zero")
)

// Ledger is the single owner of quantity_in_stock mutations. Adjust applies a
// signed delta atomically and records the matching adjustment row; it fails
// without writing when the resulting stock would be negative.
type Ledger interface {
	Adjust(productID uint, delta int, reason string, adjustedBy uint) (newQuantity int, err error)
	StockOf(productID uint) (int, error)
}

// AdjustmentRepository defines the read side of the audit trail
type AdjustmentRepository interface {
	FindAll(limit, offset int) ([]InventoryAdjustment, error)
	FindByProductID(productID uint, limit, offset int) ([]InventoryAdjustment, error)
}
