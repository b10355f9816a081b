package domain

import (
	"errors"
	"time"
)

// Replace links an original order/product to its replacement. For order-level
// replacements ReplacementOrderID points at the sales order spawned for the
// swap; product-only replacements leave it nil.
type Replace struct {
	ID                   uint      `json:"replace_id" gorm:"primaryKey"`
	OriginalOrderID      uint      `json:"original_order_id" gorm:"not null;index"`
	OriginalProductID    uint      `json:"original_product_id" gorm:"not null;index"`
	ReplacementProductID uint      `json:"replacement_product_id" gorm:"not null"`
	ReplacementOrderID   *uint     `json:"replacement_order_id"`
	Reason               string    `json:"reason" gorm:"not null"`
	Quantity             int       `json:"quantity" gorm:"not null"`
	ProcessedBy          uint      `json:"processed_by"`
	CreatedAt            time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Replace) TableName() string {
	return "replaces"
}

var ErrReplaceNotFound = errors.New("replacement not found")
