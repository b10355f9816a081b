package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Product represents a sellable catalog item. QuantityInStock is owned by the
// stock ledger: nothing outside it may write the column once the product exists.
type Product struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"not null"`
	Description     string         `json:"description"`
	SKU             string         `json:"sku" gorm:"uniqueIndex"`
	UnitPrice       float64        `json:"unit_price" gorm:"not null"`
	QuantityInStock int            `json:"quantity_in_stock" gorm:"not null;default:0;check:quantity_in_stock >= 0"`
	CategoryID      *uint          `json:"category_id" gorm:"index"`
	SupplierID      *uint          `json:"supplier_id" gorm:"index"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable reports whether the product can be sold right now
func (p *Product) IsAvailable() bool {
	return p.QuantityInStock > 0 && p.IsActive
}

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
)

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindBySKU(sku string) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(categoryID uint, limit, offset int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
}
