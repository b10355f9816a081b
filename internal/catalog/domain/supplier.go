package domain

import (
	"time"

	"gorm.io/gorm"
)

// Supplier is the source a product is purchased from. Product returns with a
// product source send stock back to the supplier.
type Supplier struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierRepository defines the contract for supplier data access
type SupplierRepository interface {
	Create(supplier *Supplier) error
	FindByID(id uint) (*Supplier, error)
	FindAll(limit, offset int) ([]Supplier, error)
	Update(supplier *Supplier) error
	Delete(id uint) error
}
