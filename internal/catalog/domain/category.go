package domain

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products for catalog browsing and reporting
type Category struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Category) TableName() string {
	return "categories"
}

// CategoryRepository defines the contract for category data access
type CategoryRepository interface {
	Create(category *Category) error
	FindByID(id uint) (*Category, error)
	FindAll(limit, offset int) ([]Category, error)
	Update(category *Category) error
	Delete(id uint) error
}
