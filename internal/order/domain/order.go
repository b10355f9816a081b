package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// SalesOrder represents a completed sale. OrderCode is the human-readable
// identifier printed on receipts, distinct from the numeric primary key.
type SalesOrder struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderCode     string         `json:"order_code" gorm:"not null;uniqueIndex"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	PaymentMethod string         `json:"payment_method" gorm:"default:'cash'"`
	AmountGiven   float64        `json:"amount_given"`
	ChangeDue     float64        `json:"change_due"`
	TotalPrice    float64        `json:"total_price" gorm:"not null"`
	Items         []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// OrderItem is a line of a sales order. Quantity and UnitPrice are captured at
// time of sale and never mutated afterwards; corrections go through returns.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unit_price" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderItemNotFound   = errors.New("order item not found")
	ErrInsufficientPayment = errors.New("amount given is less than the order total")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrDuplicateOrderCode  = errors.New("order code already exists")
	ErrOrderCodeExhausted  = errors.New("could not generate a unique order code")
)

// SalesOrderRepository defines the contract for sales order data access
type SalesOrderRepository interface {
	Create(order *SalesOrder) error
	FindByID(id uint) (*SalesOrder, error)
	FindByCode(code string) (*SalesOrder, error)
	FindAll(limit, offset int) ([]SalesOrder, error)
	FindItemsByOrderID(orderID uint) ([]OrderItem, error)
	CreateItem(item *OrderItem) error
	Count() (int64, error)
}
