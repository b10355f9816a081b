package domain

import (
	"errors"
	"time"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	order "github.com/tair/retail-inventory/internal/order/domain"
)

// SourceKind discriminates what a return is raised against
type SourceKind string

const (
	// SourceOrder is a customer return against a sales order; stock comes back in.
	SourceOrder SourceKind = "order"
	// SourceProduct is a return of stocked goods to the supplier; stock leaves.
	SourceProduct SourceKind = "product"
)

// Return records a single return transaction. Exactly one of OrderID and
// ProductID is set: OrderID for order returns, ProductID for product returns.
type Return struct {
	ID          uint      `json:"return_id" gorm:"primaryKey"`
	OrderID     *uint     `json:"order_id" gorm:"index"`
	ProductID   *uint     `json:"product_id" gorm:"index"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"not null"`
	ProcessedBy uint      `json:"processed_by" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Return) TableName() string {
	return "returns"
}

// SourceKind derives the discriminant from which reference is set
func (r *Return) SourceKind() SourceKind {
	if r.OrderID != nil {
		return SourceOrder
	}
	return SourceProduct
}

// Valid reports whether the order/product reference is a proper discriminated
// union: exactly one side set, never both, never neither.
func (r *Return) Valid() bool {
	return (r.OrderID != nil) != (r.ProductID != nil)
}

// Return reasons (wire values, case-sensitive)
const (
	ReasonLost    = "Lost"
	ReasonReturn  = "Return"
	ReasonRefund  = "Refund"
	ReasonReplace = "Replace"
	ReasonOther   = "Other"
)

// KnownReasons is the canonical reason set accepted on both return routes
var KnownReasons = []string{ReasonLost, ReasonReturn, ReasonRefund, ReasonReplace, ReasonOther}

// ResolveReason validates the reason enum and substitutes the free-text reason
// verbatim when "Other" is chosen.
func ResolveReason(reason, otherReason string) (string, error) {
	switch reason {
	case ReasonLost, ReasonReturn, ReasonRefund, ReasonReplace:
		return reason, nil
	case ReasonOther:
		if otherReason == "" {
			return "", ErrMissingOtherReason
		}
		return otherReason, nil
	default:
		return "", ErrInvalidReason
	}
}

var (
	ErrReturnNotFound         = errors.New("return not found")
	ErrInvalidQuantity        = errors.New("quantity must be greater than zero")
	ErrInvalidReason          = errors.New("invalid return reason")
	ErrMissingOtherReason     = errors.New("a free-text reason is required when reason is Other")
	ErrInvalidSource          = errors.New("source type must be order or product")
	ErrExceedsOrderedQuantity = errors.New("return quantity exceeds the ordered quantity")
	ErrExceedsAvailableStock  = errors.New("return quantity exceeds available stock")
)

// ReplaceFollowUp is returned instead of a finished return when the reason is
// Replace and a unit price is known: the caller is expected to start the order
// creation flow carrying this payload.
type ReplaceFollowUp struct {
	ReturnID    uint    `json:"return_id"`
	ProductID   uint    `json:"product_id"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
	RedirectURL string  `json:"redirect_url"`
}

// Store is the transactional boundary of the returns workflow. Transaction
// hands the callback a Store bound to the same database transaction; every
// multi-step write in this package runs through it so partial failure rolls
// back everything.
type Store interface {
	Transaction(fn func(Store) error) error

	// Ledger returns the stock ledger bound to this store's transaction
	Ledger() inventory.Ledger

	CreateReturn(ret *Return) error
	FindReturnByID(id uint) (*Return, error)
	FindAllReturns(kind SourceKind, limit, offset int) ([]Return, error)
	SaveReturn(ret *Return) error
	DeleteReturn(id uint) error
	// SumReturnedQuantity totals prior returns and replacements recorded
	// against the given order and product
	SumReturnedQuantity(orderID, productID uint) (int, error)

	CreateReplace(rep *Replace) error
	FindReplaceByID(id uint) (*Replace, error)
	FindAllReplaces(limit, offset int) ([]Replace, error)

	FindProduct(id uint) (*catalog.Product, error)
	FindOrder(id uint) (*order.SalesOrder, error)
	FirstOrderItem(orderID uint) (*order.OrderItem, error)
	CreateOrder(o *order.SalesOrder) error
	CreateOrderItem(item *order.OrderItem) error
}
