package domain

import (
	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
)

// CheckoutStore is the transactional boundary of order creation: the order,
// its items and the stock decrements commit together or not at all.
type CheckoutStore interface {
	Transaction(fn func(CheckoutStore) error) error

	// Ledger returns the stock ledger bound to this store's transaction
	Ledger() inventory.Ledger

	CreateOrder(order *SalesOrder) error
	CreateOrderItem(item *OrderItem) error
	// ProductPrice reads the current unit price for a product
	ProductPrice(productID uint) (float64, error)
}
