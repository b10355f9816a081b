package command

import (
	"errors"
	"fmt"

	"github.com/tair/retail-inventory/internal/order/domain"
)

// CheckoutItem is one line of a new sales order
type CheckoutItem struct {
	ProductID uint
	Quantity  int
}

// CheckoutCommand represents the command to create a sales order
type CheckoutCommand struct {
	UserID        uint
	Items         []CheckoutItem
	PaymentMethod string
	AmountGiven   float64
}

// CheckoutHandler handles order creation
type CheckoutHandler struct {
	store domain.CheckoutStore
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(store domain.CheckoutStore) *CheckoutHandler {
	return &CheckoutHandler{store: store}
}

// Handle prices the cart, validates payment, and creates the order with its
// items and stock decrements in one transaction. On an order-code collision
// the whole transaction is retried with a fresh code.
func (h *CheckoutHandler) Handle(cmd CheckoutCommand) (*domain.SalesOrder, error) {
	if len(cmd.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero")
		}
	}

	var created *domain.SalesOrder
	var err error
	for attempt := 0; attempt < domain.OrderCodeAttempts; attempt++ {
		created, err = h.execute(cmd)
		if !errors.Is(err, domain.ErrDuplicateOrderCode) {
			break
		}
	}
	if errors.Is(err, domain.ErrDuplicateOrderCode) {
		return nil, domain.ErrOrderCodeExhausted
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (h *CheckoutHandler) execute(cmd CheckoutCommand) (*domain.SalesOrder, error) {
	var created *domain.SalesOrder

	err := h.store.Transaction(func(tx domain.CheckoutStore) error {
		items := make([]domain.OrderItem, 0, len(cmd.Items))
		for _, line := range cmd.Items {
			price, err := tx.ProductPrice(line.ProductID)
			if err != nil {
				return err
			}
			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: price,
			})
		}

		total := domain.Total(items)
		if cmd.AmountGiven < total {
			return domain.ErrInsufficientPayment
		}

		order := &domain.SalesOrder{
			OrderCode:     domain.NewOrderCode(),
			UserID:        cmd.UserID,
			PaymentMethod: cmd.PaymentMethod,
			AmountGiven:   cmd.AmountGiven,
			ChangeDue:     cmd.AmountGiven - total,
			TotalPrice:    total,
		}
		if err := tx.CreateOrder(order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.CreateOrderItem(&items[i]); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			if _, err := tx.Ledger().Adjust(items[i].ProductID, -items[i].Quantity, "sale", cmd.UserID); err != nil {
				return err
			}
		}

		order.Items = items
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
