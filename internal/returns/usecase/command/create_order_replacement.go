package command

import (
	"context"
	"errors"
	"fmt"

	order "github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/pkg/logger"
)

// ReplacementItem is one line of the replacement order
type ReplacementItem struct {
	ProductID uint
	Quantity  int
	UnitPrice float64
}

// CreateOrderReplacementCommand represents the command to replace an order
// with a freshly created one
type CreateOrderReplacementCommand struct {
	UserID            uint
	OriginalOrderID   uint
	OriginalProductID uint
	Items             []ReplacementItem
	PaymentMethod     string
	AmountGiven       float64
	TotalPrice        float64
	Reason            string
}

// OrderReplacementResult pairs the spawned order with its replace record
type OrderReplacementResult struct {
	Order       *order.SalesOrder
	Replacement *domain.Replace
}

// CreateOrderReplacementHandler orchestrates order-level replacements
type CreateOrderReplacementHandler struct {
	store     domain.Store
	publisher StockEventPublisher
}

// NewCreateOrderReplacementHandler creates a new order replacement handler
func NewCreateOrderReplacementHandler(store domain.Store, publisher StockEventPublisher) *CreateOrderReplacementHandler {
	return &CreateOrderReplacementHandler{store: store, publisher: publisher}
}

// Handle creates the replacement order, its items, one negative inventory
// adjustment per item with the matching stock decrement, and the replace
// record linking both orders. Everything commits together; on a generated
// order-code collision the whole transaction is retried with a fresh code.
func (h *CreateOrderReplacementHandler) Handle(ctx context.Context, cmd CreateOrderReplacementCommand) (*OrderReplacementResult, error) {
	if len(cmd.Items) == 0 {
		return nil, order.ErrEmptyOrder
	}
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	total := cmd.TotalPrice
	if total == 0 {
		items := make([]order.OrderItem, 0, len(cmd.Items))
		for _, item := range cmd.Items {
			items = append(items, order.OrderItem{Quantity: item.Quantity, UnitPrice: item.UnitPrice})
		}
		total = order.Total(items)
	}
	if cmd.AmountGiven < total {
		return nil, order.ErrInsufficientPayment
	}

	var result *OrderReplacementResult
	var err error
	for attempt := 0; attempt < order.OrderCodeAttempts; attempt++ {
		result, err = h.execute(cmd, total)
		if !errors.Is(err, order.ErrDuplicateOrderCode) {
			break
		}
		logger.Warn(ctx).
			Int("attempt", attempt+1).
			Msg("Order code collision, regenerating")
	}
	if errors.Is(err, order.ErrDuplicateOrderCode) {
		return nil, order.ErrOrderCodeExhausted
	}
	if err != nil {
		return nil, err
	}

	for _, item := range cmd.Items {
		stock, stockErr := h.store.Ledger().StockOf(item.ProductID)
		if stockErr != nil {
			stock = 0
		}
		publishStockAdjusted(ctx, h.publisher, item.ProductID, -item.Quantity, stock, cmd.Reason, cmd.UserID)
	}

	return result, nil
}

func (h *CreateOrderReplacementHandler) execute(cmd CreateOrderReplacementCommand, total float64) (*OrderReplacementResult, error) {
	var result OrderReplacementResult

	err := h.store.Transaction(func(tx domain.Store) error {
		original, err := tx.FindOrder(cmd.OriginalOrderID)
		if err != nil {
			return err
		}

		originalProductID := cmd.OriginalProductID
		if originalProductID == 0 {
			item, err := tx.FirstOrderItem(original.ID)
			if err != nil {
				return err
			}
			originalProductID = item.ProductID
		}

		newOrder := &order.SalesOrder{
			OrderCode:     order.NewOrderCode(),
			UserID:        cmd.UserID,
			PaymentMethod: cmd.PaymentMethod,
			AmountGiven:   cmd.AmountGiven,
			ChangeDue:     cmd.AmountGiven - total,
			TotalPrice:    total,
		}
		if err := tx.CreateOrder(newOrder); err != nil {
			return err
		}

		for _, item := range cmd.Items {
			unitPrice := item.UnitPrice
			if unitPrice == 0 {
				product, err := tx.FindProduct(item.ProductID)
				if err != nil {
					return err
				}
				unitPrice = product.UnitPrice
			}

			orderItem := &order.OrderItem{
				OrderID:   newOrder.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			}
			if err := tx.CreateOrderItem(orderItem); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}

			// Reserves replacement stock; the ledger writes the negative
			// adjustment row and fails the transaction when stock runs short
			if _, err := tx.Ledger().Adjust(item.ProductID, -item.Quantity, cmd.Reason, cmd.UserID); err != nil {
				return err
			}
		}

		replacementOrderID := newOrder.ID
		replacement := &domain.Replace{
			OriginalOrderID:      original.ID,
			OriginalProductID:    originalProductID,
			ReplacementProductID: cmd.Items[0].ProductID,
			ReplacementOrderID:   &replacementOrderID,
			Reason:               cmd.Reason,
			Quantity:             cmd.Items[0].Quantity,
			ProcessedBy:          cmd.UserID,
		}
		if err := tx.CreateReplace(replacement); err != nil {
			return fmt.Errorf("failed to create replace record: %w", err)
		}

		result.Order = newOrder
		result.Replacement = replacement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
