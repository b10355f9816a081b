package command

import (
	"context"
	"fmt"

	"github.com/tair/retail-inventory/internal/returns/domain"
)

// UpdateReturnCommand represents the command to amend a recorded return
type UpdateReturnCommand struct {
	ReturnID    uint
	UserID      uint
	Quantity    int
	Reason      string
	OtherReason string
}

// UpdateReturnHandler handles the update return command
type UpdateReturnHandler struct {
	store     domain.Store
	publisher StockEventPublisher
}

// NewUpdateReturnHandler creates a new update return handler
func NewUpdateReturnHandler(store domain.Store, publisher StockEventPublisher) *UpdateReturnHandler {
	return &UpdateReturnHandler{store: store, publisher: publisher}
}

// Handle recomputes the stock delta as the difference between the new and old
// quantities, applies it with the same sign convention as creation, then
// persists the amended record.
func (h *UpdateReturnHandler) Handle(ctx context.Context, cmd UpdateReturnCommand) (*domain.Return, error) {
	reason, err := domain.ResolveReason(cmd.Reason, cmd.OtherReason)
	if err != nil {
		return nil, err
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *domain.Return
	var productID uint
	var delta, newQuantity int

	err = h.store.Transaction(func(tx domain.Store) error {
		ret, err := tx.FindReturnByID(cmd.ReturnID)
		if err != nil {
			return err
		}

		change := cmd.Quantity - ret.Quantity

		switch ret.SourceKind() {
		case domain.SourceOrder:
			item, err := tx.FirstOrderItem(*ret.OrderID)
			if err != nil {
				return err
			}
			productID = item.ProductID

			prior, err := tx.SumReturnedQuantity(*ret.OrderID, item.ProductID)
			if err != nil {
				return fmt.Errorf("failed to sum prior returns: %w", err)
			}
			// The record being amended is part of the prior sum
			if prior-ret.Quantity+cmd.Quantity > item.Quantity {
				return domain.ErrExceedsOrderedQuantity
			}
			delta = change
		case domain.SourceProduct:
			product, err := tx.FindProduct(*ret.ProductID)
			if err != nil {
				return err
			}
			productID = product.ID
			if change > product.QuantityInStock {
				return domain.ErrExceedsAvailableStock
			}
			delta = -change
		}

		if delta != 0 {
			newQuantity, err = tx.Ledger().Adjust(productID, delta, reason, cmd.UserID)
			if err != nil {
				return err
			}
		}

		ret.Quantity = cmd.Quantity
		ret.Reason = reason
		ret.ProcessedBy = cmd.UserID
		if err := tx.SaveReturn(ret); err != nil {
			return fmt.Errorf("failed to update return: %w", err)
		}

		updated = ret
		return nil
	})
	if err != nil {
		return nil, err
	}

	if delta != 0 {
		publishStockAdjusted(ctx, h.publisher, productID, delta, newQuantity, reason, cmd.UserID)
	}

	return updated, nil
}
