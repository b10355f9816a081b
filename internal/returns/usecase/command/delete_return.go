package command

import (
	"context"
	"fmt"

	"github.com/tair/retail-inventory/internal/returns/domain"
)

// DeleteReturnCommand represents the command to delete a recorded return
type DeleteReturnCommand struct {
	ReturnID uint
	UserID   uint
}

// DeleteReturnHandler handles the delete return command
type DeleteReturnHandler struct {
	store     domain.Store
	publisher StockEventPublisher
}

// NewDeleteReturnHandler creates a new delete return handler
func NewDeleteReturnHandler(store domain.Store, publisher StockEventPublisher) *DeleteReturnHandler {
	return &DeleteReturnHandler{store: store, publisher: publisher}
}

// Handle applies the inverse of the return's original stock effect and then
// removes the record. A missing product fails the whole operation; the delete
// never silently drops the stock reversal.
func (h *DeleteReturnHandler) Handle(ctx context.Context, cmd DeleteReturnCommand) error {
	var productID uint
	var delta, newQuantity int
	var reason string

	err := h.store.Transaction(func(tx domain.Store) error {
		ret, err := tx.FindReturnByID(cmd.ReturnID)
		if err != nil {
			return err
		}
		reason = fmt.Sprintf("reversal of return %d", ret.ID)

		switch ret.SourceKind() {
		case domain.SourceOrder:
			item, err := tx.FirstOrderItem(*ret.OrderID)
			if err != nil {
				return err
			}
			productID = item.ProductID
			// Creation restored stock, so deletion takes it back out
			delta = -ret.Quantity
		case domain.SourceProduct:
			productID = *ret.ProductID
			// Creation removed stock, so deletion restores it
			delta = ret.Quantity
		}

		newQuantity, err = tx.Ledger().Adjust(productID, delta, reason, cmd.UserID)
		if err != nil {
			return err
		}

		return tx.DeleteReturn(ret.ID)
	})
	if err != nil {
		return err
	}

	publishStockAdjusted(ctx, h.publisher, productID, delta, newQuantity, reason, cmd.UserID)

	return nil
}
