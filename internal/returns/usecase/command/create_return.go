package command

import (
	"context"
	"fmt"

	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/kafka"
	"github.com/tair/retail-inventory/pkg/logger"
)

// StockEventPublisher emits stock movement events after a committed mutation.
// A nil publisher disables eventing without touching the workflow.
type StockEventPublisher interface {
	PublishStockAdjusted(ctx context.Context, event kafka.StockAdjustedEvent) error
}

// CreateReturnCommand represents the command to record a return
type CreateReturnCommand struct {
	UserID      uint
	SourceType  domain.SourceKind
	SourceID    uint
	Quantity    int
	Reason      string
	OtherReason string
}

// CreateReturnResult is the outcome of recording a return. FollowUp is set
// instead of a plain completion when the reason is Replace: the caller must
// continue into order creation with the carried amount.
type CreateReturnResult struct {
	Return   *domain.Return
	FollowUp *domain.ReplaceFollowUp
}

// CreateReturnHandler handles the create return command
type CreateReturnHandler struct {
	store     domain.Store
	publisher StockEventPublisher
}

// NewCreateReturnHandler creates a new create return handler
func NewCreateReturnHandler(store domain.Store, publisher StockEventPublisher) *CreateReturnHandler {
	return &CreateReturnHandler{store: store, publisher: publisher}
}

// Handle executes the create return command. Validation, the return row and
// the stock movement commit together or not at all.
func (h *CreateReturnHandler) Handle(ctx context.Context, cmd CreateReturnCommand) (*CreateReturnResult, error) {
	reason, err := domain.ResolveReason(cmd.Reason, cmd.OtherReason)
	if err != nil {
		return nil, err
	}

	var result CreateReturnResult
	var newQuantity int
	var delta int
	var productID uint

	err = h.store.Transaction(func(tx domain.Store) error {
		validation, err := ValidateReturn(tx, cmd.SourceType, cmd.SourceID, cmd.Quantity)
		if err != nil {
			return err
		}
		productID = validation.ProductID

		ret := &domain.Return{
			Quantity:    cmd.Quantity,
			Reason:      reason,
			ProcessedBy: cmd.UserID,
		}
		switch cmd.SourceType {
		case domain.SourceOrder:
			orderID := cmd.SourceID
			ret.OrderID = &orderID
			// Returned goods come back into stock
			delta = cmd.Quantity
		case domain.SourceProduct:
			ret.ProductID = &productID
			// Stock leaves inventory, back to the supplier
			delta = -cmd.Quantity
		}

		if err := tx.CreateReturn(ret); err != nil {
			return fmt.Errorf("failed to create return: %w", err)
		}

		newQuantity, err = tx.Ledger().Adjust(productID, delta, reason, cmd.UserID)
		if err != nil {
			return err
		}

		result.Return = ret
		if cmd.Reason == domain.ReasonReplace && validation.UnitPrice > 0 {
			amount := validation.UnitPrice * float64(cmd.Quantity)
			result.FollowUp = &domain.ReplaceFollowUp{
				ReturnID:    ret.ID,
				ProductID:   productID,
				UnitPrice:   validation.UnitPrice,
				Quantity:    cmd.Quantity,
				Amount:      amount,
				RedirectURL: fmt.Sprintf("/orders/new?replace_return_id=%d&product_id=%d&amount=%.2f", ret.ID, productID, amount),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.publishAdjustment(ctx, productID, delta, newQuantity, reason, cmd.UserID)

	return &result, nil
}

func (h *CreateReturnHandler) publishAdjustment(ctx context.Context, productID uint, delta, newQuantity int, reason string, userID uint) {
	publishStockAdjusted(ctx, h.publisher, productID, delta, newQuantity, reason, userID)
}

// publishStockAdjusted emits a stock event on a best-effort basis: the
// database transaction has already committed, so a broker failure is logged
// and swallowed rather than failing the request.
func publishStockAdjusted(ctx context.Context, publisher StockEventPublisher, productID uint, delta, newQuantity int, reason string, userID uint) {
	if publisher == nil {
		return
	}

	event := kafka.StockAdjustedEvent{
		ProductID:   productID,
		Delta:       delta,
		NewQuantity: newQuantity,
		Reason:      reason,
		AdjustedBy:  userID,
	}
	if err := publisher.PublishStockAdjusted(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("product_id", productID).
			Int("delta", delta).
			Msg("Failed to publish stock adjusted event")
	}
}
