package command

import (
	"context"

	"github.com/tair/retail-inventory/internal/returns/domain"
)

// CreateProductReplacementCommand represents a product-for-product swap that
// does not spawn a new order
type CreateProductReplacementCommand struct {
	UserID               uint
	OriginalOrderID      uint
	OriginalProductID    uint
	ReplacementProductID uint
	Quantity             int
	Reason               string
}

// CreateProductReplacementHandler handles product-only replacements
type CreateProductReplacementHandler struct {
	store     domain.Store
	publisher StockEventPublisher
}

// NewCreateProductReplacementHandler creates a new product replacement handler
func NewCreateProductReplacementHandler(store domain.Store, publisher StockEventPublisher) *CreateProductReplacementHandler {
	return &CreateProductReplacementHandler{store: store, publisher: publisher}
}

// Handle validates stock, decrements the replacement product through the
// ledger (which also writes the audit row) and records the replace link.
func (h *CreateProductReplacementHandler) Handle(ctx context.Context, cmd CreateProductReplacementCommand) (*domain.Replace, error) {
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var replacement *domain.Replace
	var newQuantity int

	err := h.store.Transaction(func(tx domain.Store) error {
		product, err := tx.FindProduct(cmd.ReplacementProductID)
		if err != nil {
			return err
		}

		newQuantity, err = tx.Ledger().Adjust(product.ID, -cmd.Quantity, cmd.Reason, cmd.UserID)
		if err != nil {
			return err
		}

		replacement = &domain.Replace{
			OriginalOrderID:      cmd.OriginalOrderID,
			OriginalProductID:    cmd.OriginalProductID,
			ReplacementProductID: cmd.ReplacementProductID,
			Reason:               cmd.Reason,
			Quantity:             cmd.Quantity,
			ProcessedBy:          cmd.UserID,
		}
		return tx.CreateReplace(replacement)
	})
	if err != nil {
		return nil, err
	}

	publishStockAdjusted(ctx, h.publisher, cmd.ReplacementProductID, -cmd.Quantity, newQuantity, cmd.Reason, cmd.UserID)

	return replacement, nil
}
