package command

import (
	"fmt"

	order "github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/returns/domain"
)

// ValidationResult carries what the validator had to look up anyway, so the
// recorder does not query the same rows twice inside the transaction.
type ValidationResult struct {
	ProductID uint
	UnitPrice float64
	OrderItem *order.OrderItem
}

// ValidateReturn checks a requested return quantity against the source:
// for an order the cumulative returned quantity must stay within the ordered
// quantity, for a product the quantity must not exceed available stock.
func ValidateReturn(store domain.Store, kind domain.SourceKind, sourceID uint, quantity int) (*ValidationResult, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	switch kind {
	case domain.SourceOrder:
		item, err := store.FirstOrderItem(sourceID)
		if err != nil {
			return nil, err
		}

		prior, err := store.SumReturnedQuantity(sourceID, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to sum prior returns: %w", err)
		}
		if prior+quantity > item.Quantity {
			return nil, domain.ErrExceedsOrderedQuantity
		}

		return &ValidationResult{
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			OrderItem: item,
		}, nil

	case domain.SourceProduct:
		product, err := store.FindProduct(sourceID)
		if err != nil {
			return nil, err
		}
		if quantity > product.QuantityInStock {
			return nil, domain.ErrExceedsAvailableStock
		}

		return &ValidationResult{
			ProductID: product.ID,
			UnitPrice: product.UnitPrice,
		}, nil

	default:
		return nil, domain.ErrInvalidSource
	}
}
