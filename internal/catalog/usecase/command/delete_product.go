package command

import (
	"fmt"

	"github.com/tair/retail-inventory/internal/catalog/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ProductID uint
}

// DeleteProductHandler handles the delete product command
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ProductID == 0 {
		return fmt.Errorf("invalid product id")
	}

	return h.repo.Delete(cmd.ProductID)
}
