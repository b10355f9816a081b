package query

import (
	"fmt"

	"github.com/tair/retail-inventory/internal/catalog/domain"
)

// GetProductHandler handles fetching a single product
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(productID uint) (*domain.Product, error) {
	if productID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	return h.repo.FindByID(productID)
}
