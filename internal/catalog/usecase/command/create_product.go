package command

import (
	"fmt"

	"github.com/tair/retail-inventory/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name            string
	Description     string
	SKU             string
	UnitPrice       float64
	InitialQuantity int
	CategoryID      *uint
	SupplierID      *uint
}

// CreateProductHandler handles the create product command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.UnitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}
	if cmd.InitialQuantity < 0 {
		return nil, fmt.Errorf("initial quantity cannot be negative")
	}

	product := &domain.Product{
		Name:            cmd.Name,
		Description:     cmd.Description,
		SKU:             cmd.SKU,
		UnitPrice:       cmd.UnitPrice,
		QuantityInStock: cmd.InitialQuantity,
		CategoryID:      cmd.CategoryID,
		SupplierID:      cmd.SupplierID,
		IsActive:        true,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
