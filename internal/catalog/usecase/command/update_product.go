package command

import (
	"fmt"

	"github.com/tair/retail-inventory/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update a product.
// Stock is deliberately absent: quantity changes go through the stock ledger.
type UpdateProductCommand struct {
	ProductID   uint
	Name        string
	Description string
	UnitPrice   float64
	CategoryID  *uint
	SupplierID  *uint
	IsActive    *bool
}

// UpdateProductHandler handles the update product command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != "" {
		product.Name = cmd.Name
	}
	if cmd.Description != "" {
		product.Description = cmd.Description
	}
	if cmd.UnitPrice > 0 {
		product.UnitPrice = cmd.UnitPrice
	}
	if cmd.CategoryID != nil {
		product.CategoryID = cmd.CategoryID
	}
	if cmd.SupplierID != nil {
		product.SupplierID = cmd.SupplierID
	}
	if cmd.IsActive != nil {
		product.IsActive = *cmd.IsActive
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
