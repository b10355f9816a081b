package command

import (
	"fmt"

	"github.com/tair/retail-inventory/internal/catalog/domain"
)

// SaveSupplierCommand creates a supplier when SupplierID is zero, otherwise
// updates the existing one
type SaveSupplierCommand struct {
	SupplierID uint
	Name       string
	Email      string
	Phone      string
	Address    string
}

// SaveSupplierHandler handles supplier create/update
type SaveSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewSaveSupplierHandler creates a new save supplier handler
func NewSaveSupplierHandler(repo domain.SupplierRepository) *SaveSupplierHandler {
	return &SaveSupplierHandler{repo: repo}
}

// Handle executes the save supplier command
func (h *SaveSupplierHandler) Handle(cmd SaveSupplierCommand) (*domain.Supplier, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("supplier name is required")
	}

	if cmd.SupplierID == 0 {
		supplier := &domain.Supplier{
			Name:    cmd.Name,
			Email:   cmd.Email,
			Phone:   cmd.Phone,
			Address: cmd.Address,
		}
		if err := h.repo.Create(supplier); err != nil {
			return nil, fmt.Errorf("failed to create supplier: %w", err)
		}
		return supplier, nil
	}

	supplier, err := h.repo.FindByID(cmd.SupplierID)
	if err != nil {
		return nil, err
	}
	supplier.Name = cmd.Name
	supplier.Email = cmd.Email
	supplier.Phone = cmd.Phone
	supplier.Address = cmd.Address
	if err := h.repo.Update(supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return supplier, nil
}

// DeleteSupplierHandler handles supplier deletion
type DeleteSupplierHandler struct {
	repo domain.SupplierRepository
}

// NewDeleteSupplierHandler creates a new delete supplier handler
func NewDeleteSupplierHandler(repo domain.SupplierRepository) *DeleteSupplierHandler {
	return &DeleteSupplierHandler{repo: repo}
}

// Handle executes the delete supplier command
func (h *DeleteSupplierHandler) Handle(supplierID uint) error {
	if supplierID == 0 {
		return fmt.Errorf("invalid supplier id")
	}
	return h.repo.Delete(supplierID)
}
