package command

import (
	"fmt"

	"github.com/tair/retail-inventory/internal/catalog/domain"
)

// SaveCategoryCommand creates a category when CategoryID is zero, otherwise
// updates the existing one
type SaveCategoryCommand struct {
	CategoryID  uint
	Name        string
	Description string
}

// SaveCategoryHandler handles category create/update
type SaveCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewSaveCategoryHandler creates a new save category handler
func NewSaveCategoryHandler(repo domain.CategoryRepository) *SaveCategoryHandler {
	return &SaveCategoryHandler{repo: repo}
}

// Handle executes the save category command
func (h *SaveCategoryHandler) Handle(cmd SaveCategoryCommand) (*domain.Category, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	if cmd.CategoryID == 0 {
		category := &domain.Category{Name: cmd.Name, Description: cmd.Description}
		if err := h.repo.Create(category); err != nil {
			return nil, fmt.Errorf("failed to create category: %w", err)
		}
		return category, nil
	}

	category, err := h.repo.FindByID(cmd.CategoryID)
	if err != nil {
		return nil, err
	}
	category.Name = cmd.Name
	category.Description = cmd.Description
	if err := h.repo.Update(category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategoryHandler handles category deletion
type DeleteCategoryHandler struct {
	repo domain.CategoryRepository
}

// NewDeleteCategoryHandler creates a new delete category handler
func NewDeleteCategoryHandler(repo domain.CategoryRepository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{repo: repo}
}

// Handle executes the delete category command
func (h *DeleteCategoryHandler) Handle(categoryID uint) error {
	if categoryID == 0 {
		return fmt.Errorf("invalid category id")
	}
	return h.repo.Delete(categoryID)
}
