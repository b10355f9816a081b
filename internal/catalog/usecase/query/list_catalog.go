package query

import (
	"github.com/tair/retail-inventory/internal/catalog/domain"
)

// ListCategoriesHandler handles the list categories query
type ListCategoriesHandler struct {
	repo domain.CategoryRepository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(limit, offset int) ([]domain.Category, error) {
	if limit <= 0 {
		limit = 10
	}
	return h.repo.FindAll(limit, offset)
}

// ListSuppliersHandler handles the list suppliers query
type ListSuppliersHandler struct {
	repo domain.SupplierRepository
}

// NewListSuppliersHandler creates a new list suppliers handler
func NewListSuppliersHandler(repo domain.SupplierRepository) *ListSuppliersHandler {
	return &ListSuppliersHandler{repo: repo}
}

// Handle executes the list suppliers query
func (h *ListSuppliersHandler) Handle(limit, offset int) ([]domain.Supplier, error) {
	if limit <= 0 {
		limit = 10
	}
	return h.repo.FindAll(limit, offset)
}
