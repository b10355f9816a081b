package query

import (
	"context"

	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/internal/returns/repository"
)

// ListReplacementsQuery represents the query to list replacement records
type ListReplacementsQuery struct {
	Limit  int
	Offset int
}

// ListReplacementsHandler handles the list replacements query
type ListReplacementsHandler struct {
	store *repository.GormReturnStoreWithTracing
}

// NewListReplacementsHandler creates a new list replacements handler
func NewListReplacementsHandler(store *repository.GormReturnStoreWithTracing) *ListReplacementsHandler {
	return &ListReplacementsHandler{store: store}
}

// Handle executes the list replacements query
func (h *ListReplacementsHandler) Handle(ctx context.Context, q ListReplacementsQuery) ([]domain.Replace, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return h.store.FindAllReplacesWithContext(ctx, q.Limit, q.Offset)
}
