package query

import (
	"context"

	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/internal/returns/repository"
)

// ListReturnsQuery represents the query to list returns
type ListReturnsQuery struct {
	SourceKind domain.SourceKind
	Limit      int
	Offset     int
}

// ListReturnsHandler handles the list returns query
type ListReturnsHandler struct {
	store *repository.GormReturnStoreWithTracing
}

// NewListReturnsHandler creates a new list returns handler
func NewListReturnsHandler(store *repository.GormReturnStoreWithTracing) *ListReturnsHandler {
	return &ListReturnsHandler{store: store}
}

// Handle executes the list returns query
func (h *ListReturnsHandler) Handle(ctx context.Context, q ListReturnsQuery) ([]domain.Return, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return h.store.FindAllReturnsWithContext(ctx, q.SourceKind, q.Limit, q.Offset)
}

// GetReturnHandler handles fetching a single return
type GetReturnHandler struct {
	store domain.Store
}

// NewGetReturnHandler creates a new get return handler
func NewGetReturnHandler(store domain.Store) *GetReturnHandler {
	return &GetReturnHandler{store: store}
}

// Handle executes the get return query
func (h *GetReturnHandler) Handle(ctx context.Context, returnID uint) (*domain.Return, error) {
	return h.store.FindReturnByID(returnID)
}
