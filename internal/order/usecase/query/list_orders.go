package query

import (
	"github.com/tair/retail-inventory/internal/order/domain"
)

// ListOrdersQuery represents the query to list orders
type ListOrdersQuery struct {
	Limit  int
	Offset int
}

// ListOrdersHandler handles the list orders query
type ListOrdersHandler struct {
	repo domain.SalesOrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(repo domain.SalesOrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]domain.SalesOrder, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return h.repo.FindAll(q.Limit, q.Offset)
}
