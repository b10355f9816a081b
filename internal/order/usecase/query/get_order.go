package query

import (
	"github.com/tair/retail-inventory/internal/order/domain"
)

// GetOrderHandler handles fetching a single order by id or code
type GetOrderHandler struct {
	repo domain.SalesOrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(repo domain.SalesOrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// ByID fetches an order by primary key
func (h *GetOrderHandler) ByID(orderID uint) (*domain.SalesOrder, error) {
	return h.repo.FindByID(orderID)
}

// ByCode fetches an order by its human-readable code
func (h *GetOrderHandler) ByCode(code string) (*domain.SalesOrder, error) {
	return h.repo.FindByCode(code)
}
