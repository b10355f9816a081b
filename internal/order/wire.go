//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/order/delivery/http"
	"github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/order/repository"
)

// ProvideCheckoutStore provides the transactional checkout store
func ProvideCheckoutStore(db *gorm.DB) domain.CheckoutStore {
	return repository.NewGormCheckoutStore(db)
}

// ProvideSalesOrderRepository provides the sales order repository
func ProvideSalesOrderRepository(db *gorm.DB) domain.SalesOrderRepository {
	return repository.NewGormSalesOrderRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCheckoutStore,
	ProvideSalesOrderRepository,
)

// InitializeHTTPHandler initializes the order HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewOrderHandler,
	)
	return nil, nil
}
