//go:build wireinject
// +build wireinject

package returns

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/returns/delivery/http"
	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/internal/returns/repository"
	"github.com/tair/retail-inventory/internal/returns/usecase/command"
	"github.com/tair/retail-inventory/internal/returns/usecase/query"
)

// ProvideReturnStore provides the transactional return store
func ProvideReturnStore(db *gorm.DB) domain.Store {
	return repository.NewGormReturnStore(db)
}

// ProvideTracedStore provides the read-side store with tracing spans
func ProvideTracedStore(db *gorm.DB) *repository.GormReturnStoreWithTracing {
	return repository.NewGormReturnStoreWithTracing(db)
}

// ProvideReportRepository provides the report aggregation repository
func ProvideReportRepository(db *gorm.DB) domain.ReportRepository {
	return repository.NewGormReportRepository(db)
}

// Command Handlers Providers
func ProvideCreateReturnHandler(store domain.Store, publisher command.StockEventPublisher) *command.CreateReturnHandler {
	return command.NewCreateReturnHandler(store, publisher)
}

func ProvideUpdateReturnHandler(store domain.Store, publisher command.StockEventPublisher) *command.UpdateReturnHandler {
	return command.NewUpdateReturnHandler(store, publisher)
}

func ProvideDeleteReturnHandler(store domain.Store, publisher command.StockEventPublisher) *command.DeleteReturnHandler {
	return command.NewDeleteReturnHandler(store, publisher)
}

func ProvideOrderReplacementHandler(store domain.Store, publisher command.StockEventPublisher) *command.CreateOrderReplacementHandler {
	return command.NewCreateOrderReplacementHandler(store, publisher)
}

func ProvideProductReplacementHandler(store domain.Store, publisher command.StockEventPublisher) *command.CreateProductReplacementHandler {
	return command.NewCreateProductReplacementHandler(store, publisher)
}

// Query Handlers Providers
func ProvideListReturnsHandler(store *repository.GormReturnStoreWithTracing) *query.ListReturnsHandler {
	return query.NewListReturnsHandler(store)
}

func ProvideGetReturnHandler(store domain.Store) *query.GetReturnHandler {
	return query.NewGetReturnHandler(store)
}

func ProvideListReplacementsHandler(store *repository.GormReturnStoreWithTracing) *query.ListReplacementsHandler {
	return query.NewListReplacementsHandler(store)
}

func ProvideReportsHandler(repo domain.ReportRepository, cache *redis.Client) *query.ReportsHandler {
	return query.NewReportsHandler(repo, cache)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideReturnStore,
	ProvideTracedStore,
	ProvideReportRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateReturnHandler,
	ProvideUpdateReturnHandler,
	ProvideDeleteReturnHandler,
	ProvideOrderReplacementHandler,
	ProvideProductReplacementHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListReturnsHandler,
	ProvideGetReturnHandler,
	ProvideListReplacementsHandler,
	ProvideReportsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the returns HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.StockEventPublisher, cache *redis.Client) (*http.ReturnsHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewReturnsHandler,
	)
	return nil, nil
}
