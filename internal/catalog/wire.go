//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/catalog/delivery/http"
	"github.com/tair/retail-inventory/internal/catalog/domain"
	"github.com/tair/retail-inventory/internal/catalog/repository"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideCategoryRepository provides the category repository
func ProvideCategoryRepository(db *gorm.DB) domain.CategoryRepository {
	return repository.NewGormCategoryRepository(db)
}

// ProvideSupplierRepository provides the supplier repository
func ProvideSupplierRepository(db *gorm.DB) domain.SupplierRepository {
	return repository.NewGormSupplierRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideCategoryRepository,
	ProvideSupplierRepository,
)

// InitializeHTTPHandler initializes the catalog HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
