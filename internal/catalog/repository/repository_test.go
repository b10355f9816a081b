package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/catalog/domain"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&domain.Product{}, &domain.Category{}, &domain.Supplier{})
	require.NoError(t, err)

	return db
}

func TestProductRepository(t *testing.T) {
	t.Run("create and find", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		product := &domain.Product{
			Name:            "Keyboard",
			SKU:             "KB-100",
			UnitPrice:       59.90,
			QuantityInStock: 12,
			IsActive:        true,
		}
		require.NoError(t, repo.Create(product))
		require.NotZero(t, product.ID)

		found, err := repo.FindByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Keyboard", found.Name)
		assert.Equal(t, 12, found.QuantityInStock)

		bySKU, err := repo.FindBySKU("KB-100")
		require.NoError(t, err)
		assert.Equal(t, product.ID, bySKU.ID)
	})

	t.Run("missing product returns sentinel", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		_, err := repo.FindByID(42)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		_, err = repo.FindBySKU("nope")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)

		err = repo.Delete(42)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("update and delete", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		product := &domain.Product{Name: "Mouse", SKU: "MS-1", UnitPrice: 19.90, IsActive: true}
		require.NoError(t, repo.Create(product))

		product.UnitPrice = 24.90
		require.NoError(t, repo.Update(product))

		found, err := repo.FindByID(product.ID)
		require.NoError(t, err)
		assert.Equal(t, 24.90, found.UnitPrice)

		require.NoError(t, repo.Delete(product.ID))
		_, err = repo.FindByID(product.ID)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("filter by category", func(t *testing.T) {
		db := setupCatalogTestDB(t)
		repo := NewGormProductRepository(db)

		categoryID := uint(7)
		require.NoError(t, repo.Create(&domain.Product{Name: "A", SKU: "A-1", UnitPrice: 1, CategoryID: &categoryID, IsActive: true}))
		require.NoError(t, repo.Create(&domain.Product{Name: "B", SKU: "B-1", UnitPrice: 1, IsActive: true}))

		products, err := repo.FindByCategory(categoryID, 10, 0)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "A", products[0].Name)
	})
}

func TestCategoryRepository(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormCategoryRepository(db)

	category := &domain.Category{Name: "Peripherals"}
	require.NoError(t, repo.Create(category))

	found, err := repo.FindByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Peripherals", found.Name)

	_, err = repo.FindByID(99)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

	require.NoError(t, repo.Delete(category.ID))
	assert.ErrorIs(t, repo.Delete(category.ID), domain.ErrCategoryNotFound)
}

func TestSupplierRepository(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormSupplierRepository(db)

	supplier := &domain.Supplier{Name: "Acme Wholesale"}
	require.NoError(t, repo.Create(supplier))

	found, err := repo.FindByID(supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Wholesale", found.Name)

	_, err = repo.FindByID(99)
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}
