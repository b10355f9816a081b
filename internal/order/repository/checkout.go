package repository

import (
	"errors"

	"gorm.io/gorm"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	invrepo "github.com/tair/retail-inventory/internal/inventory/repository"
	"github.com/tair/retail-inventory/internal/order/domain"
)

// GormCheckoutStore implements the transactional checkout boundary
type GormCheckoutStore struct {
	db *gorm.DB
}

func NewGormCheckoutStore(db *gorm.DB) *GormCheckoutStore {
	return &GormCheckoutStore{db: db}
}

func (s *GormCheckoutStore) Transaction(fn func(domain.CheckoutStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormCheckoutStore{db: tx})
	})
}

func (s *GormCheckoutStore) Ledger() inventory.Ledger {
	return invrepo.NewGormStockLedger(s.db)
}

func (s *GormCheckoutStore) CreateOrder(order *domain.SalesOrder) error {
	err := s.db.Create(order).Error
	if err != nil && isDuplicateKey(err) {
		return domain.ErrDuplicateOrderCode
	}
	return err
}

func (s *GormCheckoutStore) CreateOrderItem(item *domain.OrderItem) error {
	return s.db.Create(item).Error
}

func (s *GormCheckoutStore) ProductPrice(productID uint) (float64, error) {
	var product catalog.Product
	if err := s.db.Select("id", "unit_price").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, catalog.ErrProductNotFound
		}
		return 0, err
	}
	return product.UnitPrice, nil
}
