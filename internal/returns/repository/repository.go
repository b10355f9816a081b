package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	catalog "github.com/tair/retail-inventory/internal/catalog/domain"
	inventory "github.com/tair/retail-inventory/internal/inventory/domain"
	invrepo "github.com/tair/retail-inventory/internal/inventory/repository"
	order "github.com/tair/retail-inventory/internal/order/domain"
	"github.com/tair/retail-inventory/internal/returns/domain"
)

// GormReturnStore implements the returns transactional store. Transaction
// yields a store bound to the gorm transaction handle, so the ledger and every
// repository call inside the callback share one commit/rollback.
type GormReturnStore struct {
	db *gorm.DB
}

func NewGormReturnStore(db *gorm.DB) *GormReturnStore {
	return &GormReturnStore{db: db}
}

func (s *GormReturnStore) AutoMigrate() error {
	return s.db.AutoMigrate(&domain.Return{}, &domain.Replace{})
}

func (s *GormReturnStore) Transaction(fn func(domain.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormReturnStore{db: tx})
	})
}

func (s *GormReturnStore) Ledger() inventory.Ledger {
	return invrepo.NewGormStockLedger(s.db)
}

func (s *GormReturnStore) CreateReturn(ret *domain.Return) error {
	return s.db.Create(ret).Error
}

func (s *GormReturnStore) FindReturnByID(id uint) (*domain.Return, error) {
	var ret domain.Return
	if err := s.db.First(&ret, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReturnNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindAllReturns lists returns, optionally filtered to one source kind
func (s *GormReturnStore) FindAllReturns(kind domain.SourceKind, limit, offset int) ([]domain.Return, error) {
	query := s.db.Model(&domain.Return{})
	switch kind {
	case domain.SourceOrder:
		query = query.Where("order_id IS NOT NULL")
	case domain.SourceProduct:
		query = query.Where("product_id IS NOT NULL")
	}

	var returns []domain.Return
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&returns).Error
	return returns, err
}

func (s *GormReturnStore) SaveReturn(ret *domain.Return) error {
	return s.db.Save(ret).Error
}

func (s *GormReturnStore) DeleteReturn(id uint) error {
	result := s.db.Delete(&domain.Return{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrReturnNotFound
	}
	return nil
}

// SumReturnedQuantity totals prior return and replacement quantities recorded
// against an order+product pair, for the over-return check
func (s *GormReturnStore) SumReturnedQuantity(orderID, productID uint) (int, error) {
	var returned int
	err := s.db.Model(&domain.Return{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&returned).Error
	if err != nil {
		return 0, err
	}

	var replaced int
	err = s.db.Model(&domain.Replace{}).
		Where("original_order_id = ? AND original_product_id = ?", orderID, productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&replaced).Error
	if err != nil {
		return 0, err
	}

	return returned + replaced, nil
}

func (s *GormReturnStore) CreateReplace(rep *domain.Replace) error {
	return s.db.Create(rep).Error
}

func (s *GormReturnStore) FindReplaceByID(id uint) (*domain.Replace, error) {
	var rep domain.Replace
	if err := s.db.First(&rep, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReplaceNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (s *GormReturnStore) FindAllReplaces(limit, offset int) ([]domain.Replace, error) {
	var replaces []domain.Replace
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&replaces).Error
	return replaces, err
}

func (s *GormReturnStore) FindProduct(id uint) (*catalog.Product, error) {
	var product catalog.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *GormReturnStore) FindOrder(id uint) (*order.SalesOrder, error) {
	var o order.SalesOrder
	if err := s.db.Preload("Items").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FirstOrderItem returns the originating line item of an order
func (s *GormReturnStore) FirstOrderItem(orderID uint) (*order.OrderItem, error) {
	var item order.OrderItem
	if err := s.db.Where("order_id = ?", orderID).Order("id").First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *GormReturnStore) CreateOrder(o *order.SalesOrder) error {
	err := s.db.Create(o).Error
	if err != nil && isDuplicateKey(err) {
		return order.ErrDuplicateOrderCode
	}
	return err
}

func (s *GormReturnStore) CreateOrderItem(item *order.OrderItem) error {
	return s.db.Create(item).Error
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
