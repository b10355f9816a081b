package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/order/domain"
)

type GormSalesOrderRepository struct {
	db *gorm.DB
}

func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

func (r *GormSalesOrderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.SalesOrder{}, &domain.OrderItem{})
}

func (r *GormSalesOrderRepository) Create(order *domain.SalesOrder) error {
	err := r.db.Create(order).Error
	if err != nil && isDuplicateKey(err) {
		return domain.ErrDuplicateOrderCode
	}
	return err
}

func (r *GormSalesOrderRepository) FindByID(id uint) (*domain.SalesOrder, error) {
	var order domain.SalesOrder
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormSalesOrderRepository) FindByCode(code string) (*domain.SalesOrder, error) {
	var order domain.SalesOrder
	if err := r.db.Preload("Items").Where("order_code = ?", code).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormSalesOrderRepository) FindAll(limit, offset int) ([]domain.SalesOrder, error) {
	var orders []domain.SalesOrder
	err := r.db.Preload("Items").Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, err
}

func (r *GormSalesOrderRepository) FindItemsByOrderID(orderID uint) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := r.db.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *GormSalesOrderRepository) CreateItem(item *domain.OrderItem) error {
	return r.db.Create(item).Error
}

func (r *GormSalesOrderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.SalesOrder{}).Count(&count).Error
	return count, err
}

// isDuplicateKey detects a unique-constraint violation on the order code so
// callers can regenerate and retry instead of surfacing a raw driver error
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
