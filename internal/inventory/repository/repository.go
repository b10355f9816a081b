package repository

import (
	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/inventory/domain"
)

type GormAdjustmentRepository struct {
	db *gorm.DB
}

func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

func (r *GormAdjustmentRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.InventoryAdjustment{})
}

func (r *GormAdjustmentRepository) FindAll(limit, offset int) ([]domain.InventoryAdjustment, error) {
	var adjustments []domain.InventoryAdjustment
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&adjustments).Error
	return adjustments, err
}

func (r *GormAdjustmentRepository) FindByProductID(productID uint, limit, offset int) ([]domain.InventoryAdjustment, error) {
	var adjustments []domain.InventoryAdjustment
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&adjustments).Error
	return adjustments, err
}
