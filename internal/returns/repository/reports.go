package repository

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/returns/domain"
)

// GormReportRepository serves the dashboard aggregations
type GormReportRepository struct {
	db *gorm.DB
}

func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// ReturnsByReason groups returns by their stored reason
func (r *GormReportRepository) ReturnsByReason() ([]domain.ReasonBucket, error) {
	var buckets []domain.ReasonBucket
	err := r.db.Model(&domain.Return{}).
		Select("reason", "COUNT(*) AS count", "SUM(quantity) AS total_quantity").
		Group("reason").
		Order("reason").
		Scan(&buckets).Error
	return buckets, err
}

// ReturnsByMonth buckets returns by the month they were created.
// Month extraction differs per SQL dialect, so bucketing happens in Go.
func (r *GormReportRepository) ReturnsByMonth() ([]domain.MonthBucket, error) {
	var rows []struct {
		CreatedAt time.Time
		Quantity  int
	}
	err := r.db.Model(&domain.Return{}).
		Select("created_at", "quantity").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := map[string]*domain.MonthBucket{}
	for _, row := range rows {
		month := row.CreatedAt.Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &domain.MonthBucket{Month: month}
			byMonth[month] = bucket
		}
		bucket.Count++
		bucket.TotalQuantity += int64(row.Quantity)
	}

	return sortMonthBuckets(byMonth), nil
}

// ReplacementsByMonth buckets replacement records by creation month
func (r *GormReportRepository) ReplacementsByMonth() ([]domain.MonthBucket, error) {
	var rows []struct {
		CreatedAt time.Time
		Quantity  int
	}
	err := r.db.Model(&domain.Replace{}).
		Select("created_at", "quantity").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byMonth := map[string]*domain.MonthBucket{}
	for _, row := range rows {
		month := row.CreatedAt.Format("2006-01")
		bucket, ok := byMonth[month]
		if !ok {
			bucket = &domain.MonthBucket{Month: month}
			byMonth[month] = bucket
		}
		bucket.Count++
		bucket.TotalQuantity += int64(row.Quantity)
	}

	return sortMonthBuckets(byMonth), nil
}

func sortMonthBuckets(byMonth map[string]*domain.MonthBucket) []domain.MonthBucket {
	buckets := make([]domain.MonthBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Month < buckets[j].Month
	})
	return buckets
}
