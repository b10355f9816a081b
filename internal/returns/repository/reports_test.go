package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/returns/domain"
)

func setupReportTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&domain.Return{}, &domain.Replace{})
	require.NoError(t, err)

	return db
}

func seedReturn(t *testing.T, db *gorm.DB, reason string, quantity int, createdAt time.Time) {
	orderID := uint(1)
	ret := &domain.Return{
		OrderID:     &orderID,
		Quantity:    quantity,
		Reason:      reason,
		ProcessedBy: 1,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(ret).Error)
}

func TestReportRepository_ReturnsByReason(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewGormReportRepository(db)

	now := time.Now()
	seedReturn(t, db, "Refund", 2, now)
	seedReturn(t, db, "Refund", 3, now)
	seedReturn(t, db, "Lost", 1, now)

	buckets, err := repo.ReturnsByReason()
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	// Ordered by reason
	assert.Equal(t, "Lost", buckets[0].Reason)
	assert.Equal(t, int64(1), buckets[0].Count)
	assert.Equal(t, int64(1), buckets[0].TotalQuantity)

	assert.Equal(t, "Refund", buckets[1].Reason)
	assert.Equal(t, int64(2), buckets[1].Count)
	assert.Equal(t, int64(5), buckets[1].TotalQuantity)
}

func TestReportRepository_ReturnsByMonth(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewGormReportRepository(db)

	january := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	february := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	seedReturn(t, db, "Refund", 2, january)
	seedReturn(t, db, "Lost", 1, january)
	seedReturn(t, db, "Refund", 4, february)

	buckets, err := repo.ReturnsByMonth()
	require.NoError(t, err)
	require.Len(t, buckets, 2)

	assert.Equal(t, "2026-01", buckets[0].Month)
	assert.Equal(t, int64(2), buckets[0].Count)
	assert.Equal(t, int64(3), buckets[0].TotalQuantity)

	assert.Equal(t, "2026-02", buckets[1].Month)
	assert.Equal(t, int64(1), buckets[1].Count)
	assert.Equal(t, int64(4), buckets[1].TotalQuantity)
}

func TestReportRepository_ReplacementsByMonth(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewGormReportRepository(db)

	march := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	rep := &domain.Replace{
		OriginalOrderID:      1,
		OriginalProductID:    1,
		ReplacementProductID: 2,
		Reason:               "Replace",
		Quantity:             2,
		ProcessedBy:          1,
		CreatedAt:            march,
	}
	require.NoError(t, db.Create(rep).Error)

	buckets, err := repo.ReplacementsByMonth()
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	assert.Equal(t, "2026-03", buckets[0].Month)
	assert.Equal(t, int64(1), buckets[0].Count)
	assert.Equal(t, int64(2), buckets[0].TotalQuantity)
}

func TestReportRepository_Empty(t *testing.T) {
	db := setupReportTestDB(t)
	repo := NewGormReportRepository(db)

	byReason, err := repo.ReturnsByReason()
	require.NoError(t, err)
	assert.Empty(t, byReason)

	byMonth, err := repo.ReturnsByMonth()
	require.NoError(t, err)
	assert.Empty(t, byMonth)
}
