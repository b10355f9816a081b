package query

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/retail-inventory/internal/returns/domain"
	"github.com/tair/retail-inventory/pkg/logger"
)

// ReportCacheTTL is short on purpose: reports feed dashboards, not
// transactional decisions, so mild staleness is acceptable.
const ReportCacheTTL = 60 * time.Second

// ReportsHandler serves the dashboard aggregations with an optional Redis
// cache in front. A nil client disables caching entirely.
type ReportsHandler struct {
	repo  domain.ReportRepository
	cache *redis.Client
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(repo domain.ReportRepository, cache *redis.Client) *ReportsHandler {
	return &ReportsHandler{repo: repo, cache: cache}
}

// ReturnsByReason buckets returns by reason
func (h *ReportsHandler) ReturnsByReason(ctx context.Context) ([]domain.ReasonBucket, error) {
	var buckets []domain.ReasonBucket
	if h.cachedResult(ctx, "reports:returns:by-reason", &buckets) {
		return buckets, nil
	}

	buckets, err := h.repo.ReturnsByReason()
	if err != nil {
		return nil, err
	}
	h.storeResult(ctx, "reports:returns:by-reason", buckets)
	return buckets, nil
}

// ReturnsByMonth buckets returns by month
func (h *ReportsHandler) ReturnsByMonth(ctx context.Context) ([]domain.MonthBucket, error) {
	var buckets []domain.MonthBucket
	if h.cachedResult(ctx, "reports:returns:by-month", &buckets) {
		return buckets, nil
	}

	buckets, err := h.repo.ReturnsByMonth()
	if err != nil {
		return nil, err
	}
	h.storeResult(ctx, "reports:returns:by-month", buckets)
	return buckets, nil
}

// ReplacementsByMonth buckets replacement records by month
func (h *ReportsHandler) ReplacementsByMonth(ctx context.Context) ([]domain.MonthBucket, error) {
	var buckets []domain.MonthBucket
	if h.cachedResult(ctx, "reports:replacements:by-month", &buckets) {
		return buckets, nil
	}

	buckets, err := h.repo.ReplacementsByMonth()
	if err != nil {
		return nil, err
	}
	h.storeResult(ctx, "reports:replacements:by-month", buckets)
	return buckets, nil
}

func (h *ReportsHandler) cachedResult(ctx context.Context, key string, out interface{}) bool {
	if h.cache == nil {
		return false
	}

	data, err := h.cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to decode cached report")
		return false
	}
	return true
}

func (h *ReportsHandler) storeResult(ctx context.Context, key string, value interface{}) {
	if h.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, data, ReportCacheTTL).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("Failed to cache report")
	}
}
