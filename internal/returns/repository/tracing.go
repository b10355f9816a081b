package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/retail-inventory/internal/returns/domain"
)

var tracer = otel.Tracer("returns-repository")

// GormReturnStoreWithTracing wraps GormReturnStore with tracing
type GormReturnStoreWithTracing struct {
	*GormReturnStore
}

// NewGormReturnStoreWithTracing creates a new store with tracing
func NewGormReturnStoreWithTracing(db *gorm.DB) *GormReturnStoreWithTracing {
	return &GormReturnStoreWithTracing{
		GormReturnStore: NewGormReturnStore(db),
	}
}

// TransactionWithContext runs a transactional workflow under a span
func (s *GormReturnStoreWithTracing) TransactionWithContext(ctx context.Context, name string, fn func(domain.Store) error) error {
	_, span := tracer.Start(ctx, "store.Transaction",
		trace.WithAttributes(
			attribute.String("transaction.name", name),
		),
	)
	defer span.End()

	err := s.GormReturnStore.Transaction(fn)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// FindAllReturnsWithContext lists returns under a span
func (s *GormReturnStoreWithTracing) FindAllReturnsWithContext(ctx context.Context, kind domain.SourceKind, limit, offset int) ([]domain.Return, error) {
	_, span := tracer.Start(ctx, "store.FindAllReturns",
		trace.WithAttributes(
			attribute.String("returns.source_kind", string(kind)),
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	returns, err := s.GormReturnStore.FindAllReturns(kind, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(returns)))
	return returns, nil
}

// SumReturnedQuantityWithContext totals prior returns under a span
func (s *GormReturnStoreWithTracing) SumReturnedQuantityWithContext(ctx context.Context, orderID, productID uint) (int, error) {
	_, span := tracer.Start(ctx, "store.SumReturnedQuantity",
		trace.WithAttributes(
			attribute.Int("order.id", int(orderID)),
			attribute.Int("product.id", int(productID)),
		),
	)
	defer span.End()

	sum, err := s.GormReturnStore.SumReturnedQuantity(orderID, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	span.SetAttributes(attribute.Int("returns.prior_quantity", sum))
	return sum, nil
}

// FindAllReplacesWithContext lists replacements under a span
func (s *GormReturnStoreWithTracing) FindAllReplacesWithContext(ctx context.Context, limit, offset int) ([]domain.Replace, error) {
	_, span := tracer.Start(ctx, "store.FindAllReplaces",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	replaces, err := s.GormReturnStore.FindAllReplaces(limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(replaces)))
	return replaces, nil
}
