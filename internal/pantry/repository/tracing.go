package repository

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pantry/internal/pantry/domain"
)

const tracerName = "pantry-repository"

// TracingItemRepository wraps an ItemRepository with a span per storage call
type TracingItemRepository struct {
	next    domain.ItemRepository
	backend string
	tracer  trace.Tracer
}

// NewTracingItemRepository creates a traced repository using the global tracer provider
func NewTracingItemRepository(next domain.ItemRepository, backend string) *TracingItemRepository {
	return &TracingItemRepository{
		next:    next,
		backend: backend,
		tracer:  otel.Tracer(tracerName),
	}
}

func (r *TracingItemRepository) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("db.system", r.backend))
	return r.tracer.Start(ctx, "repository."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// ListByOwner with tracing
func (r *TracingItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Item, error) {
	ctx, span := r.start(ctx, "ListByOwner", attribute.String("pantry.owner_id", ownerID))
	defer span.End()

	items, err := r.next.ListByOwner(ctx, ownerID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

// Create with tracing
func (r *TracingItemRepository) Create(ctx context.Context, item *domain.Item) error {
	ctx, span := r.start(ctx, "Create",
		attribute.String("pantry.owner_id", item.OwnerID),
		attribute.String("pantry.item_id", item.ItemID),
	)
	defer span.End()

	err := r.next.Create(ctx, item)
	recordError(span, err)
	return err
}

// Update with tracing
func (r *TracingItemRepository) Update(ctx context.Context, ownerID, itemID string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	ctx, span := r.start(ctx, "Update",
		attribute.String("pantry.owner_id", ownerID),
		attribute.String("pantry.item_id", itemID),
	)
	defer span.End()

	item, err := r.next.Update(ctx, ownerID, itemID, patch, updatedAt)
	recordError(span, err)
	return item, err
}

// Delete with tracing
func (r *TracingItemRepository) Delete(ctx context.Context, ownerID, itemID string) error {
	ctx, span := r.start(ctx, "Delete",
		attribute.String("pantry.owner_id", ownerID),
		attribute.String("pantry.item_id", itemID),
	)
	defer span.End()

	err := r.next.Delete(ctx, ownerID, itemID)
	recordError(span, err)
	return err
}

// Ping is not traced
func (r *TracingItemRepository) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// recordError marks the span failed. A failed condition is an expected outcome
// and only gets an attribute.
func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrConditionFailed) {
		span.SetAttributes(attribute.Bool("db.condition_failed", true))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
