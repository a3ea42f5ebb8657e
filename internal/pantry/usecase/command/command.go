package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tair/pantry/internal/pantry/domain"
	"github.com/tair/pantry/pkg/logger"
)

// ValidationError is a client error detected before any storage call
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// Clock returns the current time
type Clock func() time.Time

// IDGenerator returns a fresh item id
type IDGenerator func() string

// SystemClock is the wall clock
func SystemClock() time.Time { return time.Now() }

// stamp normalizes timestamps to UTC at the precision every backend can store
func stamp(clock Clock) time.Time {
	return clock().UTC().Truncate(time.Microsecond)
}

// publish emits an item event; a publishing failure never undoes the write
func publish(ctx context.Context, publisher domain.EventPublisher, eventType, ownerID, itemID string, item *domain.Item, at time.Time) {
	event := domain.ItemEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		OwnerID:   ownerID,
		ItemID:    itemID,
		Item:      item,
		Timestamp: at,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", eventType).
			Str("item_id", itemID).
			Msg("Failed to publish item event")
	}
}
