package domain

import (
	"context"
	"time"
)

// Item lifecycle event types
const (
	EventTypeItemCreated = "pantry.item.created"
	EventTypeItemUpdated = "pantry.item.updated"
	EventTypeItemDeleted = "pantry.item.deleted"
)

// ItemEvent describes a successful mutation of a pantry item.
type ItemEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OwnerID   string    `json:"owner_id"`
	ItemID    string    `json:"item_id"`
	Item      *Item     `json:"item,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher emits item events after the storage write has succeeded.
type EventPublisher interface {
	Publish(ctx context.Context, event ItemEvent) error
}

// NoopPublisher discards events
type NoopPublisher struct{}

// Publish implements EventPublisher
func (NoopPublisher) Publish(context.Context, ItemEvent) error { return nil }
