package kafka

// DefaultTopic receives every pantry item lifecycle event
const DefaultTopic = "pantry-item-events"

// Record header keys
const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
)
