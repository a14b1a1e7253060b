package events

import (
	"time"
)

// EventType identifies the category and nature of a framework event.
type EventType string

// Tool lifecycle events
const (
	EventToolRegistered   EventType = "tool.registered"
	EventToolUnregistered EventType = "tool.unregistered"
	EventToolEnabled      EventType = "tool.enabled"
	EventToolDisabled     EventType = "tool.disabled"
)

// Tool execution events
const (
	EventToolExecuted EventType = "tool.executed"
	EventToolFailed   EventType = "tool.failed"
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// Event represents a single framework notification.
//
// Data carries event-specific attributes: execution events include duration,
// attempt count, and (for failures) the error code; lifecycle events may be
// emitted with no data at all.
type Event struct {
	// Type identifies the category and nature of the event
	Type EventType `json:"type"`

	// ToolName identifies which tool the event concerns
	ToolName string `json:"tool_name"`

	// Timestamp records when the event occurred
	Timestamp time.Time `json:"timestamp"`

	// Data contains additional key-value attributes for the event
	Data map[string]any `json:"data,omitempty"`
}

// NewEvent creates an Event with the timestamp set to now.
func NewEvent(eventType EventType, toolName string, data map[string]any) Event {
	return Event{
		Type:      eventType,
		ToolName:  toolName,
		Timestamp: time.Now(),
		Data:      data,
	}
}
