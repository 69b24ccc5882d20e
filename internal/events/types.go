// Package events provides in-process fan-out of mailbox, monitor and
// roster events to observers such as a broadcast gateway or the CLI.
package events

import (
	"encoding/json"
	"time"
)

// EventType is the wire name observers match on.
type EventType string

const (
	EventEnqueued     EventType = "enqueued"
	EventStatusUpdate EventType = "statusUpdate"
	EventProcessing   EventType = "processing"
	EventCompleted    EventType = "completed"
	EventFailed       EventType = "failed"
	EventCancelled    EventType = "cancelled"

	EventMonitoringStopped EventType = "monitoring_stopped"
	EventTaskAccepted      EventType = "task_accepted"
	EventTaskRetry         EventType = "task_retry"
	EventTaskFailed        EventType = "task_failed"

	EventAgentStatus EventType = "agent_status"
)

// Event is a single notification with its correlation payload.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType EventType, payload map[string]any) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// Filter selects events by type. An empty filter matches everything.
type Filter struct {
	Types []EventType
}

func (f Filter) Matches(event *Event) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if event.Type == t {
			return true
		}
	}
	return false
}

// FormatEvent formats an event for JSONL output
func FormatEvent(event *Event) ([]byte, error) {
	return json.Marshal(event)
}
