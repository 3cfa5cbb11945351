package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "THOUGHT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewThoughtCreated fires after a thought record is committed to a
// session's history.
func NewThoughtCreated(userID, tag, model string) Event {
	return BaseEvent{
		Type: "THOUGHT_CREATED",
		Data: map[string]interface{}{
			"user_id": userID,
			"tag":     tag,
			"model":   model,
		},
		OccurredAt: time.Now(),
	}
}

// NewOutlineEntered fires when a session switches into outline mode.
func NewOutlineEntered(userID string) Event {
	return BaseEvent{
		Type:       "OUTLINE_ENTERED",
		Data:       map[string]interface{}{"user_id": userID},
		OccurredAt: time.Now(),
	}
}

// NewOutlineExited fires when a session returns to regular mode. Lines is
// the size of the draft at exit time.
func NewOutlineExited(userID string, lines int) Event {
	return BaseEvent{
		Type: "OUTLINE_EXITED",
		Data: map[string]interface{}{
			"user_id": userID,
			"lines":   lines,
		},
		OccurredAt: time.Now(),
	}
}
