package events

import "time"

// Event is the contract for everything published on the integration bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "RESUME_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation the constructors below build on.
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

// Event type codes.
const (
	TypeSessionStarted   = "SESSION_STARTED"
	TypeResumeGenerated  = "RESUME_GENERATED"
	TypeDocumentRendered = "DOCUMENT_RENDERED"
	TypeChangeEscalated  = "CHANGE_ESCALATED"
	TypeSessionFailed    = "SESSION_FAILED"
)

// NewSessionStarted marks a new conversation session.
func NewSessionStarted(sessionID string) Event {
	return BaseEvent{
		Type:       TypeSessionStarted,
		Data:       map[string]interface{}{"session_id": sessionID},
		OccurredAt: time.Now(),
	}
}

// NewResumeGenerated marks a full document (re)generation.
func NewResumeGenerated(sessionID string, wordCount int) Event {
	return BaseEvent{
		Type:       TypeResumeGenerated,
		Data:       map[string]interface{}{"session_id": sessionID, "word_count": wordCount},
		OccurredAt: time.Now(),
	}
}

// NewDocumentRendered marks a finished render, with the chosen layout tier.
func NewDocumentRendered(sessionID, format, tier string) Event {
	return BaseEvent{
		Type:       TypeDocumentRendered,
		Data:       map[string]interface{}{"session_id": sessionID, "format": format, "tier": tier},
		OccurredAt: time.Now(),
	}
}

// NewChangeEscalated marks a request the planner handed to regeneration.
func NewChangeEscalated(sessionID, rationale string) Event {
	return BaseEvent{
		Type:       TypeChangeEscalated,
		Data:       map[string]interface{}{"session_id": sessionID, "rationale": rationale},
		OccurredAt: time.Now(),
	}
}

// NewSessionFailed marks a session that entered the failed state.
func NewSessionFailed(sessionID, reason string) Event {
	return BaseEvent{
		Type:       TypeSessionFailed,
		Data:       map[string]interface{}{"session_id": sessionID, "reason": reason},
		OccurredAt: time.Now(),
	}
}
