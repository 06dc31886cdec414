package store

import "ai-resume-be/pkg/facts"

// Session is the live, mutable state of one assistant session. It is owned by
// exactly one orchestration loop instance while a message is being processed;
// repositories only move it in and out of the backing store between messages.
type Session struct {
	ID    string `json:"id"`
	State string `json:"state"`

	// Document is the last committed resume markdown. It is replaced
	// wholesale by a successful generation, mutated in place by an approved
	// local transform, and never changed by a failure.
	Document string `json:"document"`

	// Facts is the structured data gathered so far. Generation receives it
	// alongside the free-text instruction.
	Facts facts.Resume `json:"facts"`

	// InFlight marks a mutating operation between intake and commit.
	// At most one per session.
	InFlight bool `json:"in_flight"`

	LastMessage string `json:"last_message"`
}

// Orchestration states. Failed is transient: the loop reports it and returns
// the session to Idle with the prior document retained.
const (
	StateIdle               = "IDLE"
	StateClassifying        = "CLASSIFYING"
	StatePlanningEdit       = "PLANNING_EDIT"
	StateAwaitingGeneration = "AWAITING_GENERATION"
	StateRendering          = "RENDERING"
	StateDone               = "DONE"
	StateFailed             = "FAILED"
)

// SessionStore is the opaque key-value abstraction over live session state.
// Expiry is managed by the implementation (Redis TTL or cache eviction).
type SessionStore interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}
