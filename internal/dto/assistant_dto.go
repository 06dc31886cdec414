package dto

import (
	"time"

	"ai-resume-be/pkg/facts"

	"github.com/google/uuid"
)

// --- REST requests ---

type CreateSessionRequest struct {
	Title string `json:"title" validate:"omitempty,max=200"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// --- REST responses ---

type SessionResponse struct {
	Id       uuid.UUID    `json:"id"`
	Title    string       `json:"title"`
	State    string       `json:"state"`
	Document string       `json:"document,omitempty"`
	Facts    facts.Resume `json:"facts"`
	Created  time.Time    `json:"created_at"`
}

type ChatAcceptedResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Accepted  bool      `json:"accepted"`
}

type MessageResponse struct {
	Id      uuid.UUID `json:"id"`
	Role    string    `json:"role"`
	Chat    string    `json:"chat"`
	Intent  string    `json:"intent,omitempty"`
	Created time.Time `json:"created_at"`
}

// --- Internal pipeline messages ---

// TranscriptMessage is published on the transcript topic for asynchronous
// persistence of one conversational turn.
type TranscriptMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Intent    string    `json:"intent,omitempty"`
}

// SessionSnapshotMessage is published whenever the committed document or
// facts change, so the durable record follows the live session.
type SessionSnapshotMessage struct {
	SessionId uuid.UUID    `json:"session_id"`
	State     string       `json:"state"`
	Document  string       `json:"document"`
	Facts     facts.Resume `json:"facts"`
}
