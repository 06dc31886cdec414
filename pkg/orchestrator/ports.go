package orchestrator

import (
	"context"
	"errors"

	"ai-resume-be/pkg/events"
	"ai-resume-be/pkg/render"
)

// Sentinel errors for terminal outcomes. The loop reports them to the user
// and keeps the session's prior document intact.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrGenerationFailed = errors.New("resume generation failed")
	ErrRenderingFailed  = errors.New("document rendering failed")
	ErrNoFactsGathered  = errors.New("no resume facts gathered yet")
)

// Notifier pushes conversational replies, progress and artifacts to the
// client, usually over the session's websocket.
type Notifier interface {
	// Reply delivers the assistant's conversational answer.
	Reply(sessionID, message string)

	// Status delivers a transient progress note ("Generating your resume...").
	Status(sessionID, message string)

	// Document delivers the updated resume markdown.
	Document(sessionID, markdown string)

	// Artifact delivers one rendered file.
	Artifact(sessionID string, artifact render.Artifact)
}

// EventPublisher emits integration events. A nil publisher disables the bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
