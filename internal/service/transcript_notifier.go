package service

import (
	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/pkg/orchestrator"
	"ai-resume-be/pkg/render"
	"ai-resume-be/pkg/store"

	"github.com/google/uuid"
)

// TranscriptNotifier decorates the client-facing notifier: every assistant
// reply becomes a transcript turn, every committed document a snapshot.
type TranscriptNotifier struct {
	inner       orchestrator.Notifier
	transcripts ITranscriptPublisher
	sessions    store.SessionStore
	logger      logger.ILogger
}

var _ orchestrator.Notifier = &TranscriptNotifier{}

func NewTranscriptNotifier(
	inner orchestrator.Notifier,
	transcripts ITranscriptPublisher,
	sessions store.SessionStore,
	log logger.ILogger,
) *TranscriptNotifier {
	return &TranscriptNotifier{
		inner:       inner,
		transcripts: transcripts,
		sessions:    sessions,
		logger:      log,
	}
}

func (n *TranscriptNotifier) Reply(sessionID, message string) {
	n.inner.Reply(sessionID, message)

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return
	}
	if err := n.transcripts.PublishTurn(dto.TranscriptMessage{
		SessionId: id,
		Role:      "assistant",
		Chat:      message,
	}); err != nil {
		n.logger.Warn("Transcript", "Failed to queue assistant turn", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

// Status updates are transient; they are pushed but never persisted.
func (n *TranscriptNotifier) Status(sessionID, message string) {
	n.inner.Status(sessionID, message)
}

func (n *TranscriptNotifier) Document(sessionID, markdown string) {
	n.inner.Document(sessionID, markdown)

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return
	}
	snapshot := dto.SessionSnapshotMessage{SessionId: id, Document: markdown}
	if sess, ok := n.sessions.Get(sessionID); ok {
		snapshot.State = sess.State
		snapshot.Facts = sess.Facts
	}
	if err := n.transcripts.PublishSnapshot(snapshot); err != nil {
		n.logger.Warn("Transcript", "Failed to queue session snapshot", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
	}
}

func (n *TranscriptNotifier) Artifact(sessionID string, artifact render.Artifact) {
	n.inner.Artifact(sessionID, artifact)
}
