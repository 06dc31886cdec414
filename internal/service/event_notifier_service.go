package service

import (
	"context"
	"fmt"

	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/pkg/events"
	pktNats "ai-resume-be/pkg/nats"
)

// EventDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type EventDelivery interface {
	Send(sessionID, messageType string, data interface{})
}

// EventNotifierService relays integration events from the bus back to the
// session's websocket, so clients (and other instances) see escalations,
// renders and failures even when they were produced elsewhere.
type EventNotifierService struct {
	subscriber *pktNats.Subscriber
	delivery   EventDelivery
	logger     logger.ILogger
}

func NewEventNotifierService(sub *pktNats.Subscriber, delivery EventDelivery, log logger.ILogger) *EventNotifierService {
	return &EventNotifierService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *EventNotifierService) Start() {
	err := s.subscriber.Subscribe("resume.>", "event-notifier-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("EventNotifier", "Failed to start event subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("EventNotifier", "Listening to resume.>", nil)
}

func (s *EventNotifierService) handleEvent(_ context.Context, event events.Event) error {
	payload := event.Payload()
	sessionID, _ := payload["session_id"].(string)
	if sessionID == "" {
		s.logger.Warn("EventNotifier", "Event without session id", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	summary := summarizeEvent(event.EventType(), payload)
	if summary == "" {
		// Not a client-facing event.
		return nil
	}

	s.delivery.Send(sessionID, "event", map[string]interface{}{
		"type":    event.EventType(),
		"summary": summary,
		"payload": payload,
	})
	return nil
}

func summarizeEvent(eventType string, payload map[string]interface{}) string {
	switch eventType {
	case events.TypeDocumentRendered:
		format, _ := payload["format"].(string)
		tier, _ := payload["tier"].(string)
		return fmt.Sprintf("Rendered %s at tier %s", format, tier)
	case events.TypeChangeEscalated:
		rationale, _ := payload["rationale"].(string)
		return "Change escalated to regeneration: " + rationale
	case events.TypeSessionFailed:
		reason, _ := payload["reason"].(string)
		return "Session failed: " + reason
	}
	return ""
}

// Close shuts the underlying NATS connection down.
func (s *EventNotifierService) Close() {
	s.subscriber.Close()
}
