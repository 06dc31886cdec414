package websocket

import (
	"encoding/base64"

	"ai-resume-be/pkg/render"
)

// Message type codes pushed to the client.
const (
	TypeChatResponse = "chat_response"
	TypeStatusUpdate = "status_update"
	TypeResumeUpdate = "resume_update"
	TypeFileReady    = "file_ready"
)

// HubNotifier adapts the hub to the orchestration loop's notification port.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Reply(sessionID, message string) {
	n.hub.Send(sessionID, TypeChatResponse, map[string]interface{}{"message": message})
}

func (n *HubNotifier) Status(sessionID, message string) {
	n.hub.Send(sessionID, TypeStatusUpdate, map[string]interface{}{"message": message})
}

func (n *HubNotifier) Document(sessionID, markdown string) {
	n.hub.Send(sessionID, TypeResumeUpdate, map[string]interface{}{"markdown": markdown})
}

func (n *HubNotifier) Artifact(sessionID string, artifact render.Artifact) {
	n.hub.Send(sessionID, TypeFileReady, map[string]interface{}{
		"format":       string(artifact.Format),
		"content_type": artifact.ContentType,
		"data":         base64.StdEncoding.EncodeToString(artifact.Data),
	})
}
