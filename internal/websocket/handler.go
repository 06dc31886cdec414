package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs wires one websocket connection into the hub. Incoming text frames
// are treated as chat messages and forwarded to the inbound callback.
func ServeWs(hub *Hub, c *websocket.Conn, sessionID string, inbound func(sessionID, message string)) {
	client := &Client{
		Hub:       hub,
		Conn:      c,
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		Inbound:   inbound,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // runs in the handler goroutine
}
