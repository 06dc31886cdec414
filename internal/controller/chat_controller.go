package controller

import (
	"context"

	"ai-resume-be/internal/dto"
	"ai-resume-be/internal/pkg/logger"
	"ai-resume-be/internal/pkg/serverutils"
	"ai-resume-be/internal/service"
	ws "ai-resume-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	assistantService service.IAssistantService
	hub              *ws.Hub
	logger           logger.ILogger
}

func NewChatController(assistantService service.IAssistantService, hub *ws.Hub, log logger.ILogger) IChatController {
	return &chatController{
		assistantService: assistantService,
		hub:              hub,
		logger:           log,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post(":id", c.Send)

	// Websocket endpoint: the client receives replies, status updates, document
	// revisions and rendered files here, and may also send chat messages over
	// the same connection.
	r.Use("/ws/:session_id", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/ws/:session_id", websocket.New(func(conn *websocket.Conn) {
		sessionID := conn.Params("session_id")
		ws.ServeWs(c.hub, conn, sessionID, c.inbound)
	}))
}

// Send accepts a chat message over REST; the response is delivered on the
// session's websocket.
func (c *chatController) Send(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Chat(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Message accepted", res))
}

// inbound handles chat messages arriving over the websocket itself.
func (c *chatController) inbound(sessionID, message string) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return
	}

	req := &dto.ChatRequest{Message: message}
	if err := serverutils.ValidateRequest(*req); err != nil {
		c.hub.Send(sessionID, "error", map[string]interface{}{"message": err.Error()})
		return
	}

	if _, err := c.assistantService.Chat(context.Background(), id, req); err != nil {
		c.logger.Warn("Chat", "Failed to accept websocket message", map[string]interface{}{
			"session_id": sessionID, "error": err.Error(),
		})
		c.hub.Send(sessionID, "error", map[string]interface{}{"message": err.Error()})
	}
}
