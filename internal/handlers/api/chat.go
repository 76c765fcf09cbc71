package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"callhelper/internal/chat"
	"callhelper/internal/models"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	UserType  string `json:"user_type"`
	SessionID string `json:"session_id"`
	IsFirst   bool   `json:"is_first"`
}

// ChatHandler serves the support chatbot.
type ChatHandler struct {
	service *chat.Service
}

// NewChatHandler creates a new API chat handler.
func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat handles one chatbot turn.
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var req ChatRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ChatResponse{
			Response:     chat.ErrorText,
			QuickReplies: chat.ErrorReplies,
		})
	}

	resp, err := h.service.Respond(c.Context(), chat.Request{
		Message:   req.Message,
		UserType:  req.UserType,
		SessionID: req.SessionID,
		IsFirst:   req.IsFirst,
	})
	if err != nil {
		slog.Error("chat turn failed", "session_id", req.SessionID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ChatResponse{
			Response:     chat.ErrorText,
			QuickReplies: chat.ErrorReplies,
		})
	}

	return c.JSON(models.ChatResponse{
		Success:      true,
		Response:     resp.Text,
		QuickReplies: resp.QuickReplies,
		SessionID:    resp.SessionID,
	})
}
