package handlers

import (
	"net/http"

	"github.com/anonto42/nano-link/backend/internal/middleware"
	"github.com/anonto42/nano-link/backend/internal/models"
	"github.com/anonto42/nano-link/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessagingHandler handles HTTP requests related to conversations and messages
type MessagingHandler struct {
	messaging *services.MessagingService
}

// NewMessagingHandler creates a new MessagingHandler
func NewMessagingHandler(messaging *services.MessagingService) *MessagingHandler {
	return &MessagingHandler{messaging: messaging}
}

// RegisterMessagingRoutes registers messaging routes
func (h *MessagingHandler) RegisterMessagingRoutes(g *echo.Group) {
	g.GET("/messages/conversations", h.ListConversations)
	g.POST("/messages/conversations", h.CreateConversation)
	g.GET("/messages/conversations/:id", h.ListMessages)
	g.POST("/messages/conversations/:id/messages", h.SendMessage)
	g.POST("/messages/conversations/:id/read", h.MarkRead)
}

// ListConversations lists the caller's conversations, most recently active first
func (h *MessagingHandler) ListConversations(c echo.Context) error {
	session := middleware.CurrentSession(c)

	conversations, err := h.messaging.ListConversations(c.Request().Context(), session.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch conversations")
	}
	return c.JSON(http.StatusOK, echo.Map{"conversations": conversations})
}

// CreateConversation opens a conversation with another user or returns the
// existing one
func (h *MessagingHandler) CreateConversation(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.CreateConversationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	id, exists, err := h.messaging.CreateConversation(c.Request().Context(), session.UserID, req.ParticipantID)
	if err != nil {
		return serviceError(c, err, "Failed to create conversation")
	}
	if exists {
		return c.JSON(http.StatusOK, echo.Map{"conversationId": id, "alreadyExists": true})
	}
	return c.JSON(http.StatusCreated, echo.Map{"conversationId": id})
}

// ListMessages lists the messages of a conversation, newest first
func (h *MessagingHandler) ListMessages(c echo.Context) error {
	session := middleware.CurrentSession(c)

	messages, err := h.messaging.ListMessages(c.Request().Context(), c.Param("id"), session.UserID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch messages")
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// SendMessage posts a message to a conversation the caller is part of
func (h *MessagingHandler) SendMessage(c echo.Context) error {
	session := middleware.CurrentSession(c)

	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.messaging.SendMessage(c.Request().Context(), c.Param("id"), session.UserID, req.Content)
	if err != nil {
		return serviceError(c, err, "Failed to send message")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": message})
}

// MarkRead marks the messages the caller received in a conversation as read
func (h *MessagingHandler) MarkRead(c echo.Context) error {
	session := middleware.CurrentSession(c)

	if _, err := h.messaging.MarkRead(c.Request().Context(), c.Param("id"), session.UserID); err != nil {
		return serviceError(c, err, "Failed to mark messages as read")
	}
	return success(c, http.StatusOK)
}
