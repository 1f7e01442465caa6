package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sraws-app/sraws/backend/internal/models"
	"github.com/sraws-app/sraws/backend/internal/repositories"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	notifier          *Notifier
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, notifier *Notifier) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		notifier:          notifier,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages/:id", h.SendMessage)
	g.GET("/messages/unread-count/:id", h.GetUnreadCount)
	g.PUT("/messages/:id/read", h.MarkMessageRead)
	g.GET("/messages/:id", h.GetMessages)
	g.GET("/conversations/:id", h.GetConversations)
}

// ConversationView is a conversation with the other participant resolved
type ConversationView struct {
	models.Conversation
	Recipient *models.UserCompact `json:"recipient,omitempty"`
}

// SendMessage sends a direct message, creating the conversation on first
// contact. Sending succeeds even when the follow-up notification cannot
// be written.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	recipientID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.userRepository.GetUserByID(uint(recipientID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Recipient not found")
	}

	ctx := c.Request().Context()
	conversation, err := h.messageRepository.FindOrCreateConversation(ctx, req.SenderID, uint(recipientID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       req.SenderID,
		RecipientID:    uint(recipientID),
		Content:        req.Content,
	}

	if err := h.messageRepository.CreateMessage(ctx, message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.messageRepository.TouchConversation(ctx, conversation.ID, time.Now()); err != nil {
		// the message is already stored; a stale conversation timestamp
		// only affects ordering
		c.Logger().Warnf("touch conversation %s: %v", conversation.ID.Hex(), err)
	}

	h.notifier.NotifyMessage(ctx, message)

	return c.JSON(http.StatusCreated, message)
}

// GetMessages retrieves the messages of a conversation, newest first
func (h *MessageHandler) GetMessages(c echo.Context) error {
	conversation, err := h.messageRepository.GetConversationByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}

	messages, err := h.messageRepository.GetMessagesByConversation(c.Request().Context(), conversation.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, messages)
}

// GetConversations retrieves a user's conversations with the other
// participant resolved, most recently active first
func (h *MessageHandler) GetConversations(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	conversations, err := h.messageRepository.GetConversationsByUser(c.Request().Context(), uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views := make([]ConversationView, len(conversations))
	userCache := make(map[uint]models.UserCompact)
	for i, conversation := range conversations {
		views[i] = ConversationView{Conversation: conversation}
		otherID := conversation.OtherRecipient(uint(userID))
		if otherID == 0 {
			continue
		}
		if compact, ok := userCache[otherID]; ok {
			views[i].Recipient = &compact
		} else if user, err := h.userRepository.GetUserByID(otherID); err == nil {
			compact := user.ToCompact()
			userCache[otherID] = compact
			views[i].Recipient = &compact
		}
	}

	return c.JSON(http.StatusOK, views)
}

// GetUnreadCount returns the unread direct-message count for a user
func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}

	count, err := h.messageRepository.CountUnreadMessages(c.Request().Context(), uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkMessageRead flags a single message as read
func (h *MessageHandler) MarkMessageRead(c echo.Context) error {
	if err := h.messageRepository.MarkMessageRead(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Message marked as read"})
}
