package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sraws-app/sraws/backend/internal/models"
	"github.com/sraws-app/sraws/backend/internal/repositories"
)

// ChatHandler handles community channel HTTP requests
type ChatHandler struct {
	chatRepository repositories.ChatRepository
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatRepo repositories.ChatRepository) *ChatHandler {
	return &ChatHandler{chatRepository: chatRepo}
}

// RegisterChatRoutes registers community channel routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chat/messages", h.GetMessages)
	g.POST("/chat/send", h.SendMessage)
	g.POST("/chat/reply", h.ReplyToMessage)
}

// GetMessages retrieves the community channel history
func (h *ChatHandler) GetMessages(c echo.Context) error {
	messages, err := h.chatRepository.GetMessages(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage posts a new message to the community channel
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req models.SendChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message := &models.ChatMessage{
		Sender:  req.Sender,
		Message: req.Message,
	}

	if err := h.chatRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, message)
}

// ReplyToMessage appends a reply to an existing chat message
func (h *ChatHandler) ReplyToMessage(c echo.Context) error {
	var req models.ReplyChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply := models.ChatReply{
		Sender:    req.Sender,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}

	if err := h.chatRepository.AddReply(c.Request().Context(), req.MessageID, reply); err != nil {
		if err.Error() == "chat message not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Chat message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Reply added"})
}
