package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sraws-app/sraws/backend/internal/models"
	"github.com/sraws-app/sraws/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	postRepository         repositories.PostRepository
	commentRepository      repositories.CommentRepository
	messageRepository      repositories.MessageRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	messageRepo repositories.MessageRepository,
) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		postRepository:         postRepo,
		commentRepository:      commentRepo,
		messageRepository:      messageRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/:id", h.GetNotifications)
	g.GET("/notifications/:id/grouped", h.GetGroupedNotifications)
	g.GET("/notifications/:id/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/mark-all-read/:id", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// enrichNotifications resolves sender and content references for display.
// Lookups that fail leave the reference unresolved rather than failing the
// whole listing.
func (h *NotificationHandler) enrichNotifications(c echo.Context, notifications []models.Notification) []models.EnrichedNotification {
	ctx := c.Request().Context()
	enriched := make([]models.EnrichedNotification, len(notifications))
	userCache := make(map[uint]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = models.EnrichedNotification{Notification: n}

		if sender, ok := userCache[n.SenderID]; ok {
			enriched[i].Sender = sender
		} else if user, err := h.userRepository.GetUserByID(n.SenderID); err == nil {
			compact := user.ToCompact()
			userCache[n.SenderID] = compact
			enriched[i].Sender = compact
		}

		if n.PostID != nil {
			if post, err := h.postRepository.GetPostByID(ctx, n.PostID.Hex()); err == nil {
				enriched[i].Post = post
			}
		}
		if n.CommentID != nil {
			if comment, err := h.commentRepository.GetCommentByID(ctx, n.CommentID.Hex()); err == nil {
				enriched[i].Comment = comment
			}
		}
		if n.MessageID != nil {
			if message, err := h.messageRepository.GetMessageByID(ctx, n.MessageID.Hex()); err == nil {
				enriched[i].Message = message
			}
		}
	}
	return enriched
}

func (h *NotificationHandler) listForRecipient(c echo.Context) ([]models.EnrichedNotification, error) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}

	filter := repositories.NotificationFilter{
		Type:  c.QueryParam("type"),
		Since: models.WindowStart(c.QueryParam("window"), time.Now()),
	}

	notifications, err := h.notificationRepository.GetByRecipient(c.Request().Context(), uint(userID), filter)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	enriched := h.enrichNotifications(c, notifications)

	if q := strings.ToLower(c.QueryParam("q")); q != "" {
		matched := make([]models.EnrichedNotification, 0, len(enriched))
		for _, n := range enriched {
			if strings.Contains(strings.ToLower(n.Text()), q) {
				matched = append(matched, n)
			}
		}
		enriched = matched
	}
	return enriched, nil
}

// GetNotifications lists a recipient's notifications newest first, with
// optional type, window and q (search) query filters
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	enriched, err := h.listForRecipient(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enriched)
}

// GetGroupedNotifications lists a recipient's notifications bucketed by
// calendar date, newest date first
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	enriched, err := h.listForRecipient(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.GroupByDate(enriched, time.Local))
}

// GetUnreadCount returns the unread notification count for a user
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}

	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a single notification as read. Absent or already-read
// records are treated as success.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	notifID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), notifID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

// MarkAllAsRead marks all of a user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	}

	if err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), uint(userID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
