package handlers

import (
	"context"
	"log"

	"github.com/sraws-app/sraws/backend/internal/models"
	"github.com/sraws-app/sraws/backend/internal/repositories"
)

// Publisher pushes freshly created notifications to connected clients.
// Satisfied by delivery.Hub.
type Publisher interface {
	Publish(recipientID uint, notification models.EnrichedNotification)
}

// Notifier creates notifications for content actions. Self-actions are
// suppressed, duplicates are dropped best-effort, and every failure is
// logged and swallowed so the triggering action never fails on its account.
type Notifier struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	publisher              Publisher
}

// NewNotifier creates a new Notifier
func NewNotifier(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, publisher Publisher) *Notifier {
	return &Notifier{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		publisher:              publisher,
	}
}

// NotifyLike notifies a post's owner that someone liked the post
func (n *Notifier) NotifyLike(ctx context.Context, senderID uint, post *models.Post) {
	notification := &models.Notification{
		Type:        models.NotificationLike,
		SenderID:    senderID,
		RecipientID: post.PosterID,
		PostID:      &post.ID,
	}
	n.deliver(ctx, notification, func(e *models.EnrichedNotification) {
		e.Post = post
	})
}

// NotifyComment notifies a post's owner that someone commented on the post
func (n *Notifier) NotifyComment(ctx context.Context, senderID uint, post *models.Post, comment *models.Comment) {
	notification := &models.Notification{
		Type:        models.NotificationComment,
		SenderID:    senderID,
		RecipientID: post.PosterID,
		PostID:      &post.ID,
		CommentID:   &comment.ID,
	}
	n.deliver(ctx, notification, func(e *models.EnrichedNotification) {
		e.Post = post
		e.Comment = comment
	})
}

// NotifyMessage notifies a user that someone sent them a direct message.
// Keyed by the message ID, so every message produces its own notification.
func (n *Notifier) NotifyMessage(ctx context.Context, message *models.Message) {
	notification := &models.Notification{
		Type:        models.NotificationMessage,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		MessageID:   &message.ID,
	}
	n.deliver(ctx, notification, func(e *models.EnrichedNotification) {
		e.Message = message
	})
}

func (n *Notifier) deliver(ctx context.Context, notification *models.Notification, attach func(*models.EnrichedNotification)) {
	if notification.SenderID == notification.RecipientID {
		return
	}

	existing, err := n.notificationRepository.FindExisting(ctx, notification)
	if err != nil {
		log.Printf("Error checking for existing notification: %v", err)
		return
	}
	if existing != nil {
		return
	}

	if err := n.notificationRepository.CreateNotification(ctx, notification); err != nil {
		log.Printf("Error creating notification: %v", err)
		return
	}

	enriched := models.EnrichedNotification{Notification: *notification}
	if sender, err := n.userRepository.GetUserByID(notification.SenderID); err == nil {
		enriched.Sender = sender.ToCompact()
	}
	if attach != nil {
		attach(&enriched)
	}

	// Push is fire-and-forget; a client no one is listening for simply
	// picks the record up on its next poll.
	n.publisher.Publish(notification.RecipientID, enriched)
}
