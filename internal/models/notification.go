package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType is the closed set of actions that produce a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationMessage NotificationType = "message"
)

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationMessage:
		return true
	}
	return false
}

// Notification represents a user notification (MongoDB). Exactly the content
// reference relevant to Type is expected to be populated; this is not
// enforced by the storage layer.
type Notification struct {
	ID          primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Type        NotificationType    `json:"type" bson:"type"`
	SenderID    uint                `json:"sender_id" bson:"sender_id"`
	RecipientID uint                `json:"recipient_id" bson:"recipient_id"`
	PostID      *primitive.ObjectID `json:"post_id,omitempty" bson:"post_id,omitempty"`
	CommentID   *primitive.ObjectID `json:"comment_id,omitempty" bson:"comment_id,omitempty"`
	MessageID   *primitive.ObjectID `json:"message_id,omitempty" bson:"message_id,omitempty"`
	Read        bool                `json:"read" bson:"read"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
}

// EnrichedNotification is the client-facing notification shape: the stored
// record resolved with enough of the referenced sender and content to render
// a description. The push channel carries the same shape as the list endpoint.
type EnrichedNotification struct {
	Notification
	Sender  UserCompact `json:"sender"`
	Post    *Post       `json:"post,omitempty"`
	Comment *Comment    `json:"comment,omitempty"`
	Message *Message    `json:"message,omitempty"`
}

// Text derives the human-readable description shown for the notification.
func (n EnrichedNotification) Text() string {
	return NotificationText(n.Type, n.Sender.Username)
}

// NotificationText derives the display description for a notification type
// and sender username.
func NotificationText(t NotificationType, senderUsername string) string {
	if senderUsername == "" {
		senderUsername = "Unknown user"
	}
	switch t {
	case NotificationLike:
		return fmt.Sprintf("%s liked your post", senderUsername)
	case NotificationComment:
		return fmt.Sprintf("%s commented on your post", senderUsername)
	case NotificationMessage:
		return fmt.Sprintf("You received a message from %s", senderUsername)
	default:
		return "You have a new notification"
	}
}

// WindowStart maps a time-window filter name to its inclusive start time.
// Unknown names and "all" mean no lower bound (the zero time).
func WindowStart(window string, now time.Time) time.Time {
	switch window {
	case "24h":
		return now.AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// NotificationGroup is one calendar day worth of notifications for display.
type NotificationGroup struct {
	Date          string                 `json:"date"`
	Notifications []EnrichedNotification `json:"notifications"`
}

// GroupByDate buckets notifications by the calendar date of CreatedAt in the
// given location. Input order is preserved, so with a newest-first input the
// groups come out newest date first.
func GroupByDate(ns []EnrichedNotification, loc *time.Location) []NotificationGroup {
	if loc == nil {
		loc = time.Local
	}
	var groups []NotificationGroup
	index := make(map[string]int)
	for _, n := range ns {
		date := n.CreatedAt.In(loc).Format("Mon Jan 02 2006")
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, NotificationGroup{Date: date})
		}
		groups[i].Notifications = append(groups[i].Notifications, n)
	}
	return groups
}
