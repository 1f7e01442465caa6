package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotificationTypeValid(t *testing.T) {
	assert.True(t, NotificationLike.Valid())
	assert.True(t, NotificationComment.Valid())
	assert.True(t, NotificationMessage.Valid())
	assert.False(t, NotificationType("follow").Valid())
	assert.False(t, NotificationType("").Valid())
}

func TestNotificationText(t *testing.T) {
	tests := []struct {
		name     string
		typ      NotificationType
		username string
		want     string
	}{
		{"like", NotificationLike, "ayesha", "ayesha liked your post"},
		{"comment", NotificationComment, "marco", "marco commented on your post"},
		{"message", NotificationMessage, "li", "You received a message from li"},
		{"unknown sender", NotificationLike, "", "Unknown user liked your post"},
		{"unknown type", NotificationType("follow"), "ayesha", "You have a new notification"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NotificationText(tt.typ, tt.username))
		})
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -1), WindowStart("24h", now))
	assert.Equal(t, now.AddDate(0, 0, -7), WindowStart("week", now))
	assert.Equal(t, now.AddDate(0, -1, 0), WindowStart("month", now))
	assert.True(t, WindowStart("all", now).IsZero())
	assert.True(t, WindowStart("", now).IsZero())
	assert.True(t, WindowStart("fortnight", now).IsZero())
}

func TestGroupByDate(t *testing.T) {
	day := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	ns := []EnrichedNotification{
		{Notification: Notification{ID: primitive.NewObjectID(), CreatedAt: day.Add(3 * time.Hour)}},
		{Notification: Notification{ID: primitive.NewObjectID(), CreatedAt: day}},
		{Notification: Notification{ID: primitive.NewObjectID(), CreatedAt: day.AddDate(0, 0, -1)}},
	}

	groups := GroupByDate(ns, time.UTC)

	require.Len(t, groups, 2)
	assert.Equal(t, "Fri Mar 15 2024", groups[0].Date)
	assert.Len(t, groups[0].Notifications, 2)
	assert.Equal(t, "Thu Mar 14 2024", groups[1].Date)
	assert.Len(t, groups[1].Notifications, 1)

	// Order within a group follows input order.
	assert.Equal(t, ns[0].ID, groups[0].Notifications[0].ID)
	assert.Equal(t, ns[1].ID, groups[0].Notifications[1].ID)
}

func TestGroupByDateEmpty(t *testing.T) {
	assert.Empty(t, GroupByDate(nil, time.UTC))
}
