package inbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sraws-app/sraws/backend/internal/models"
)

func notification(t models.NotificationType, sender string, createdAt time.Time) models.EnrichedNotification {
	return models.EnrichedNotification{
		Notification: models.Notification{
			ID:        primitive.NewObjectID(),
			Type:      t,
			CreatedAt: createdAt,
		},
		Sender: models.UserCompact{ID: 1, Username: sender},
	}
}

func TestInboxDeduplicatesAcrossPaths(t *testing.T) {
	in := New()
	n := notification(models.NotificationLike, "ayesha", time.Now())

	// Same record arrives via push and then via a poll.
	in.Push(n)
	in.Merge([]models.EnrichedNotification{n})

	assert.Equal(t, 1, in.Len())
}

func TestInboxSnapshotNewestFirst(t *testing.T) {
	in := New()
	now := time.Now()
	oldest := notification(models.NotificationLike, "a", now.Add(-2*time.Hour))
	middle := notification(models.NotificationComment, "b", now.Add(-time.Hour))
	newest := notification(models.NotificationMessage, "c", now)

	// Arrival order deliberately scrambled.
	in.Push(middle)
	in.Push(newest)
	in.Push(oldest)

	snap := in.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, newest.ID, snap[0].ID)
	assert.Equal(t, middle.ID, snap[1].ID)
	assert.Equal(t, oldest.ID, snap[2].ID)
}

func TestInboxReadNeverReverts(t *testing.T) {
	in := New()
	n := notification(models.NotificationLike, "ayesha", time.Now())
	in.Push(n)
	in.MarkRead(n.ID.Hex())

	// A stale poll delivers the same record still unread.
	in.Merge([]models.EnrichedNotification{n})

	assert.Equal(t, 0, in.UnreadCount())
}

func TestInboxMarkAllRead(t *testing.T) {
	in := New()
	in.Push(notification(models.NotificationLike, "a", time.Now()))
	in.Push(notification(models.NotificationComment, "b", time.Now()))
	require.Equal(t, 2, in.UnreadCount())

	in.MarkAllRead()

	assert.Equal(t, 0, in.UnreadCount())
	assert.Equal(t, 2, in.Len())
}

func TestInboxMarkReadUnknownID(t *testing.T) {
	in := New()
	in.Push(notification(models.NotificationLike, "a", time.Now()))

	in.MarkRead(primitive.NewObjectID().Hex())

	assert.Equal(t, 1, in.UnreadCount())
}

func TestFilterByType(t *testing.T) {
	now := time.Now()
	ns := []models.EnrichedNotification{
		notification(models.NotificationLike, "a", now),
		notification(models.NotificationComment, "b", now),
		notification(models.NotificationMessage, "c", now),
	}

	out := Filter{Type: "comment"}.Apply(ns, now)
	require.Len(t, out, 1)
	assert.Equal(t, models.NotificationComment, out[0].Type)

	assert.Len(t, Filter{Type: "all"}.Apply(ns, now), 3)
	assert.Len(t, Filter{}.Apply(ns, now), 3)
}

func TestFilterUnread(t *testing.T) {
	now := time.Now()
	read := notification(models.NotificationLike, "a", now)
	read.Read = true
	unread := notification(models.NotificationComment, "b", now)

	out := Filter{Type: "unread"}.Apply([]models.EnrichedNotification{read, unread}, now)
	require.Len(t, out, 1)
	assert.Equal(t, unread.ID, out[0].ID)
}

func TestFilterWindow(t *testing.T) {
	now := time.Now()
	recent := notification(models.NotificationLike, "a", now.Add(-2*time.Hour))
	stale := notification(models.NotificationLike, "b", now.Add(-40*time.Hour))

	out := Filter{Window: "24h"}.Apply([]models.EnrichedNotification{recent, stale}, now)
	require.Len(t, out, 1)
	assert.Equal(t, recent.ID, out[0].ID)

	assert.Len(t, Filter{Window: "week"}.Apply([]models.EnrichedNotification{recent, stale}, now), 2)
	assert.Len(t, Filter{Window: "all"}.Apply([]models.EnrichedNotification{recent, stale}, now), 2)
}

func TestFilterSearchOverDescription(t *testing.T) {
	now := time.Now()
	ns := []models.EnrichedNotification{
		notification(models.NotificationLike, "ayesha", now),
		notification(models.NotificationComment, "marco", now),
	}

	// "liked" appears only in the derived like description.
	out := Filter{Search: "LIKED"}.Apply(ns, now)
	require.Len(t, out, 1)
	assert.Equal(t, models.NotificationLike, out[0].Type)

	// Sender usernames are part of the description too.
	out = Filter{Search: "marco"}.Apply(ns, now)
	require.Len(t, out, 1)
	assert.Equal(t, models.NotificationComment, out[0].Type)
}
