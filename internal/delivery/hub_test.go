package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sraws-app/sraws/backend/internal/models"
)

func enriched(sender string) models.EnrichedNotification {
	return models.EnrichedNotification{
		Notification: models.Notification{
			ID:   primitive.NewObjectID(),
			Type: models.NotificationLike,
		},
		Sender: models.UserCompact{ID: 1, Username: sender},
	}
}

func TestHubRoutesToRecipientOnly(t *testing.T) {
	hub := NewHub()
	alice := hub.Subscribe(1)
	bob := hub.Subscribe(2)

	n := enriched("carol")
	hub.Publish(1, n)

	select {
	case got := <-alice.Events():
		assert.Equal(t, n.ID, got.ID)
	default:
		t.Fatal("expected a pushed event for user 1")
	}

	select {
	case <-bob.Events():
		t.Fatal("user 2 must not receive user 1's notification")
	default:
	}
}

func TestHubFansOutToAllConnections(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe(1)
	second := hub.Subscribe(1)
	require.Equal(t, 2, hub.Connections(1))

	hub.Publish(1, enriched("carol"))

	assert.Len(t, first.Events(), 1)
	assert.Len(t, second.Events(), 1)
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(1)

	// Overfill the backlog; the extra publishes are dropped, not stuck.
	for i := 0; i < subscriptionBuffer+5; i++ {
		hub.Publish(1, enriched("carol"))
	}

	assert.Len(t, sub.Events(), subscriptionBuffer)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	// No connection registered for the recipient; nothing to deliver.
	hub.Publish(42, enriched("carol"))
	assert.Equal(t, 0, hub.Connections(42))
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(1)

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Connections(1))

	_, open := <-sub.Events()
	assert.False(t, open)

	// Repeated unsubscribe is a no-op, not a double close.
	hub.Unsubscribe(sub)
}
