package delivery

import (
	"sync"

	"github.com/sraws-app/sraws/backend/internal/models"
)

// subscriptionBuffer is the per-connection event backlog. A connection that
// falls further behind starts missing pushes; the polling path picks those
// records up on the next cycle.
const subscriptionBuffer = 16

// Subscription is one live client connection registered with the Hub.
type Subscription struct {
	userID uint
	events chan models.EnrichedNotification
}

// Events returns the channel of notifications pushed to this subscription.
// It is closed when the subscription is removed from the hub.
func (s *Subscription) Events() <-chan models.EnrichedNotification {
	return s.events
}

// Hub is the push-channel connection registry, keyed by recipient user ID.
// Subscriptions are added on connect and removed on disconnect; publishing
// never blocks on a slow consumer.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[*Subscription]struct{}
}

// NewHub creates an empty connection registry
func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[*Subscription]struct{})}
}

// Subscribe registers a new connection for the given user
func (h *Hub) Subscribe(userID uint) *Subscription {
	sub := &Subscription{
		userID: userID,
		events: make(chan models.EnrichedNotification, subscriptionBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a connection and closes its event channel.
// Safe to call more than once.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.subs[sub.userID]
	if !ok {
		return
	}
	if _, ok := conns[sub]; !ok {
		return
	}
	delete(conns, sub)
	if len(conns) == 0 {
		delete(h.subs, sub.userID)
	}
	close(sub.events)
}

// Publish delivers a notification to every live connection of the recipient.
// Connections with a full backlog are skipped.
func (h *Hub) Publish(recipientID uint, notification models.EnrichedNotification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[recipientID] {
		select {
		case sub.events <- notification:
		default:
		}
	}
}

// Connections reports how many connections a user currently has
func (h *Hub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
