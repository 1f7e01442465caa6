// Package inbox models the client side of notification delivery: the polling
// and push paths both feed a single sink de-duplicated by notification ID.
package inbox

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sraws-app/sraws/backend/internal/models"
)

// Inbox merges both delivery paths into one list. A record arriving twice
// (once per path, in either order) is stored once; the read flag only ever
// moves from false to true.
type Inbox struct {
	mu   sync.Mutex
	byID map[string]models.EnrichedNotification
}

// New creates an empty Inbox
func New() *Inbox {
	return &Inbox{byID: make(map[string]models.EnrichedNotification)}
}

func (in *Inbox) add(n models.EnrichedNotification) {
	id := n.ID.Hex()
	if existing, ok := in.byID[id]; ok {
		// read never reverts, whichever path delivered last
		if existing.Read {
			n.Read = true
		}
	}
	in.byID[id] = n
}

// Merge folds a poll result into the inbox
func (in *Inbox) Merge(ns []models.EnrichedNotification) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, n := range ns {
		in.add(n)
	}
}

// Push folds a single pushed record into the inbox
func (in *Inbox) Push(n models.EnrichedNotification) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.add(n)
}

// MarkRead flags one record as read locally. Unknown IDs are a no-op.
func (in *Inbox) MarkRead(id string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if n, ok := in.byID[id]; ok {
		n.Read = true
		in.byID[id] = n
	}
}

// MarkAllRead flags every record as read locally
func (in *Inbox) MarkAllRead() {
	in.mu.Lock()
	defer in.mu.Unlock()
	for id, n := range in.byID {
		n.Read = true
		in.byID[id] = n
	}
}

// Len reports how many distinct notifications the inbox holds
func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.byID)
}

// UnreadCount reports how many notifications are unread
func (in *Inbox) UnreadCount() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	count := 0
	for _, n := range in.byID {
		if !n.Read {
			count++
		}
	}
	return count
}

// Snapshot returns the merged list newest first, regardless of which path
// delivered each record or in what order
func (in *Inbox) Snapshot() []models.EnrichedNotification {
	in.mu.Lock()
	ns := make([]models.EnrichedNotification, 0, len(in.byID))
	for _, n := range in.byID {
		ns = append(ns, n)
	}
	in.mu.Unlock()

	sort.Slice(ns, func(i, j int) bool {
		if !ns[i].CreatedAt.Equal(ns[j].CreatedAt) {
			return ns[i].CreatedAt.After(ns[j].CreatedAt)
		}
		return ns[i].ID.Hex() > ns[j].ID.Hex()
	})
	return ns
}

// Filter narrows a displayed notification list. Type takes a notification
// type, "all" or "unread"; Window is one of "24h", "week", "month" or "all";
// Search matches case-insensitively against the derived description.
type Filter struct {
	Type   string
	Window string
	Search string
}

// Apply returns the notifications matching the filter, preserving order
func (f Filter) Apply(ns []models.EnrichedNotification, now time.Time) []models.EnrichedNotification {
	start := models.WindowStart(f.Window, now)
	search := strings.ToLower(f.Search)

	out := make([]models.EnrichedNotification, 0, len(ns))
	for _, n := range ns {
		switch f.Type {
		case "", "all":
		case "unread":
			if n.Read {
				continue
			}
		default:
			if string(n.Type) != f.Type {
				continue
			}
		}
		if !start.IsZero() && n.CreatedAt.Before(start) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(n.Text()), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}
