package inbox

import (
	"context"
	"sync"
	"time"

	"github.com/sraws-app/sraws/backend/internal/models"
)

// DefaultPollInterval matches the web client's 30-second refresh.
const DefaultPollInterval = 30 * time.Second

// ListFunc fetches the recipient's current notification list.
type ListFunc func(ctx context.Context) ([]models.EnrichedNotification, error)

// Poller periodically fetches the full list and merges it into the inbox.
// It runs independently of push connectivity.
type Poller struct {
	inbox    *Inbox
	list     ListFunc
	interval time.Duration

	mu      sync.Mutex
	lastErr error
}

// NewPoller creates a Poller. A non-positive interval falls back to
// DefaultPollInterval.
func NewPoller(inbox *Inbox, list ListFunc, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{inbox: inbox, list: list, interval: interval}
}

// Run polls immediately and then on every interval tick until the context
// is cancelled
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	ns, err := p.list(ctx)

	p.mu.Lock()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		return
	}
	p.inbox.Merge(ns)
}

// Err returns the error of the most recent poll, or nil if it succeeded.
// The displayed list keeps its last good state while Err is non-nil.
func (p *Poller) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
