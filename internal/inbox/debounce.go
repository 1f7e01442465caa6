package inbox

import (
	"sync"
	"time"
)

// Debouncer schedules a delayed action when the notification view loses
// focus and cancels it if focus returns before the delay elapses. Used to
// drive the deferred mark-all-read. The debounce is best-effort: rapid
// focus changes can race with a firing timer.
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	action func()
	timer  *time.Timer
}

// NewDebouncer creates a Debouncer that runs action delay after a Blur
// that is not cancelled by a Focus
func NewDebouncer(delay time.Duration, action func()) *Debouncer {
	return &Debouncer{delay: delay, action: action}
}

// Blur schedules the action. A pending schedule is reset, not stacked.
func (d *Debouncer) Blur() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Focus cancels a pending schedule, if any
func (d *Debouncer) Focus() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether an action is currently scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()
	d.action()
}
