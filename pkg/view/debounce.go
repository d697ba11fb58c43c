package view

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to keystroke-driven queries.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer is a single-slot delayed task. Scheduling cancels any pending
// task first, so at most one execution is ever outstanding and superseded
// tasks never fire.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Schedule runs fn after the quiet period, replacing any pending task.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending task, if any. Explicit submissions and sort
// changes call this before running immediately.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
