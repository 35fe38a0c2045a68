package view

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiescence window for search input.
const DefaultSearchDebounce = 300 * time.Millisecond

// Debouncer delivers the last value passed to Trigger once no new value has
// arrived for the wait duration. Each Trigger discards the pending value and
// restarts the window.
type Debouncer struct {
	wait time.Duration
	fire func(string)

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	seq     uint64
}

func NewDebouncer(wait time.Duration, fire func(string)) *Debouncer {
	if wait <= 0 {
		wait = DefaultSearchDebounce
	}
	return &Debouncer{wait: wait, fire: fire}
}

func (d *Debouncer) Wait() time.Duration { return d.wait }

func (d *Debouncer) Trigger(v string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = v
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() { d.onTimer(seq) })
}

// Stop discards any pending value.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending returns the value waiting to be delivered, if any.
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return "", false
	}
	return d.pending, true
}

func (d *Debouncer) onTimer(seq uint64) {
	d.mu.Lock()
	// A timer that fired just as it was replaced must not deliver.
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.timer = nil
	d.mu.Unlock()

	if d.fire != nil {
		d.fire(v)
	}
}
