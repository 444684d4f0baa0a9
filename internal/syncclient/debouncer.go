package syncclient

import (
	"sync"
	"time"
)

// Debouncer runs the most recently triggered task once delay has passed
// without another trigger. A new trigger cancels and supersedes the
// pending one.
type Debouncer struct {
	clock Clock
	delay time.Duration

	mu      sync.Mutex
	idle    *sync.Cond
	timer   Timer
	pending func()
	// gen invalidates a timer that fired while being superseded.
	gen uint64
	// running counts timer-fired tasks that have been taken but not finished.
	running int
}

// NewDebouncer creates a Debouncer with the given delay.
func NewDebouncer(clock Clock, delay time.Duration) *Debouncer {
	d := &Debouncer{clock: clock, delay: delay}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Trigger schedules task, replacing any pending task.
func (d *Debouncer) Trigger(task func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = task
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending task now and waits for a timer-fired task that
// is still running. It reports whether there was a pending task.
func (d *Debouncer) Flush() bool {
	task := d.take()
	if task != nil {
		task()
	}
	d.waitIdle()
	return task != nil
}

// Cancel drops the pending task and waits for a timer-fired task that is
// still running. It reports whether there was a pending task.
func (d *Debouncer) Cancel() bool {
	dropped := d.take() != nil
	d.waitIdle()
	return dropped
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	task := d.pending
	d.pending = nil
	d.timer = nil
	d.running++
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running--
		if d.running == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}()
	task()
}

func (d *Debouncer) waitIdle() {
	d.mu.Lock()
	for d.running > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()
}

func (d *Debouncer) take() func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	task := d.pending
	if task == nil {
		return nil
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = nil
	d.timer = nil
	return task
}
