package syncclient

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/stemsi/qboard/internal/model"
)

// fakeClock fires callbacks only when Advance moves time past them.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, running due callbacks in order.
// Callbacks run on the caller's goroutine.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && t.at <= target {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			c.now = target
			c.mu.Unlock()
			return
		}
		sort.Slice(due, func(i, j int) bool {
			if due[i].at != due[j].at {
				return due[i].at < due[j].at
			}
			return due[i].seq < due[j].seq
		})
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()

		next.f()
	}
}

// Pending counts scheduled callbacks that have not run or been stopped.
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

var errUnreachable = errors.New("connection refused")

// fakeRemote records saves and answers from scripted errors.
type fakeRemote struct {
	mu      sync.Mutex
	stored  model.QuestionSet
	loadErr error
	saveErr error
	// failSaves makes the next n saves fail with errUnreachable.
	failSaves int
	loads     int
	saves     []model.QuestionSet
	attempts  int
	// loadGate, if set, blocks Load until closed.
	loadGate chan struct{}
}

func newFakeRemote(set model.QuestionSet) *fakeRemote {
	return &fakeRemote{stored: set.Clone()}
}

func (r *fakeRemote) Load(ctx context.Context) (model.QuestionSet, error) {
	if r.loadGate != nil {
		select {
		case <-r.loadGate:
		case <-ctx.Done():
			return model.QuestionSet{}, ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	if r.loadErr != nil {
		return model.QuestionSet{}, r.loadErr
	}
	return r.stored.Clone(), nil
}

func (r *fakeRemote) Save(_ context.Context, set model.QuestionSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
	if r.saveErr != nil {
		return r.saveErr
	}
	if r.failSaves > 0 {
		r.failSaves--
		return errUnreachable
	}
	r.stored = set.Clone()
	r.saves = append(r.saves, set.Clone())
	return nil
}

func (r *fakeRemote) Saves() []model.QuestionSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.QuestionSet, len(r.saves))
	copy(out, r.saves)
	return out
}

func (r *fakeRemote) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func (r *fakeRemote) Stored() model.QuestionSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored.Clone()
}

func hasPending(d *Debouncer) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func isReady(c *Client) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}
