package syncclient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/qboard/internal/model"
)

// Advisory notices shown while the backend is unreachable.
const (
	NoticeUsingLocalData = "Cannot connect to server. Using local data."
	NoticeLocalOnly      = "Cannot sync with server. Changes saved locally only."
)

// Defaults for the push pipeline.
const (
	DefaultDebounce  = 500 * time.Millisecond
	DefaultRetries   = 2
	DefaultRetryUnit = time.Second
)

var (
	ErrEmptyQuestion   = errors.New("question text is empty")
	ErrIndexOutOfRange = errors.New("question index out of range")
)

// Option configures a Client.
type Option func(*Client)

// WithDebounce sets how long the client waits for further edits before pushing.
func WithDebounce(d time.Duration) Option {
	return func(c *Client) { c.debounceDelay = d }
}

// WithRetries sets how many times a failed push is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryUnit sets the base delay; retry k waits k times this unit.
func WithRetryUnit(d time.Duration) Option {
	return func(c *Client) { c.retryUnit = d }
}

// WithClock replaces the real clock.
func WithClock(clock Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithNoticeHandler registers a callback for advisory notice changes.
// An empty string means the notice was cleared.
func WithNoticeHandler(fn func(string)) Option {
	return func(c *Client) { c.onNotice = fn }
}

// Client owns the working QuestionSet of one session. Every mutation is
// written to the local mirror at once and pushed to the backend after a
// debounce window. The backend copy overwrites local state on bootstrap.
type Client struct {
	remote Remote
	mirror Mirror

	clock         Clock
	debounceDelay time.Duration
	retries       int
	retryUnit     time.Duration
	log           zerolog.Logger
	onNotice      func(string)

	debouncer *Debouncer

	mu    sync.Mutex
	state model.QuestionSet
	// ready is set once the initial load has finished, either way.
	ready bool
	// dirty records a mutation made before ready.
	dirty  bool
	notice string

	// pushMu keeps pushes in issue order; each one sends the state current
	// when it starts.
	pushMu   sync.Mutex
	inflight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a Client that is still bootstrapping. Call Start to seed it.
func New(remote Remote, mirror Mirror, opts ...Option) *Client {
	c := &Client{
		remote:        remote,
		mirror:        mirror,
		clock:         RealClock{},
		debounceDelay: DefaultDebounce,
		retries:       DefaultRetries,
		retryUnit:     DefaultRetryUnit,
		log:           zerolog.Nop(),
		state:         model.EmptyQuestionSet(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "sync_client").Logger()
	c.debouncer = NewDebouncer(c.clock, c.debounceDelay)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Start seeds the working state from the mirror, then replaces it with the
// backend copy. A failed load keeps the local state; it is not retried.
//
// A mutation made while Start is loading is overwritten if the load
// succeeds afterwards: the last completed operation wins. If the load fails
// the mutation is kept and pushed like any other.
func (c *Client) Start(ctx context.Context) {
	local, err := readMirror(c.mirror)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to read local mirror")
	}
	c.mu.Lock()
	if !c.dirty {
		c.state = local
	}
	c.mu.Unlock()

	remote, err := c.remote.Load(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to load from server")
		c.mu.Lock()
		c.ready = true
		dirty := c.dirty
		c.mu.Unlock()
		if !local.IsEmpty() {
			c.setNotice(NoticeUsingLocalData)
		}
		if dirty {
			c.debouncer.Trigger(c.startPush)
		}
		return
	}

	remote = remote.Normalize()
	c.mu.Lock()
	c.state = remote
	c.ready = true
	c.mu.Unlock()

	if err := writeMirror(c.mirror, remote); err != nil {
		c.log.Warn().Err(err).Msg("failed to update local mirror")
	}
	c.setNotice("")
	c.log.Debug().Int("questions", remote.Len()).Msg("loaded from server")
}

// Snapshot returns a copy of the working state.
func (c *Client) Snapshot() model.QuestionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Notice returns the current advisory notice, or "".
func (c *Client) Notice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Add appends a trimmed question, unrevealed.
func (c *Client) Add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyQuestion
	}
	return c.mutate(func(s *model.QuestionSet) error {
		s.Questions = append(s.Questions, text)
		s.Revealed = append(s.Revealed, false)
		return nil
	})
}

// Delete removes the entry at index; later entries shift down by one.
func (c *Client) Delete(index int) error {
	return c.mutate(func(s *model.QuestionSet) error {
		if index < 0 || index >= len(s.Questions) {
			return ErrIndexOutOfRange
		}
		s.Questions = append(s.Questions[:index], s.Questions[index+1:]...)
		s.Revealed = append(s.Revealed[:index], s.Revealed[index+1:]...)
		return nil
	})
}

// Clear removes every entry.
func (c *Client) Clear() error {
	return c.mutate(func(s *model.QuestionSet) error {
		*s = model.EmptyQuestionSet()
		return nil
	})
}

// Reveal marks the entry at index as revealed. Revealing is one-way.
func (c *Client) Reveal(index int) error {
	return c.mutate(func(s *model.QuestionSet) error {
		if index < 0 || index >= len(s.Revealed) {
			return ErrIndexOutOfRange
		}
		s.Revealed[index] = true
		return nil
	})
}

// mutate applies fn to a copy of the state, publishes it, mirrors it, and
// schedules a push once the session is ready.
func (c *Client) mutate(fn func(*model.QuestionSet) error) error {
	c.mu.Lock()
	next := c.state.Clone()
	if err := fn(&next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	ready := c.ready
	if !ready {
		c.dirty = true
	}
	c.mu.Unlock()

	if err := writeMirror(c.mirror, next); err != nil {
		c.log.Warn().Err(err).Msg("failed to update local mirror")
	}
	if ready {
		c.debouncer.Trigger(c.startPush)
	}
	return nil
}

// Flush sends any debounced push now and waits for pushes in flight.
func (c *Client) Flush(ctx context.Context) error {
	c.debouncer.Flush()

	done := make(chan struct{})
	go func() {
		c.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drops any pending push, aborts pushes in flight and waits for them.
func (c *Client) Close() {
	c.debouncer.Cancel()
	c.cancel()
	c.inflight.Wait()
}

func (c *Client) startPush() {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		c.push(c.ctx)
	}()
}

// push sends the current state, retrying with linearly growing delays.
func (c *Client) push(ctx context.Context) {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	payload := c.Snapshot()

	attempts := c.retries + 1
	for i := 0; i < attempts; i++ {
		err := c.remote.Save(ctx, payload)
		if err == nil {
			c.setNotice("")
			c.log.Debug().Int("questions", payload.Len()).Int("attempt", i+1).Msg("pushed to server")
			return
		}
		c.log.Warn().Err(err).
			Int("attempt", i+1).
			Int("attempts", attempts).
			Msg("failed to save to server")

		if i == attempts-1 {
			break
		}
		if err := sleep(ctx, c.clock, c.retryUnit*time.Duration(i+1)); err != nil {
			return
		}
	}
	c.setNotice(NoticeLocalOnly)
}

func (c *Client) setNotice(msg string) {
	c.mu.Lock()
	changed := c.notice != msg
	c.notice = msg
	c.mu.Unlock()

	if changed && c.onNotice != nil {
		c.onNotice(msg)
	}
}
