package combat

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a clock that only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a ManualClock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current virtual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// ErrAlreadyPending is returned when a key already has a pending task.
var ErrAlreadyPending = errors.New("combat: task already pending")

type task struct {
	key   string
	dueAt time.Time
	gen   uint64
	seq   uint64
	fn    func()
}

// Scheduler runs keyed delayed tasks when ticked. It replaces free-running
// timers: nothing fires outside Tick, and Reset invalidates everything pending.
//
// Invariant: at most one task is pending per key.
// Invariant: a task scheduled under an older generation never runs.
type Scheduler struct {
	mu         sync.Mutex
	clock      Clock
	generation uint64
	seq        uint64
	pending    map[string]task
	logger     *zap.Logger
}

// NewScheduler returns an empty Scheduler reading time from clock.
//
// Precondition: clock must be non-nil.
func NewScheduler(clock Clock, logger *zap.Logger) *Scheduler {
	if clock == nil {
		panic("combat: NewScheduler requires a non-nil clock")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{clock: clock, pending: make(map[string]task), logger: logger}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock { return s.clock }

// Schedule queues fn to run on the first Tick at or after now+delay.
//
// Precondition: fn must be non-nil; delay >= 0.
// Postcondition: returns ErrAlreadyPending and changes nothing if key is pending.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) error {
	if fn == nil {
		return fmt.Errorf("combat: Schedule %q: fn must not be nil", key)
	}
	if delay < 0 {
		delay = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[key]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyPending, key)
	}
	s.seq++
	s.pending[key] = task{key: key, dueAt: s.clock.Now().Add(delay), gen: s.generation, seq: s.seq, fn: fn}
	s.logger.Debug("task scheduled",
		zap.String("key", key),
		zap.Duration("delay", delay),
		zap.Uint64("generation", s.generation),
	)
	return nil
}

// Pending reports whether key has a queued task.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Len returns the number of queued tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Cancel drops the task queued under key and reports whether one existed.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	delete(s.pending, key)
	return ok
}

// Reset drops every pending task and starts a new generation.
//
// Postcondition: returns the new generation.
func (s *Scheduler) Reset() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	dropped := len(s.pending)
	s.pending = make(map[string]task)
	s.logger.Debug("scheduler reset", zap.Uint64("generation", s.generation), zap.Int("dropped", dropped))
	return s.generation
}

// Generation returns the current generation.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// NextDue returns the earliest due time among pending tasks.
func (s *Scheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var next time.Time
	found := false
	for _, t := range s.pending {
		if !found || t.dueAt.Before(next) {
			next, found = t.dueAt, true
		}
	}
	return next, found
}

// Tick runs every task due at or before now, earliest first, and returns how
// many ran. Tasks scheduled while ticking wait for the next Tick.
func (s *Scheduler) Tick(now time.Time) int {
	s.mu.Lock()
	var due []task
	for key, t := range s.pending {
		if !t.dueAt.After(now) {
			due = append(due, t)
			delete(s.pending, key)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if !due[i].dueAt.Equal(due[j].dueAt) {
			return due[i].dueAt.Before(due[j].dueAt)
		}
		return due[i].seq < due[j].seq
	})

	ran := 0
	for _, t := range due {
		if t.gen != s.Generation() {
			s.logger.Debug("stale task dropped", zap.String("key", t.key), zap.Uint64("generation", t.gen))
			continue
		}
		t.fn()
		ran++
	}
	return ran
}
