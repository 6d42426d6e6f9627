package form

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cateringlab/checklist/pkg/checklist"
)

// DefaultAutosaveDelay is the debounce window between the last qualifying
// edit and the background save.
const DefaultAutosaveDelay = time.Second

// PersistFunc saves a draft snapshot in the background. Implementations are
// expected to treat each call as an idempotent "set full state".
type PersistFunc func(ctx context.Context, draft *checklist.Draft) error

// Timer is the cancellable handle returned by a Clock.
type Timer interface {
	Stop() bool
}

// Clock abstracts timer creation so the scheduler can be unit-tested by
// advancing a virtual clock instead of sleeping.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Scheduler debounces background persistence. It only ever fires for drafts
// that already exist on the server: a never-persisted draft is not
// auto-created, so the first save is always an explicit user action.
// Failures are logged and swallowed; auto-save is strictly best-effort.
type Scheduler struct {
	mu        sync.Mutex
	clock     Clock
	delay     time.Duration
	persist   PersistFunc
	logger    *zap.Logger
	pending   Timer
	lastSaved time.Time
	stopped   bool
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock overrides the wall clock, typically with a virtual clock in
// tests.
func WithClock(c Clock) SchedulerOption {
	return func(s *Scheduler) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithDelay overrides the debounce window.
func WithDelay(d time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithLogger attaches a logger for swallowed failures.
func WithLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewScheduler builds a debounced auto-save scheduler around the persist
// collaborator.
func NewScheduler(persist PersistFunc, options ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		clock:   realClock{},
		delay:   DefaultAutosaveDelay,
		persist: persist,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Arm re-arms the debounce timer with a snapshot of the draft. Drafts that
// were never persisted are ignored. The snapshot's status is forced to draft
// regardless of the wizard's current step.
func (s *Scheduler) Arm(draft *checklist.Draft) {
	if draft == nil || draft.ID == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.pending != nil {
		s.pending.Stop()
	}

	snapshot := draft.Clone()
	snapshot.Status = checklist.StatusDraft
	s.pending = s.clock.AfterFunc(s.delay, func() {
		s.fire(snapshot)
	})
}

func (s *Scheduler) fire(snapshot *checklist.Draft) {
	if err := s.persist(context.Background(), snapshot); err != nil {
		s.logger.Warn("autosave failed",
			zap.Int64("checklist_id", snapshot.ID),
			zap.Error(err))
		return
	}
	s.mu.Lock()
	s.lastSaved = s.clock.Now()
	s.mu.Unlock()
}

// Stop disarms the pending timer and prevents future arming. An already
// in-flight persistence request is not cancelled; it stays fire-and-forget.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

// LastSavedAt reports when the most recent background save succeeded, for
// "saved at" UI feedback. Zero when none has.
func (s *Scheduler) LastSavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}
