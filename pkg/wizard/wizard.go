// Package wizard orchestrates one stepped intake-form session: ordered
// steps, validation-gated navigation, and the two explicit terminal actions,
// save-as-draft and save-as-complete.
package wizard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cateringlab/checklist/pkg/checklist"
	"github.com/cateringlab/checklist/pkg/form"
	"github.com/cateringlab/checklist/pkg/recent"
)

// Notice is a transient, user-facing message posted by a rejected action.
// Notices are UI feedback, not errors: a rejected Next leaves the session
// exactly where it was.
type Notice string

const (
	// NoticeFillRequired is shown when navigation is blocked by the current
	// step's required fields.
	NoticeFillRequired Notice = "fill in the required fields"
	// NoticeFixFormErrors is shown when the complete save is blocked by
	// validation anywhere in the form.
	NoticeFixFormErrors Notice = "fix the form errors"
	// NoticeSaveFailed is shown when the persistence collaborator rejects an
	// explicit save; the draft stays unmodified in memory for retry.
	NoticeSaveFailed Notice = "saving failed, try again"
)

// Persister is the external persistence collaborator. Create is called only
// from explicit save actions; Update serves both explicit saves and
// auto-save.
type Persister interface {
	Create(ctx context.Context, draft *checklist.Draft) (int64, error)
	Update(ctx context.Context, id int64, draft *checklist.Draft) error
	Get(ctx context.Context, id int64) (*checklist.Draft, error)
}

// WireCheck validates an outgoing payload against the backend contract
// before an explicit save. Optional.
type WireCheck func(draft *checklist.Draft) error

// Controller is the state machine over {current step, plan}. Both variants
// run through the same controller; the plan supplies the step set and start
// index.
type Controller struct {
	store     *form.Store
	plan      checklist.Plan
	persister Persister
	scheduler *form.Scheduler
	recents   recent.Cache
	wireCheck WireCheck
	logger    *zap.Logger

	current int
	notice  Notice
	done    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler lets the controller stop background saves once the session
// completes or is cancelled.
func WithScheduler(s *form.Scheduler) Option {
	return func(c *Controller) {
		c.scheduler = s
	}
}

// WithRecentFormats injects the client-local recent-formats slot.
func WithRecentFormats(cache recent.Cache) Option {
	return func(c *Controller) {
		if cache != nil {
			c.recents = cache
		}
	}
}

// WithWireCheck installs contract validation for explicit saves.
func WithWireCheck(fn WireCheck) Option {
	return func(c *Controller) {
		c.wireCheck = fn
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a wizard session over the store's draft, positioned at the
// plan's first step.
func New(store *form.Store, persister Persister, options ...Option) (*Controller, error) {
	if store == nil {
		return nil, errors.New("wizard: store is required")
	}
	if persister == nil {
		return nil, errors.New("wizard: persister is required")
	}

	c := &Controller{
		store:     store,
		plan:      store.Plan(),
		persister: persister,
		recents:   recent.NewMemory(),
		logger:    zap.NewNop(),
	}
	c.current = c.plan.First()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Current returns the active step index.
func (c *Controller) Current() int {
	return c.current
}

// Step returns the active step descriptor.
func (c *Controller) Step() checklist.Step {
	step, _ := c.plan.StepAt(c.current)
	return step
}

// Notice returns the most recent transient notice and clears it.
func (c *Controller) Notice() Notice {
	n := c.notice
	c.notice = ""
	return n
}

// Done reports whether a complete save has succeeded; the caller tears the
// wizard down on completion.
func (c *Controller) Done() bool {
	return c.done
}

// Next advances one step when the current step's subset validates, clamped
// to the last step. A rejected advance posts NoticeFillRequired and stays
// put; the error map already annotates the fields in place.
func (c *Controller) Next() bool {
	if !c.store.ValidateTab(c.current) {
		c.notice = NoticeFillRequired
		return false
	}
	if c.current < c.plan.Last() {
		c.current++
	}
	return true
}

// Prev retreats one step, clamped to the first. Backward navigation is never
// validation-gated.
func (c *Controller) Prev() {
	if c.current > c.plan.First() {
		c.current--
	}
}

// JumpTo moves directly to a step. Backward jumps are always free; a forward
// jump requires every step from the first up to the target to validate, so a
// tab click can never skip past an invalid earlier step.
func (c *Controller) JumpTo(target int) bool {
	if _, ok := c.plan.StepAt(target); !ok {
		return false
	}
	if target <= c.current {
		c.current = target
		return true
	}
	for i := c.plan.First(); i < target; i++ {
		if !c.store.ValidateTab(i) {
			c.notice = NoticeFillRequired
			return false
		}
	}
	c.current = target
	return true
}

// SelectFormat records an event-format choice: the draft's serialized
// sequence gains the entry and the recent-formats slot is updated. Cache
// failures are logged and ignored; the selection itself always lands.
func (c *Controller) SelectFormat(entry form.EventFormatEntry) {
	c.store.AppendEventFormat(entry)
	if _, err := recent.Push(c.recents, entry.Format); err != nil {
		c.logger.Warn("recent formats cache update failed", zap.Error(err))
	}
}

// RecentFormats returns the last few distinct formats staff picked, most
// recent first. Read failures degrade to an empty list.
func (c *Controller) RecentFormats() []string {
	formats, err := c.recents.Load()
	if err != nil {
		c.logger.Warn("recent formats cache read failed", zap.Error(err))
		return nil
	}
	return formats
}

// SaveDraft persists the current record with status forced to draft,
// regardless of completeness or current step. Always allowed.
func (c *Controller) SaveDraft(ctx context.Context) error {
	return c.save(ctx, checklist.StatusDraft)
}

// SaveComplete requires the full form to validate, then persists with the
// in-progress status and signals completion. On validation failure it posts
// NoticeFixFormErrors and persists nothing.
func (c *Controller) SaveComplete(ctx context.Context) (bool, error) {
	if !c.store.Validate() {
		c.notice = NoticeFixFormErrors
		return false, nil
	}
	if err := c.save(ctx, checklist.StatusInProgress); err != nil {
		return false, err
	}
	c.done = true
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
	return true, nil
}

// Cancel stops future auto-save timers; an in-flight background save is left
// to finish on its own. The draft is simply discarded by the caller.
func (c *Controller) Cancel() {
	if c.scheduler != nil {
		c.scheduler.Stop()
	}
}

func (c *Controller) save(ctx context.Context, status checklist.Status) error {
	draft := c.store.Draft()

	snapshot := draft.Clone()
	snapshot.Status = status

	if c.wireCheck != nil {
		if err := c.wireCheck(snapshot); err != nil {
			c.notice = NoticeSaveFailed
			return fmt.Errorf("wizard: payload rejected by contract: %w", err)
		}
	}

	if snapshot.ID == 0 {
		id, err := c.persister.Create(ctx, snapshot)
		if err != nil {
			c.notice = NoticeSaveFailed
			c.logger.Warn("create failed", zap.Error(err))
			return err
		}
		draft.ID = id
	} else {
		if err := c.persister.Update(ctx, snapshot.ID, snapshot); err != nil {
			c.notice = NoticeSaveFailed
			c.logger.Warn("update failed", zap.Int64("checklist_id", snapshot.ID), zap.Error(err))
			return err
		}
	}

	draft.Status = status
	return nil
}
