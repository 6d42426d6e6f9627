// Package form holds the single source of truth for one in-progress intake
// form: the draft record, its field-level validation errors, and the
// debounced background persistence that shadows explicit saves.
package form

import (
	"fmt"

	"github.com/cateringlab/checklist/pkg/checklist"
	"github.com/cateringlab/checklist/pkg/codec"
)

// Normalizer rewrites a field value on its way into the draft, e.g. phone
// masking. Normalizers must be total: bad input comes back reshaped, never
// rejected.
type Normalizer func(value any) any

// Store owns one draft record and its validation error map. A field absent
// from the error map is currently valid; any entry blocks navigation past the
// step that owns it.
type Store struct {
	draft       *checklist.Draft
	plan        checklist.Plan
	errors      map[string]string
	normalizers map[string]Normalizer
	scheduler   *Scheduler
}

// StoreOption configures a Store at construction.
type StoreOption func(*Store)

// WithScheduler attaches the auto-save scheduler re-armed by qualifying
// updates.
func WithScheduler(s *Scheduler) StoreOption {
	return func(st *Store) {
		st.scheduler = s
	}
}

// WithNormalizer registers or replaces the normalizer for a field.
func WithNormalizer(field string, fn Normalizer) StoreOption {
	return func(st *Store) {
		if fn != nil {
			st.normalizers[field] = fn
		}
	}
}

// NewStore wraps a draft in a store using the step plan of the draft's
// variant.
func NewStore(draft *checklist.Draft, options ...StoreOption) (*Store, error) {
	if draft == nil {
		return nil, fmt.Errorf("form: draft is required")
	}
	plan, err := checklist.PlanFor(draft.Type)
	if err != nil {
		return nil, err
	}

	st := &Store{
		draft:  draft,
		plan:   plan,
		errors: make(map[string]string),
		normalizers: map[string]Normalizer{
			checklist.FieldContactPhone: normalizePhone,
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(st)
	}
	return st, nil
}

// Draft exposes the record the store owns.
func (s *Store) Draft() *checklist.Draft {
	return s.draft
}

// Plan exposes the immutable step plan.
func (s *Store) Plan() checklist.Plan {
	return s.plan
}

// UpdateField normalizes and stores a value, optimistically clearing the
// field's error entry; errors only come back on the next explicit validation
// pass, not on every keystroke. Qualifying updates re-arm the auto-save
// scheduler.
func (s *Store) UpdateField(name string, value any) {
	if fn, ok := s.normalizers[name]; ok {
		value = fn(value)
	}
	s.draft.Set(name, value)
	delete(s.errors, name)

	if s.scheduler != nil && s.meaningful() {
		s.scheduler.Arm(s.draft)
	}
}

// meaningful reports whether the draft carries at least one of the fields
// worth persisting in the background; a wizard opened and abandoned with zero
// input is never auto-saved.
func (s *Store) meaningful() bool {
	return !s.draft.Empty(checklist.FieldContactName) ||
		!s.draft.Empty(checklist.FieldContactPhone) ||
		!s.draft.Empty(checklist.FieldEventDate)
}

// Validate recomputes the full error map against every step's rule set and
// reports whether the draft is clean. This is the gate for the final
// complete save.
func (s *Store) Validate() bool {
	s.errors = make(map[string]string)
	for _, step := range s.plan.Steps {
		s.validateStep(step)
	}
	return len(s.errors) == 0
}

// ValidateTab recomputes only the error entries owned by one step, leaving
// other steps' entries untouched, and reports whether that subset is clean.
func (s *Store) ValidateTab(index int) bool {
	step, ok := s.plan.StepAt(index)
	if !ok {
		return false
	}

	for _, name := range step.Required {
		delete(s.errors, name)
	}
	for _, name := range step.Validated {
		delete(s.errors, name)
	}
	s.validateStep(step)

	for _, name := range step.Required {
		if _, bad := s.errors[name]; bad {
			return false
		}
	}
	for _, name := range step.Validated {
		if _, bad := s.errors[name]; bad {
			return false
		}
	}
	return true
}

func (s *Store) validateStep(step checklist.Step) {
	for _, name := range step.Required {
		if msg := fieldError(s.draft, name, true); msg != "" {
			s.errors[name] = msg
		}
	}
	for _, name := range step.Validated {
		if msg := fieldError(s.draft, name, false); msg != "" {
			s.errors[name] = msg
		}
	}
}

// Errors returns a copy of the current error map.
func (s *Store) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// ErrorFor returns the message attached to a field, or "" when valid.
func (s *Store) ErrorFor(name string) string {
	return s.errors[name]
}

// Reset replaces the draft with the variant's empty defaults and clears all
// errors. Used on cancel or after a successful create.
func (s *Store) Reset() {
	s.draft.Reset()
	s.errors = make(map[string]string)
}

func normalizePhone(value any) any {
	raw, ok := value.(string)
	if !ok {
		return value
	}
	if raw == "" {
		return ""
	}
	return codec.FormatPhone(raw)
}
