package form

import (
	"time"

	"github.com/cateringlab/checklist/pkg/checklist"
	"github.com/cateringlab/checklist/pkg/codec"
)

// EventFormatEntry is one entry of the structured event-format sequence as
// edited by the format picker step.
type EventFormatEntry = codec.EventFormat

// EventFormats decodes the draft's serialized format sequence. Legacy
// bare-string values come back as a single entry with no time.
func (s *Store) EventFormats() []EventFormatEntry {
	return codec.ParseEventFormats(s.draft.Text(checklist.FieldEventFormat))
}

// AppendEventFormat adds an entry to the sequence and re-serializes it. A
// legacy value is upgraded to the structured encoding permanently the first
// time the field is touched.
func (s *Store) AppendEventFormat(entry EventFormatEntry) {
	if entry.Format == "" {
		return
	}
	entries := append(s.EventFormats(), entry)
	s.UpdateField(checklist.FieldEventFormat, codec.SerializeEventFormats(entries))
}

// RemoveEventFormat drops the entry at the index; out-of-range indices are
// ignored.
func (s *Store) RemoveEventFormat(index int) {
	entries := s.EventFormats()
	if index < 0 || index >= len(entries) {
		return
	}
	entries = append(entries[:index], entries[index+1:]...)
	s.UpdateField(checklist.FieldEventFormat, codec.SerializeEventFormats(entries))
}

// BudgetRange decodes the draft's budget field, falling back to the default
// range when unset or malformed.
func (s *Store) BudgetRange() (min, max int) {
	return codec.ParseBudgetRange(s.draft.Text(checklist.FieldBudget))
}

// SetBudgetRange stores the slider bounds in the "min-max" wire encoding.
func (s *Store) SetBudgetRange(min, max int) {
	s.UpdateField(checklist.FieldBudget, codec.FormatBudgetRange(min, max))
}

// ApplyEventDefaults fills the smart defaults for a fresh draft: the coming
// Friday as event date. Already-set fields are left alone.
func (s *Store) ApplyEventDefaults(now time.Time) {
	if s.draft.Empty(checklist.FieldEventDate) {
		s.UpdateField(checklist.FieldEventDate, codec.DefaultEventDate(now).Format("2006-01-02"))
	}
}

// SetStartTime stores the start time and, when the end time is still unset,
// infers it with the fixed event-duration offset.
func (s *Store) SetStartTime(start string) {
	s.UpdateField(checklist.FieldEventStartTime, start)
	if s.draft.Empty(checklist.FieldEventEndTime) {
		if end := codec.CalculateEndTime(start); end != "" {
			s.UpdateField(checklist.FieldEventEndTime, end)
		}
	}
}
