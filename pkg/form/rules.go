package form

import (
	"time"

	"github.com/cateringlab/checklist/pkg/checklist"
	"github.com/cateringlab/checklist/pkg/codec"
)

// Validation messages surfaced inline next to a field.
const (
	msgRequired     = "required"
	msgInvalidPhone = "invalid phone number"
	msgInvalidEmail = "invalid email address"
	msgInvalidDate  = "invalid date"
	msgInvalidCount = "must be a positive number"
)

// fieldError applies the synchronous rule for one field and returns the
// human-readable message, or "" when the field is currently valid. Rules
// never throw; they only report.
func fieldError(draft *checklist.Draft, name string, required bool) string {
	if draft.Empty(name) {
		if required {
			return msgRequired
		}
		return ""
	}

	switch name {
	case checklist.FieldContactPhone:
		if !codec.ValidatePhone(draft.Text(name)) {
			return msgInvalidPhone
		}
	case checklist.FieldContactEmail:
		if !codec.ValidateEmail(draft.Text(name)) {
			return msgInvalidEmail
		}
	case checklist.FieldEventDate:
		if _, err := time.Parse("2006-01-02", draft.Text(name)); err != nil {
			return msgInvalidDate
		}
	case checklist.FieldGuestCount:
		if draft.Int(name) <= 0 {
			return msgInvalidCount
		}
	}
	return ""
}
