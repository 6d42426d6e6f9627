package checklist

import (
	"fmt"
	"strconv"
	"strings"
)

// Type discriminates the two intake-form variants. It is fixed for the
// lifetime of one wizard session.
type Type string

const (
	TypeBox      Type = "box"
	TypeCatering Type = "catering"
)

// Status is the persistence status carried on the wire.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSentToKP   Status = "sent_to_kp"
)

// Field names of the checklist wire shape.
const (
	FieldContactName      = "contact_name"
	FieldContactPhone     = "contact_phone"
	FieldContactEmail     = "contact_email"
	FieldEventDate        = "event_date"
	FieldEventFormat      = "event_format"
	FieldEventStartTime   = "event_start_time"
	FieldEventEndTime     = "event_end_time"
	FieldGuestCount       = "guest_count"
	FieldBudget           = "budget"
	FieldLocationAddress  = "location_address"
	FieldLocationFloor    = "location_floor"
	FieldLocationElevator = "location_elevator"
	FieldNotes            = "notes"
	FieldKitchenNotes     = "kitchen_notes"
)

// Boolean category flags collected on the menu and equipment steps.
var (
	FoodFlags = []string{
		"food_cold_snacks", "food_hot_snacks", "food_salads",
		"food_main_course", "food_desserts", "food_drinks",
	}
	EquipmentFlags = []string{
		"equipment_tables", "equipment_textile", "equipment_dishes",
		"equipment_heaters", "equipment_coffee_machine",
	}
)

// Draft is one in-progress intake form: a flat mapping of field name to
// value (string, number or boolean). A zero ID means the record has never
// been persisted.
type Draft struct {
	ID     int64
	Type   Type
	Status Status
	Fields map[string]any
}

// New creates an empty draft with the variant's defaults.
func New(t Type) *Draft {
	return &Draft{
		Type:   t,
		Status: StatusDraft,
		Fields: make(map[string]any),
	}
}

// Set stores a field value. A nil value deletes the field so absent and
// cleared fields are indistinguishable, matching the wire shape.
func (d *Draft) Set(name string, value any) {
	if d.Fields == nil {
		d.Fields = make(map[string]any)
	}
	if value == nil {
		delete(d.Fields, name)
		return
	}
	d.Fields[name] = value
}

// Get returns the raw field value.
func (d *Draft) Get(name string) (any, bool) {
	v, ok := d.Fields[name]
	return v, ok
}

// Text returns the field coerced to a string; absent fields yield "".
func (d *Draft) Text(name string) string {
	v, ok := d.Fields[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		// JSON round-trips integers as float64.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Bool returns the field coerced to a boolean; absent fields yield false.
func (d *Draft) Bool(name string) bool {
	v, ok := d.Fields[name]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && parsed
	default:
		return false
	}
}

// Int returns the field coerced to an integer; absent or non-numeric fields
// yield zero.
func (d *Draft) Int(name string) int {
	v, ok := d.Fields[name]
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Empty reports whether the field is absent or holds a blank string.
func (d *Draft) Empty(name string) bool {
	v, ok := d.Fields[name]
	if !ok || v == nil {
		return true
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Clone returns a deep copy so background persistence can snapshot the draft
// without racing later edits.
func (d *Draft) Clone() *Draft {
	out := &Draft{
		ID:     d.ID,
		Type:   d.Type,
		Status: d.Status,
		Fields: make(map[string]any, len(d.Fields)),
	}
	for k, v := range d.Fields {
		out.Fields[k] = v
	}
	return out
}

// Reset drops all collected fields and restores the variant defaults while
// keeping the type discriminant.
func (d *Draft) Reset() {
	d.ID = 0
	d.Status = StatusDraft
	d.Fields = make(map[string]any)
}
