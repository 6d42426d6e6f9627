package form

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cateringlab/checklist/pkg/checklist"
)

func newBoxStore(t *testing.T, options ...StoreOption) *Store {
	t.Helper()
	st, err := NewStore(checklist.New(checklist.TypeBox), options...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}

func TestUpdateFieldAppliesPhoneMask(t *testing.T) {
	st := newBoxStore(t)
	st.UpdateField(checklist.FieldContactPhone, "050 123 45 67")

	got := st.Draft().Text(checklist.FieldContactPhone)
	if got != "+380501234567" {
		t.Fatalf("phone = %q, want +380501234567", got)
	}
}

func TestUpdateFieldAppliesRegisteredNormalizer(t *testing.T) {
	trim := func(value any) any {
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s)
		}
		return value
	}
	st := newBoxStore(t, WithNormalizer(checklist.FieldContactName, trim))

	st.UpdateField(checklist.FieldContactName, "  Олена  ")
	if got := st.Draft().Text(checklist.FieldContactName); got != "Олена" {
		t.Fatalf("name = %q, want trimmed value", got)
	}
}

func TestUpdateFieldClearsErrorOptimistically(t *testing.T) {
	st := newBoxStore(t)
	if st.Validate() {
		t.Fatal("empty draft should not validate")
	}
	if st.ErrorFor(checklist.FieldContactName) == "" {
		t.Fatal("expected required error for contact name")
	}

	// Typing anything clears the entry; only the next validation pass may
	// restore it.
	st.UpdateField(checklist.FieldContactName, "")
	if st.ErrorFor(checklist.FieldContactName) != "" {
		t.Fatal("update should clear the field error")
	}
	if st.Validate() {
		t.Fatal("draft is still incomplete")
	}
	if st.ErrorFor(checklist.FieldContactName) == "" {
		t.Fatal("validation should restore the error")
	}
}

func TestValidateFullRuleSet(t *testing.T) {
	st := newBoxStore(t)
	st.UpdateField(checklist.FieldContactName, "Олена")
	st.UpdateField(checklist.FieldContactPhone, "+380501234567")
	st.UpdateField(checklist.FieldContactEmail, "not-an-email")

	if st.Validate() {
		t.Fatal("invalid email should fail validation")
	}
	want := map[string]string{
		checklist.FieldContactEmail: "invalid email address",
		checklist.FieldEventDate:    "required",
	}
	if diff := cmp.Diff(want, st.Errors()); diff != "" {
		t.Fatalf("error map mismatch (-want +got):\n%s", diff)
	}

	st.UpdateField(checklist.FieldContactEmail, "")
	st.UpdateField(checklist.FieldEventDate, "2025-12-20")
	if !st.Validate() {
		t.Fatalf("draft should validate, errors: %v", st.Errors())
	}
}

func TestValidateTabLeavesOtherStepsUntouched(t *testing.T) {
	st := newBoxStore(t)
	st.Validate() // populate errors for contact and event steps

	st.UpdateField(checklist.FieldContactName, "Олена")
	st.UpdateField(checklist.FieldContactPhone, "501234567")

	if !st.ValidateTab(0) {
		t.Fatalf("contact step should be clean, errors: %v", st.Errors())
	}
	// The event step's required-date entry from the full pass must survive a
	// contact-only pass.
	if st.ErrorFor(checklist.FieldEventDate) == "" {
		t.Fatal("event step error was clobbered by contact tab validation")
	}

	if st.ValidateTab(1) {
		t.Fatal("event step without a date should not be clean")
	}
	st.UpdateField(checklist.FieldEventDate, "2025-12-20")
	if !st.ValidateTab(1) {
		t.Fatal("event step with a date should be clean")
	}
}

func TestValidateTabUnknownStep(t *testing.T) {
	st := newBoxStore(t)
	if st.ValidateTab(99) {
		t.Fatal("unknown step index should not validate")
	}
}

func TestStepsWithoutRequiredFieldsAlwaysPass(t *testing.T) {
	st := newBoxStore(t)
	if !st.ValidateTab(2) || !st.ValidateTab(3) {
		t.Fatal("location and details steps must be unconditionally satisfiable")
	}
}

func TestInvalidGuestCount(t *testing.T) {
	draft := checklist.New(checklist.TypeCatering)
	st, err := NewStore(draft)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	st.UpdateField(checklist.FieldGuestCount, 0)
	if st.ValidateTab(3) {
		t.Fatal("zero guest count should fail the format step")
	}
	st.UpdateField(checklist.FieldGuestCount, 24)
	if !st.ValidateTab(3) {
		t.Fatalf("positive guest count should pass, errors: %v", st.Errors())
	}
}

func TestReset(t *testing.T) {
	st := newBoxStore(t)
	st.UpdateField(checklist.FieldContactName, "Олена")
	st.Validate()
	st.Reset()

	if len(st.Errors()) != 0 {
		t.Fatal("reset should clear errors")
	}
	if !st.Draft().Empty(checklist.FieldContactName) {
		t.Fatal("reset should clear draft fields")
	}
	if st.Draft().Type != checklist.TypeBox {
		t.Fatal("reset must keep the type discriminant")
	}
}
