package checklist

import "testing"

func TestPlanForBox(t *testing.T) {
	plan, err := PlanFor(TypeBox)
	if err != nil {
		t.Fatalf("PlanFor(box): %v", err)
	}
	if plan.StartIndex != 0 {
		t.Fatalf("box start index = %d, want 0", plan.StartIndex)
	}
	if len(plan.Steps) != 4 {
		t.Fatalf("box steps = %d, want 4", len(plan.Steps))
	}
	for i, step := range plan.Steps {
		if step.Index != i {
			t.Errorf("step %q index = %d, want %d", step.Title, step.Index, i)
		}
	}

	contact, ok := plan.StepAt(0)
	if !ok {
		t.Fatal("StepAt(0) not found")
	}
	if !contact.Owns(FieldContactPhone) || !contact.Owns(FieldContactEmail) {
		t.Fatal("contact step must own phone and email")
	}
	if contact.Owns(FieldEventDate) {
		t.Fatal("contact step must not own event date")
	}
}

func TestPlanForCateringIsOneBased(t *testing.T) {
	plan, err := PlanFor(TypeCatering)
	if err != nil {
		t.Fatalf("PlanFor(catering): %v", err)
	}
	if plan.StartIndex != 1 {
		t.Fatalf("catering start index = %d, want 1", plan.StartIndex)
	}
	if len(plan.Steps) != 7 {
		t.Fatalf("catering steps = %d, want 7", len(plan.Steps))
	}
	if plan.First() != 1 || plan.Last() != 7 {
		t.Fatalf("bounds = (%d, %d), want (1, 7)", plan.First(), plan.Last())
	}
	if _, ok := plan.StepAt(0); ok {
		t.Fatal("catering plan must not resolve index 0")
	}
	if _, ok := plan.StepAt(8); ok {
		t.Fatal("catering plan must not resolve index 8")
	}
}

func TestPlanForUnknownVariant(t *testing.T) {
	if _, err := PlanFor(Type("banquet")); err == nil {
		t.Fatal("expected error for unknown variant")
	}
}

func TestDraftHelpers(t *testing.T) {
	d := New(TypeBox)
	d.Set(FieldContactName, "Олена")
	d.Set(FieldGuestCount, float64(24))
	d.Set(FieldLocationElevator, true)
	d.Set(FieldNotes, "   ")

	if got := d.Text(FieldContactName); got != "Олена" {
		t.Fatalf("Text = %q", got)
	}
	if got := d.Int(FieldGuestCount); got != 24 {
		t.Fatalf("Int = %d, want 24", got)
	}
	if !d.Bool(FieldLocationElevator) {
		t.Fatal("Bool = false, want true")
	}
	if !d.Empty(FieldNotes) {
		t.Fatal("blank string should read as empty")
	}
	if d.Empty(FieldGuestCount) {
		t.Fatal("numeric field should not read as empty")
	}

	clone := d.Clone()
	clone.Set(FieldContactName, "Ірина")
	if d.Text(FieldContactName) != "Олена" {
		t.Fatal("clone mutation leaked into original")
	}

	d.Set(FieldContactName, nil)
	if _, ok := d.Get(FieldContactName); ok {
		t.Fatal("nil Set should delete the field")
	}

	d.ID = 42
	d.Status = StatusInProgress
	d.Reset()
	if d.ID != 0 || d.Status != StatusDraft || len(d.Fields) != 0 {
		t.Fatalf("Reset left state behind: %+v", d)
	}
}
