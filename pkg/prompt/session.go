package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cateringlab/checklist/pkg/checklist"
	"github.com/cateringlab/checklist/pkg/codec"
	"github.com/cateringlab/checklist/pkg/form"
	"github.com/cateringlab/checklist/pkg/wizard"
)

// Default catalog offered by the format picker, on top of whatever the
// recent-formats slot remembers.
var defaultFormatCatalog = []string{"Фуршет", "Банкет", "Кава-брейк", "Виїзний бар"}

const otherFormatOption = "Інше…"

// Actions offered after each step's fields.
const (
	actionContinue = iota
	actionBack
	actionSaveDraft
	actionSaveComplete
	actionCancel
)

var actionLabels = []string{"Continue", "Back", "Save draft", "Save and finish", "Cancel"}

// Session walks a wizard in the terminal: it prompts the current step's
// fields, writes answers through the form store, and lets the user navigate
// or save via the controller.
type Session struct {
	driver  Driver
	ctrl    *wizard.Controller
	store   *form.Store
	catalog []string
	now     func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithFormatCatalog replaces the built-in event-format catalog.
func WithFormatCatalog(formats []string) SessionOption {
	return func(s *Session) {
		if len(formats) > 0 {
			s.catalog = formats
		}
	}
}

// WithNow overrides the clock used for smart date defaults.
func WithNow(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSession wires a driver to one wizard session.
func NewSession(driver Driver, ctrl *wizard.Controller, store *form.Store, options ...SessionOption) *Session {
	s := &Session{
		driver:  driver,
		ctrl:    ctrl,
		store:   store,
		catalog: defaultFormatCatalog,
		now:     time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run drives the wizard until completion or cancellation. The returned error
// is only ever a driver failure; rejected navigation and failed saves are
// reported through Info and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	for {
		step := s.ctrl.Step()
		if err := s.driver.Info(ctx, fmt.Sprintf("== %s ==", step.Title)); err != nil {
			return err
		}
		if err := s.promptStep(ctx, step); err != nil {
			return err
		}

		action, err := s.driver.Select(ctx, SelectConfig{
			Message: "Next action",
			Options: actionLabels,
		})
		if err != nil {
			return err
		}

		switch action {
		case actionContinue:
			if !s.ctrl.Next() {
				s.showNotice(ctx)
			}
		case actionBack:
			s.ctrl.Prev()
		case actionSaveDraft:
			if err := s.ctrl.SaveDraft(ctx); err != nil {
				s.showNotice(ctx)
			} else if err := s.driver.Info(ctx, "Draft saved."); err != nil {
				return err
			}
		case actionSaveComplete:
			ok, err := s.ctrl.SaveComplete(ctx)
			if err != nil || !ok {
				s.showNotice(ctx)
				continue
			}
			return s.driver.Info(ctx, "Checklist completed.")
		case actionCancel:
			s.ctrl.Cancel()
			return nil
		}
	}
}

func (s *Session) showNotice(ctx context.Context) {
	if notice := s.ctrl.Notice(); notice != "" {
		_ = s.driver.Info(ctx, string(notice))
	}
}

func (s *Session) promptStep(ctx context.Context, step checklist.Step) error {
	fields := make([]string, 0, len(step.Required)+len(step.Validated))
	fields = append(fields, step.Required...)
	fields = append(fields, step.Validated...)

	var foodDone, equipmentDone bool
	for _, field := range fields {
		// Flag groups are collected with one multi-select per step, not one
		// prompt per flag.
		if strings.HasPrefix(field, "food_") {
			if foodDone {
				continue
			}
			foodDone = true
		}
		if strings.HasPrefix(field, "equipment_") {
			if equipmentDone {
				continue
			}
			equipmentDone = true
		}
		if err := s.promptField(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, field string) error {
	switch field {
	case checklist.FieldEventDate:
		s.store.ApplyEventDefaults(s.now())
		return s.promptText(ctx, field, "Event date (YYYY-MM-DD)")
	case checklist.FieldEventFormat:
		return s.promptFormats(ctx)
	case checklist.FieldEventStartTime:
		return s.promptStartTime(ctx)
	case checklist.FieldGuestCount:
		return s.promptGuestCount(ctx)
	case checklist.FieldBudget:
		return s.promptBudget(ctx)
	case checklist.FieldLocationElevator:
		return s.promptFlag(ctx, field, "Is there an elevator?")
	case checklist.FieldNotes:
		return s.promptNotes(ctx, field, "Notes")
	case checklist.FieldKitchenNotes:
		return s.promptNotes(ctx, field, "Kitchen notes")
	}

	if strings.HasPrefix(field, "food_") {
		return s.promptFlagGroup(ctx, "Menu categories", checklist.FoodFlags, "food_", false)
	}
	if strings.HasPrefix(field, "equipment_") {
		return s.promptFlagGroup(ctx, "Equipment", checklist.EquipmentFlags, "equipment_", true)
	}
	return s.promptText(ctx, field, fieldLabel(field))
}

func (s *Session) promptText(ctx context.Context, field, label string) error {
	value, err := s.driver.Input(ctx, InputConfig{
		Message: label,
		Default: s.store.Draft().Text(field),
	})
	if err != nil {
		return err
	}
	s.store.UpdateField(field, value)
	if msg := s.store.ErrorFor(field); msg != "" {
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s", label, msg))
	}
	return nil
}

func (s *Session) promptNotes(ctx context.Context, field, label string) error {
	value, err := s.driver.TextArea(ctx, TextAreaConfig{
		Message: label,
		Default: s.store.Draft().Text(field),
	})
	if err != nil {
		return err
	}
	s.store.UpdateField(field, value)
	return nil
}

func (s *Session) promptFlag(ctx context.Context, field, label string) error {
	value, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: label,
		Default: s.store.Draft().Bool(field),
	})
	if err != nil {
		return err
	}
	s.store.UpdateField(field, value)
	return nil
}

// promptFormats runs the format picker: recently used formats come first,
// then the catalog, then a free-text escape hatch. Staff can add several
// formats, each with an optional time.
func (s *Session) promptFormats(ctx context.Context) error {
	if current := s.store.EventFormats(); len(current) > 0 {
		keep, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Keep the %d selected format(s)?", len(current)),
			Default: true,
		})
		if err != nil {
			return err
		}
		if keep {
			return nil
		}
		for i := len(current) - 1; i >= 0; i-- {
			s.store.RemoveEventFormat(i)
		}
	}

	options := formatOptions(s.ctrl.RecentFormats(), s.catalog)
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message: "Event format",
			Options: options,
		})
		if err != nil {
			return err
		}

		var format string
		if idx >= 0 && idx < len(options)-1 {
			format = options[idx]
		} else {
			format, err = s.driver.Input(ctx, InputConfig{Message: "Format name"})
			if err != nil {
				return err
			}
		}

		eventTime, err := s.driver.Input(ctx, InputConfig{
			Message: "Time for this format (HH:MM, optional)",
		})
		if err != nil {
			return err
		}
		s.ctrl.SelectFormat(form.EventFormatEntry{
			Format: strings.TrimSpace(format),
			Time:   strings.TrimSpace(eventTime),
		})

		more, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Add another format?"})
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func (s *Session) promptStartTime(ctx context.Context) error {
	value, err := s.driver.Input(ctx, InputConfig{
		Message: "Start time (HH:MM)",
		Default: s.store.Draft().Text(checklist.FieldEventStartTime),
	})
	if err != nil {
		return err
	}
	s.store.SetStartTime(strings.TrimSpace(value))
	return nil
}

func (s *Session) promptGuestCount(ctx context.Context) error {
	for {
		value, err := s.driver.Input(ctx, InputConfig{
			Message: "Guest count",
			Default: s.store.Draft().Text(checklist.FieldGuestCount),
		})
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			s.store.UpdateField(checklist.FieldGuestCount, nil)
			return nil
		}
		count, err := strconv.Atoi(trimmed)
		if err != nil || count <= 0 {
			if err := s.driver.Info(ctx, "Guest count must be a positive number."); err != nil {
				return err
			}
			continue
		}
		s.store.UpdateField(checklist.FieldGuestCount, count)
		return nil
	}
}

func (s *Session) promptBudget(ctx context.Context) error {
	min, max := s.store.BudgetRange()
	value, err := s.driver.Input(ctx, InputConfig{
		Message: "Budget range (min-max)",
		Default: codec.FormatBudgetRange(min, max),
	})
	if err != nil {
		return err
	}
	s.store.SetBudgetRange(codec.ParseBudgetRange(value))
	return nil
}

// promptFlagGroup presents a category multi-select. The equipment group adds
// a free-text fallback for gear outside the fixed set.
func (s *Session) promptFlagGroup(ctx context.Context, label string, flags []string, prefix string, freeText bool) error {
	options := make([]string, 0, len(flags))
	var defaults []int
	for i, flag := range flags {
		options = append(options, fieldLabel(strings.TrimPrefix(flag, prefix)))
		if s.store.Draft().Bool(flag) {
			defaults = append(defaults, i)
		}
	}

	selected, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  label,
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}

	chosen := make(map[int]struct{}, len(selected))
	for _, idx := range selected {
		chosen[idx] = struct{}{}
	}
	for i, flag := range flags {
		_, on := chosen[i]
		s.store.UpdateField(flag, on)
	}

	if freeText {
		extra, err := s.driver.Input(ctx, InputConfig{
			Message: "Anything else needed? (optional)",
		})
		if err != nil {
			return err
		}
		if extra = strings.TrimSpace(extra); extra != "" {
			notes := s.store.Draft().Text(checklist.FieldKitchenNotes)
			if notes != "" {
				notes += "\n"
			}
			s.store.UpdateField(checklist.FieldKitchenNotes, notes+extra)
		}
	}
	return nil
}

func formatOptions(recent, catalog []string) []string {
	out := make([]string, 0, len(recent)+len(catalog)+1)
	seen := make(map[string]struct{})
	for _, f := range recent {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	for _, f := range catalog {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return append(out, otherFormatOption)
}

func fieldLabel(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}
