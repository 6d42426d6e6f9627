// Package summary renders a read-only HTML digest of a checklist, the piece
// the back office pastes into a commercial proposal. Free-text fields are
// sanitized on the way in; chrome classes and CSS variables can come from a
// go-theme renderer configuration.
package summary

import (
	"errors"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/cateringlab/checklist/pkg/checklist"
	"github.com/cateringlab/checklist/pkg/codec"
)

const summaryTemplate = "templates/summary.tpl"

// Titles shown above each variant's summary.
var variantTitles = map[checklist.Type]string{
	checklist.TypeBox:      "Box delivery checklist",
	checklist.TypeCatering: "Catering checklist",
}

// Renderer produces the summary HTML for drafts.
type Renderer struct {
	engine *engine
	theme  *theme.RendererConfig
	chrome map[string]string
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithTheme applies a resolved go-theme renderer configuration; its tokens
// become chrome classes and its CSS variables an inline style.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithChromeClasses overrides individual chrome class slots (section,
// status, fields, notes).
func WithChromeClasses(classes map[string]string) Option {
	return func(r *Renderer) {
		for slot, class := range classes {
			r.chrome[strings.TrimSpace(slot)] = class
		}
	}
}

// WithEngineOptions forwards options to the underlying template engine.
func WithEngineOptions(options ...EngineOption) Option {
	return func(r *Renderer) {
		r.engine = newEngine(options...)
	}
}

// New constructs a summary renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		engine: newEngine(),
		chrome: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Render produces the summary HTML for one draft.
func (r *Renderer) Render(draft *checklist.Draft) ([]byte, error) {
	if draft == nil {
		return nil, errors.New("summary: draft is required")
	}

	min, max := codec.ParseBudgetRange(draft.Text(checklist.FieldBudget))

	data := map[string]any{
		"title":              titleFor(draft.Type),
		"status":             string(draft.Status),
		"contact_name":       draft.Text(checklist.FieldContactName),
		"contact_phone":      draft.Text(checklist.FieldContactPhone),
		"contact_email":      draft.Text(checklist.FieldContactEmail),
		"event_date":         draft.Text(checklist.FieldEventDate),
		"event_start_time":   draft.Text(checklist.FieldEventStartTime),
		"event_end_time":     draft.Text(checklist.FieldEventEndTime),
		"formats":            codec.ParseEventFormats(draft.Text(checklist.FieldEventFormat)),
		"guest_count":        draft.Int(checklist.FieldGuestCount),
		"budget":             draft.Text(checklist.FieldBudget),
		"budget_min":         min,
		"budget_max":         max,
		"location_address":   draft.Text(checklist.FieldLocationAddress),
		"location_floor":     draft.Text(checklist.FieldLocationFloor),
		"location_elevator":  draft.Bool(checklist.FieldLocationElevator),
		"food":               flagLabels(draft, checklist.FoodFlags, "food_"),
		"equipment":          flagLabels(draft, checklist.EquipmentFlags, "equipment_"),
		"notes_html":         sanitizeNotes(draft.Text(checklist.FieldNotes)),
		"kitchen_notes_html": sanitizeNotes(draft.Text(checklist.FieldKitchenNotes)),
		"chrome":             r.chromeClasses(),
		"theme":              buildThemeContext(r.theme),
	}

	return r.engine.render(summaryTemplate, data)
}

func titleFor(t checklist.Type) string {
	if title, ok := variantTitles[t]; ok {
		return title
	}
	return "Checklist"
}

// flagLabels converts the set boolean category flags into readable labels,
// in a stable order.
func flagLabels(draft *checklist.Draft, flags []string, prefix string) []string {
	var out []string
	for _, flag := range flags {
		if draft.Bool(flag) {
			label := strings.ReplaceAll(strings.TrimPrefix(flag, prefix), "_", " ")
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Renderer) chromeClasses() map[string]string {
	out := make(map[string]string, len(r.chrome))
	if r.theme != nil {
		for slot, class := range r.theme.Tokens {
			out[slot] = class
		}
	}
	for slot, class := range r.chrome {
		out[slot] = class
	}
	return out
}

type themeContext struct {
	Name         string
	Variant      string
	CSSVarsStyle string
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
