package checklist

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed steps.yaml
var stepsYAML []byte

// Step describes one wizard screen: its position, title, the fields that must
// be non-empty (and format-valid) before the user may advance past it, and
// the optional fields the step owns that are only format-checked when
// present.
type Step struct {
	Index     int
	Title     string
	Required  []string
	Validated []string
}

// Owns reports whether the step is responsible for validating the field.
func (s Step) Owns(name string) bool {
	for _, f := range s.Required {
		if f == name {
			return true
		}
	}
	for _, f := range s.Validated {
		if f == name {
			return true
		}
	}
	return false
}

// Plan is the ordered, immutable step sequence for one variant. The box
// variant numbers its steps from zero, the catering variant from one; both
// drive the same controller.
type Plan struct {
	Type       Type
	StartIndex int
	Steps      []Step
}

// First returns the index of the first step.
func (p Plan) First() int {
	return p.StartIndex
}

// Last returns the index of the final step.
func (p Plan) Last() int {
	return p.StartIndex + len(p.Steps) - 1
}

// StepAt resolves a step by its navigation index.
func (p Plan) StepAt(index int) (Step, bool) {
	i := index - p.StartIndex
	if i < 0 || i >= len(p.Steps) {
		return Step{}, false
	}
	return p.Steps[i], true
}

type stepsFile struct {
	Variants map[string]struct {
		StartIndex int `yaml:"start_index"`
		Steps      []struct {
			Title     string   `yaml:"title"`
			Required  []string `yaml:"required"`
			Validated []string `yaml:"validated"`
		} `yaml:"steps"`
	} `yaml:"variants"`
}

var (
	plansOnce sync.Once
	plans     map[Type]Plan
	plansErr  error
)

// PlanFor returns the embedded step plan for the variant.
func PlanFor(t Type) (Plan, error) {
	plansOnce.Do(loadPlans)
	if plansErr != nil {
		return Plan{}, plansErr
	}
	plan, ok := plans[t]
	if !ok {
		return Plan{}, fmt.Errorf("checklist: unknown variant %q", t)
	}
	return plan, nil
}

func loadPlans() {
	var file stepsFile
	if err := yaml.Unmarshal(stepsYAML, &file); err != nil {
		plansErr = fmt.Errorf("checklist: decode step plans: %w", err)
		return
	}

	plans = make(map[Type]Plan, len(file.Variants))
	for name, variant := range file.Variants {
		if len(variant.Steps) == 0 {
			plansErr = fmt.Errorf("checklist: variant %q has no steps", name)
			return
		}
		plan := Plan{
			Type:       Type(name),
			StartIndex: variant.StartIndex,
			Steps:      make([]Step, 0, len(variant.Steps)),
		}
		for i, s := range variant.Steps {
			plan.Steps = append(plan.Steps, Step{
				Index:     variant.StartIndex + i,
				Title:     s.Title,
				Required:  s.Required,
				Validated: s.Validated,
			})
		}
		plans[Type(name)] = plan
	}
}
