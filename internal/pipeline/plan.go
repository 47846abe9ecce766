package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Plan is one orchestration operation: ordered steps and a merge func that
// folds the completed results into the composite payload.
type Plan struct {
	Name  string
	Steps []Step
	Merge func(Results) (any, error)
}

func (p Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("pipeline: plan name is required")
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("pipeline: plan %q has no steps", p.Name)
	}
	if p.Merge == nil {
		return fmt.Errorf("pipeline: plan %q has no merge func", p.Name)
	}
	seen := map[string]bool{}
	for i, step := range p.Steps {
		if step == nil {
			return fmt.Errorf("pipeline: plan %q step %d is nil", p.Name, i)
		}
		members := step.members()
		if len(members) == 0 {
			return fmt.Errorf("pipeline: plan %q step %d is an empty group", p.Name, i)
		}
		for _, st := range members {
			name := strings.TrimSpace(st.Name)
			if name == "" {
				return fmt.Errorf("pipeline: plan %q step %d has an unnamed stage", p.Name, i)
			}
			if seen[name] {
				return fmt.Errorf("pipeline: plan %q repeats stage %q", p.Name, name)
			}
			seen[name] = true
			if st.Build == nil || st.Decode == nil {
				return fmt.Errorf("pipeline: plan %q stage %q needs Build and Decode", p.Name, name)
			}
		}
	}
	return nil
}

// Passthrough is the single-stage plan that relays one backend answer.
func Passthrough(name string, stage Stage) Plan {
	return Plan{
		Name:  name,
		Steps: []Step{stage},
		Merge: func(r Results) (any, error) {
			return r.values[stage.Name], nil
		},
	}
}
