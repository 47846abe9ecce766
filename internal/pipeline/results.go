package pipeline

import "fmt"

// Results maps stage names to decoded values. A Results value is never
// modified after it is handed to a stage; each step gets a fresh copy.
type Results struct {
	values map[string]any
}

func (r Results) Has(stage string) bool {
	_, ok := r.values[stage]
	return ok
}

func (r Results) Len() int { return len(r.values) }

func (r Results) with(add map[string]any) Results {
	next := make(map[string]any, len(r.values)+len(add))
	for k, v := range r.values {
		next[k] = v
	}
	for k, v := range add {
		next[k] = v
	}
	return Results{values: next}
}

// Lookup returns the typed result of stage, if present.
func Lookup[T any](r Results, stage string) (T, bool) {
	v, ok := r.values[stage].(T)
	return v, ok
}

// Value returns the typed result of stage and panics when it is missing or
// of another type. Reading a stage that has not run is a wiring bug.
func Value[T any](r Results, stage string) T {
	raw, ok := r.values[stage]
	if !ok {
		panic(fmt.Sprintf("pipeline: no result for stage %q", stage))
	}
	v, ok := raw.(T)
	if !ok {
		panic(fmt.Sprintf("pipeline: stage %q holds %T, not %T", stage, raw, *new(T)))
	}
	return v
}

// ResultsOf builds a snapshot directly; merge funcs are tested with it.
func ResultsOf(values map[string]any) Results {
	return Results{}.with(values)
}
