package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
)

// ErrNullPayload is returned when a SUCCESS envelope carries null data for a
// stage whose result type has no natural empty value.
var ErrNullPayload = errors.New("success envelope carried null data")

// Stage is one downstream call. Build sees only results of earlier steps.
type Stage struct {
	Name   string
	Build  func(prior Results) (downstream.Request, error)
	Decode func(env *envelope.Envelope) (any, error)

	// Halt, when set, inspects the decoded value and may end the operation
	// early as a terminal success.
	Halt func(value any) (Halt, bool)
}

// Halt ends an operation early with a registry status and no data.
type Halt struct {
	Stage   string
	Code    envelope.Code
	Message string
}

// NewStage declares a stage whose envelope data decodes into T.
func NewStage[T any](name string, build func(prior Results) (downstream.Request, error)) Stage {
	return Stage{
		Name:  name,
		Build: build,
		Decode: func(env *envelope.Envelope) (any, error) {
			return decodeData[T](env.Data)
		},
	}
}

// Relay declares a stage whose result is the backend's SUCCESS envelope
// itself, for operations that pass the answer through untouched.
func Relay(name string, build func(prior Results) (downstream.Request, error)) Stage {
	return Stage{
		Name:  name,
		Build: build,
		Decode: func(env *envelope.Envelope) (any, error) {
			return *env, nil
		},
	}
}

// HaltWhen attaches a halt condition to a stage built with NewStage[T].
func HaltWhen[T any](s Stage, code envelope.Code, message string, cond func(T) bool) Stage {
	s.Halt = func(value any) (Halt, bool) {
		v, ok := value.(T)
		if !ok {
			panic(fmt.Sprintf("pipeline: stage %q halt condition expects %T, got %T", s.Name, *new(T), value))
		}
		if !cond(v) {
			return Halt{}, false
		}
		return Halt{Stage: s.Name, Code: code, Message: message}, true
	}
	return s
}

func decodeData[T any](raw json.RawMessage) (any, error) {
	var v T
	if envelope.IsNull(raw) {
		if nullable(reflect.TypeFor[T]()) {
			return v, nil
		}
		return nil, ErrNullPayload
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// nullable reports whether JSON null has an obvious empty reading for t.
func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Map, reflect.String, reflect.Interface, reflect.Pointer:
		return true
	default:
		return false
	}
}

// Step is either a single Stage or a Group.
type Step interface {
	members() []Stage
}

func (s Stage) members() []Stage { return []Stage{s} }

// Group is a set of independent stages run concurrently. Every member sees
// the same snapshot of prior results.
type Group []Stage

func Parallel(stages ...Stage) Group { return Group(stages) }

func (g Group) members() []Stage { return g }
