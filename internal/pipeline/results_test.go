package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultsWithCopies(t *testing.T) {
	base := ResultsOf(map[string]any{"a": 1})
	next := base.with(map[string]any{"b": 2})

	assert.False(t, base.Has("b"))
	assert.True(t, next.Has("a"))
	assert.Equal(t, 2, next.Len())
}

func TestValuePanicsOnMissingOrWrongType(t *testing.T) {
	r := ResultsOf(map[string]any{"a": 1})
	assert.Equal(t, 1, Value[int](r, "a"))
	assert.Panics(t, func() { Value[int](r, "b") })
	assert.Panics(t, func() { Value[string](r, "a") })

	_, ok := Lookup[string](r, "a")
	assert.False(t, ok)
}
