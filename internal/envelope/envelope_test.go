package envelope

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesRegistryEntry(t *testing.T) {
	env := New(InvalidInput, "", nil)
	assert.Equal(t, http.StatusBadRequest, env.HTTPStatus)
	assert.Equal(t, InvalidInput, env.ServiceStatus)
	assert.Equal(t, "invalid input", env.Message)
	assert.False(t, env.HasData())
}

func TestNewKeepsCustomMessage(t *testing.T) {
	env := New(NoContent, "  no recent user actions ", nil)
	assert.Equal(t, http.StatusOK, env.HTTPStatus)
	assert.Equal(t, NoContent, env.ServiceStatus)
	assert.Equal(t, "no recent user actions", env.Message)
}

func TestNewUnregisteredCodeIsUnknown(t *testing.T) {
	env := New(Code(418), "teapot", nil)
	assert.Equal(t, UnknownError, env.ServiceStatus)
	assert.Equal(t, http.StatusInternalServerError, env.HTTPStatus)
	assert.Equal(t, "teapot", env.Message)
}

func TestWireShape(t *testing.T) {
	env, err := OK(map[string]int{"movieSeq": 7})
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"httpStatus":200,"serviceStatus":200,"message":"success","data":{"movieSeq":7}}`, string(raw))

	empty := New(InternalError, "boom", nil)
	raw, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"httpStatus":500,"serviceStatus":500,"message":"boom","data":null}`, string(raw))
}

func TestDecodeFromWire(t *testing.T) {
	var env Envelope
	err := json.Unmarshal([]byte(`{"httpStatus":500,"serviceStatus":500,"message":"db unreachable","data":null}`), &env)
	require.NoError(t, err)
	assert.False(t, env.Succeeded())
	assert.False(t, env.HasData())
	assert.Equal(t, "INTERNAL_ERROR", env.ServiceStatus.String())
}

func TestStatusesOrderedAndComplete(t *testing.T) {
	all := Statuses()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, int(all[i-1].Code), int(all[i].Code))
	}
	for _, st := range all {
		got, ok := Lookup(st.Code)
		require.True(t, ok)
		assert.Equal(t, st, got)
		assert.True(t, st.Code.Registered())
	}
	assert.False(t, Code(12345).Registered())
	assert.Equal(t, "Code(12345)", Code(12345).String())
}
