// Package envelope defines the response wrapper shared by every backend and
// the BFF, plus the fixed registry of domain status codes.
package envelope

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Envelope is the wire shape exchanged with every downstream service and
// returned to clients:
//
//	{"httpStatus": 200, "serviceStatus": 200, "message": "success", "data": ...}
type Envelope struct {
	HTTPStatus    int             `json:"httpStatus"`
	ServiceStatus Code            `json:"serviceStatus"`
	Message       string          `json:"message"`
	Data          json.RawMessage `json:"data"`
}

// New builds an envelope from a registry entry. An empty message falls back
// to the entry's default; an unregistered code is reported as UnknownError.
func New(code Code, message string, data json.RawMessage) Envelope {
	st := statusOrUnknown(code)
	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = st.Message
	}
	return Envelope{
		HTTPStatus:    st.HTTPStatus,
		ServiceStatus: st.Code,
		Message:       msg,
		Data:          data,
	}
}

// OK marshals data into a Success envelope.
func OK(data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return New(Success, "", raw), nil
}

func (e Envelope) Succeeded() bool { return e.ServiceStatus == Success }

// HasData reports whether the payload is present and not JSON null.
func (e Envelope) HasData() bool { return !IsNull(e.Data) }

func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
