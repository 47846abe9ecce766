package pipeline

import (
	"fmt"

	"github.com/yungbote/flicker-bff/internal/envelope"
)

// Kind classifies why an operation was aborted.
type Kind int

const (
	// KindDownstream: a backend answered with a non-SUCCESS envelope.
	KindDownstream Kind = iota + 1
	// KindDecode: SUCCESS envelope whose data did not fit the stage's type.
	KindDecode
	// KindTransport: no envelope came back (connection, timeout, cancel).
	KindTransport
	// KindUnexpected: anything else, including panics and build errors.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindDownstream:
		return "downstream"
	case KindDecode:
		return "decode"
	case KindTransport:
		return "transport"
	case KindUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Failure is internal; only Translate turns it into something a client sees.
type Failure struct {
	Kind  Kind
	Stage string

	// Envelope is the backend's answer for KindDownstream.
	Envelope envelope.Envelope

	Cause error
}

func (f *Failure) Error() string {
	if f == nil {
		return "pipeline failure"
	}
	switch f.Kind {
	case KindDownstream:
		return fmt.Sprintf("stage %s: downstream status %d: %s", f.Stage, int(f.Envelope.ServiceStatus), f.Envelope.Message)
	default:
		if f.Stage == "" {
			return fmt.Sprintf("%s failure: %v", f.Kind, f.Cause)
		}
		return fmt.Sprintf("stage %s: %s failure: %v", f.Stage, f.Kind, f.Cause)
	}
}

func (f *Failure) Unwrap() error { return f.Cause }
