package pipeline

import (
	"context"
	"errors"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
)

const (
	diagDecode      = "failed to decode response"
	diagUnavailable = "downstream unavailable"
	diagTimeout     = "downstream timeout"
	diagCancelled   = "request cancelled"
)

// Translate renders an Outcome as the single envelope the client receives.
// It is the only place failures become outward responses.
func Translate(out Outcome) envelope.Envelope {
	switch out.State {
	case StateSucceeded:
		if env, ok := out.Data.(envelope.Envelope); ok {
			return env
		}
		env, err := envelope.OK(out.Data)
		if err != nil {
			return unexpected(out.Plan)
		}
		return env
	case StateHalted:
		if out.Halt == nil {
			return unexpected(out.Plan)
		}
		return envelope.New(out.Halt.Code, out.Halt.Message, nil)
	case StateAborted:
		return translateFailure(out.Plan, out.Failure)
	default:
		return unexpected(out.Plan)
	}
}

func translateFailure(plan string, f *Failure) envelope.Envelope {
	if f == nil {
		return unexpected(plan)
	}
	switch f.Kind {
	case KindDownstream:
		env := f.Envelope
		if !env.ServiceStatus.Registered() {
			return envelope.New(envelope.UnknownError, env.Message, env.Data)
		}
		if env.HTTPStatus == 0 {
			st, _ := envelope.Lookup(env.ServiceStatus)
			env.HTTPStatus = st.HTTPStatus
		}
		return env
	case KindDecode:
		return envelope.New(envelope.InternalError, f.Stage+": "+diagDecode, nil)
	case KindTransport:
		return envelope.New(envelope.InternalError, f.Stage+": "+transportDiagnostic(f.Cause), nil)
	default:
		if f.Stage != "" {
			return unexpected(f.Stage)
		}
		return unexpected(plan)
	}
}

func transportDiagnostic(err error) string {
	var te *downstream.TransportError
	switch {
	case errors.As(err, &te) && te.Timeout():
		return diagTimeout
	case errors.As(err, &te) && te.Canceled():
		return diagCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return diagTimeout
	case errors.Is(err, context.Canceled):
		return diagCancelled
	default:
		return diagUnavailable
	}
}

// unexpected names the failing stage, or the plan when no stage was running.
func unexpected(where string) envelope.Envelope {
	if where == "" {
		where = "operation"
	}
	return envelope.New(envelope.UnknownError, where+": unexpected error", nil)
}
