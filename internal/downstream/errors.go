package downstream

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrUnknownService   = errors.New("unknown backend service")
	ErrMalformedBody    = errors.New("response body is not a valid envelope")
	ErrUnexpectedStatus = errors.New("unexpected http status")
)

// TransportError reports that no usable envelope came back from a backend:
// the connection failed, the call timed out, or the body was not an
// envelope. It never carries a domain status.
type TransportError struct {
	Service    Service
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "downstream transport error"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("downstream %s %s %s: status=%d: %v", e.Service, e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("downstream %s %s %s: %v", e.Service, e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *TransportError) Timeout() bool {
	if e == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// Canceled reports whether the caller abandoned the request.
func (e *TransportError) Canceled() bool {
	return e != nil && errors.Is(e.Err, context.Canceled)
}
