package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
)

type reply func(ctx context.Context, req downstream.Request) (*envelope.Envelope, error)

// fakeCaller answers by path and records every call it receives.
type fakeCaller struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   []downstream.Request
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{replies: map[string]reply{}}
}

func (f *fakeCaller) on(path string, r reply) *fakeCaller {
	f.replies[path] = r
	return f
}

func (f *fakeCaller) Call(ctx context.Context, req downstream.Request) (*envelope.Envelope, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	r, ok := f.replies[req.Path]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("fake: no reply for %s", req.Path)
	}
	return r(ctx, req)
}

func (f *fakeCaller) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeCaller) called(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.Path == path {
			return true
		}
	}
	return false
}

func ok(data string) reply {
	return func(context.Context, downstream.Request) (*envelope.Envelope, error) {
		env := envelope.New(envelope.Success, "", json.RawMessage(data))
		return &env, nil
	}
}

func status(code envelope.Code, httpStatus int, message string) reply {
	return func(context.Context, downstream.Request) (*envelope.Envelope, error) {
		return &envelope.Envelope{HTTPStatus: httpStatus, ServiceStatus: code, Message: message, Data: json.RawMessage("null")}, nil
	}
}

func blockUntilDone(started chan<- struct{}) reply {
	return func(ctx context.Context, req downstream.Request) (*envelope.Envelope, error) {
		if started != nil {
			close(started)
		}
		<-ctx.Done()
		return nil, &downstream.TransportError{Service: req.Service, Path: req.Path, Err: ctx.Err()}
	}
}

func get(service downstream.Service, path string) func(Results) (downstream.Request, error) {
	return func(Results) (downstream.Request, error) {
		return downstream.Request{Service: service, Method: "GET", Path: path}, nil
	}
}
