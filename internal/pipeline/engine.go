// Package pipeline runs orchestration plans: ordered stages of downstream
// calls, some grouped to run concurrently, that short-circuit on the first
// failure and end in exactly one Outcome.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/flicker-bff/internal/downstream"
	"github.com/yungbote/flicker-bff/internal/envelope"
	"github.com/yungbote/flicker-bff/internal/observability"
	"github.com/yungbote/flicker-bff/internal/platform/ctxutil"
	"github.com/yungbote/flicker-bff/internal/platform/logger"
)

type Engine struct {
	caller  downstream.Caller
	log     *logger.Logger
	metrics *observability.Metrics
}

type Option func(*Engine)

func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func NewEngine(caller downstream.Caller, log *logger.Logger, opts ...Option) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	e := &Engine{caller: caller, log: log}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes plan and never returns an error: every path ends in an
// Outcome that Translate can render.
func (e *Engine) Run(ctx context.Context, plan Plan) Outcome {
	out := Outcome{Plan: plan.Name}
	if err := plan.Validate(); err != nil {
		return e.finish(ctx, e.abort(out, &Failure{Kind: KindUnexpected, Cause: err}))
	}

	ctx, span := observability.Tracer().Start(ctx, "pipeline "+plan.Name)
	defer span.End()

	results := Results{}
	for _, step := range plan.Steps {
		produced, completed, halt, fail := e.runStep(ctx, step, results)
		out.Completed = append(out.Completed, completed...)
		if fail != nil {
			span.SetStatus(codes.Error, fail.Kind.String())
			span.SetAttributes(attribute.String("bff.failed_stage", fail.Stage))
			return e.finish(ctx, e.abort(out, fail))
		}
		if halt != nil {
			span.SetAttributes(attribute.String("bff.halted_stage", halt.Stage))
			out.State = StateHalted
			out.Halt = halt
			return e.finish(ctx, out)
		}
		results = results.with(produced)
	}

	data, fail := e.merge(plan, results)
	if fail != nil {
		span.SetStatus(codes.Error, fail.Kind.String())
		return e.finish(ctx, e.abort(out, fail))
	}
	out.State = StateSucceeded
	out.Data = data
	return e.finish(ctx, out)
}

func (e *Engine) abort(out Outcome, fail *Failure) Outcome {
	out.State = StateAborted
	out.Failure = fail
	return out
}

func (e *Engine) runStep(ctx context.Context, step Step, prior Results) (map[string]any, []string, *Halt, *Failure) {
	members := step.members()
	if _, grouped := step.(Group); !grouped && len(members) == 1 {
		st := members[0]
		v, halt, fail := e.runStage(ctx, st, prior)
		if fail != nil {
			return nil, nil, nil, fail
		}
		return map[string]any{st.Name: v}, []string{st.Name}, halt, nil
	}
	return e.runGroup(ctx, members, prior)
}

type stageResult struct {
	value any
	halt  *Halt
}

// runGroup starts every member concurrently. The first failure cancels the
// others and is the one reported. With no failure, the first halting member
// in declaration order wins.
func (e *Engine) runGroup(ctx context.Context, members []Stage, prior Results) (map[string]any, []string, *Halt, *Failure) {
	g, gctx := errgroup.WithContext(ctx)
	slots := make([]stageResult, len(members))
	var (
		mu        sync.Mutex
		completed []string
	)
	for i := range members {
		st := members[i]
		g.Go(func() error {
			v, halt, fail := e.runStage(gctx, st, prior)
			if fail != nil {
				return fail
			}
			slots[i] = stageResult{value: v, halt: halt}
			mu.Lock()
			completed = append(completed, st.Name)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var fail *Failure
		if !errors.As(err, &fail) {
			fail = &Failure{Kind: KindUnexpected, Cause: err}
		}
		return nil, completed, nil, fail
	}

	produced := make(map[string]any, len(members))
	var halt *Halt
	for i, st := range members {
		produced[st.Name] = slots[i].value
		if halt == nil && slots[i].halt != nil {
			halt = slots[i].halt
		}
	}
	return produced, completed, halt, nil
}

func (e *Engine) runStage(ctx context.Context, st Stage, prior Results) (value any, halt *Halt, fail *Failure) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("pipeline stage panicked", "stage", st.Name, "panic", r, "stack", string(debug.Stack()))
			value, halt = nil, nil
			fail = &Failure{Kind: KindUnexpected, Stage: st.Name, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, nil, &Failure{Kind: KindTransport, Stage: st.Name, Cause: err}
	}

	ctx, span := observability.Tracer().Start(ctx, "stage "+st.Name)
	defer span.End()

	req, err := st.Build(prior)
	if err != nil {
		return nil, nil, &Failure{Kind: KindUnexpected, Stage: st.Name, Cause: fmt.Errorf("build request: %w", err)}
	}

	env, err := e.invoke(ctx, req)
	if err != nil {
		var te *downstream.TransportError
		if errors.As(err, &te) {
			span.SetStatus(codes.Error, "transport")
			return nil, nil, &Failure{Kind: KindTransport, Stage: st.Name, Cause: err}
		}
		return nil, nil, &Failure{Kind: KindUnexpected, Stage: st.Name, Cause: err}
	}
	if env == nil {
		return nil, nil, &Failure{Kind: KindUnexpected, Stage: st.Name, Cause: errors.New("caller returned neither envelope nor error")}
	}
	if !env.Succeeded() {
		span.SetAttributes(attribute.Int("bff.service_status", int(env.ServiceStatus)))
		return nil, nil, &Failure{Kind: KindDownstream, Stage: st.Name, Envelope: *env}
	}

	v, err := st.Decode(env)
	if err != nil {
		span.SetStatus(codes.Error, "decode")
		return nil, nil, &Failure{Kind: KindDecode, Stage: st.Name, Cause: err}
	}
	if st.Halt != nil {
		if h, ok := st.Halt(v); ok {
			return v, &h, nil
		}
	}
	return v, nil, nil
}

type callResult struct {
	env *envelope.Envelope
	err error
}

// invoke waits for the call or for ctx, whichever comes first. An abandoned
// call finishes into a buffered channel nobody reads.
func (e *Engine) invoke(ctx context.Context, req downstream.Request) (*envelope.Envelope, error) {
	ch := make(chan callResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.log.Error("downstream caller panicked", "service", req.Service, "path", req.Path, "panic", r, "stack", string(debug.Stack()))
				ch <- callResult{err: fmt.Errorf("caller panic: %v", r)}
			}
		}()
		env, err := e.caller.Call(ctx, req)
		ch <- callResult{env: env, err: err}
	}()
	select {
	case r := <-ch:
		return r.env, r.err
	case <-ctx.Done():
		return nil, &downstream.TransportError{Service: req.Service, Method: req.Method, Path: req.Path, Err: ctx.Err()}
	}
}

func (e *Engine) merge(plan Plan, results Results) (data any, fail *Failure) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("pipeline merge panicked", "plan", plan.Name, "panic", r, "stack", string(debug.Stack()))
			data = nil
			fail = &Failure{Kind: KindUnexpected, Cause: fmt.Errorf("merge panic: %v", r)}
		}
	}()
	data, err := plan.Merge(results)
	if err != nil {
		return nil, &Failure{Kind: KindUnexpected, Cause: fmt.Errorf("merge: %w", err)}
	}
	return data, nil
}

func (e *Engine) finish(ctx context.Context, out Outcome) Outcome {
	kind := ""
	if out.Failure != nil {
		kind = out.Failure.Kind.String()
	}
	e.metrics.ObservePipeline(out.Plan, out.State.String(), kind)

	fields := []interface{}{"plan", out.Plan, "state", out.State.String(), "request_id", ctxutil.RequestID(ctx)}
	switch {
	case out.Failure == nil:
		if out.Halt != nil {
			fields = append(fields, "halt_stage", out.Halt.Stage, "halt_status", int(out.Halt.Code))
		}
		e.log.Debug("pipeline finished", fields...)
	case out.Failure.Kind == KindDownstream:
		fields = append(fields, "stage", out.Failure.Stage, "service_status", int(out.Failure.Envelope.ServiceStatus))
		e.log.Info("pipeline aborted by downstream status", fields...)
	case out.Failure.Kind == KindTransport:
		fields = append(fields, "stage", out.Failure.Stage, "error", out.Failure.Cause)
		e.log.Warn("pipeline aborted by transport failure", fields...)
	default:
		fields = append(fields, "stage", out.Failure.Stage, "kind", kind, "error", out.Failure.Cause)
		e.log.Error("pipeline aborted", fields...)
	}
	return out
}
