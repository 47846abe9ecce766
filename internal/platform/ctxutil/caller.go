package ctxutil

import "context"

type callerKey struct{}

// Caller identifies the authenticated end user, when a bearer token was
// presented.
type Caller struct {
	UserSeq int64
	Subject string
}

func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func GetCaller(ctx context.Context) *Caller {
	if c, ok := ctx.Value(callerKey{}).(*Caller); ok {
		return c
	}
	return nil
}
