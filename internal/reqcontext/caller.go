// Package reqcontext carries the identity of the caller making a request
// through a call chain via context.Context, the Go equivalent of the
// original service's contextvars-based token context.
package reqcontext

import "context"

// Caller identifies who is making a request: the user attributed to
// creator_id/editor_id columns, and the bearer token used to authenticate
// to any upstream identity provider, if one is present.
type Caller struct {
	UserID   string
	UserName string
	Token    string
}

type callerContextKey string

const callerKey callerContextKey = "caller"

// WithCaller stores a Caller in the context.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFromContext retrieves the Caller stored in the context. Returns the
// zero Caller and false if none is present.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerKey).(Caller)
	return caller, ok
}
