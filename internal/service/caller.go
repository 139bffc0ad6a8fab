package service

import (
	"context"

	"dipstudio/internal/reqcontext"
)

// callerFromContext returns the caller identity stored in ctx, or the zero
// Caller if the request was made without one (e.g. an unauthenticated
// internal call from the context-assembly MCP surface).
func callerFromContext(ctx context.Context) reqcontext.Caller {
	caller, _ := reqcontext.CallerFromContext(ctx)
	return caller
}
