package handler

import (
	"net/http"

	"dipstudio/internal/reqcontext"
)

// WithCaller lifts the caller-supplied X-User-Id/X-User-Name headers into
// request-scoped identity. Per this module's scope, caller identity is an
// opaque string pair supplied by the transport in front of this service;
// nothing here verifies it.
func WithCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := reqcontext.Caller{
			UserID:   r.Header.Get("X-User-Id"),
			UserName: r.Header.Get("X-User-Name"),
			Token:    r.Header.Get("Authorization"),
		}
		next.ServeHTTP(w, r.WithContext(reqcontext.WithCaller(r.Context(), caller)))
	})
}
