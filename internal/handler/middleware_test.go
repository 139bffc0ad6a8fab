package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dipstudio/internal/reqcontext"
)

func TestWithCaller(t *testing.T) {
	var captured reqcontext.Caller
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := reqcontext.CallerFromContext(r.Context())
		if !ok {
			t.Fatal("expected a caller to be present in context")
		}
		captured = caller
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-User-Id", "user-1")
	req.Header.Set("X-User-Name", "Ada")
	req.Header.Set("Authorization", "Bearer opaque-token")

	WithCaller(inner).ServeHTTP(httptest.NewRecorder(), req)

	if captured.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", captured.UserID)
	}
	if captured.UserName != "Ada" {
		t.Errorf("UserName = %q, want Ada", captured.UserName)
	}
	if captured.Token != "Bearer opaque-token" {
		t.Errorf("Token = %q, want Bearer opaque-token", captured.Token)
	}
}

func TestWithCaller_MissingHeaders(t *testing.T) {
	var captured reqcontext.Caller
	var ok bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, ok = reqcontext.CallerFromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	WithCaller(inner).ServeHTTP(httptest.NewRecorder(), req)

	if !ok {
		t.Fatal("expected a zero-value caller to still be present in context")
	}
	if captured.UserID != "" || captured.UserName != "" || captured.Token != "" {
		t.Errorf("expected zero-value caller, got %+v", captured)
	}
}
