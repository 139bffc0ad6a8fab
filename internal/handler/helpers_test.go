package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dipstudio/internal/domain"
	"dipstudio/internal/httputil"
)

func TestPathParam(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /nodes/{id}", func(w http.ResponseWriter, r *http.Request) {
			value, ok := PathParam(w, r, "id", "node id")
			if !ok {
				t.Fatal("expected ok=true")
			}
			if value != "node_1" {
				t.Errorf("value = %q, want node_1", value)
			}
		})

		req := httptest.NewRequest("GET", "/nodes/node_1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
	})

	t.Run("missing responds 400", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /nodes/{id}", func(w http.ResponseWriter, r *http.Request) {
			_, ok := PathParam(w, r, "missing", "thing")
			if ok {
				t.Fatal("expected ok=false for a param not present in the route")
			}
		})

		req := httptest.NewRequest("GET", "/nodes/node_1", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestPathInt64(t *testing.T) {
	t.Run("valid integer", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /projects/{projectId}", func(w http.ResponseWriter, r *http.Request) {
			value, ok := PathInt64(w, r, "projectId", "project id")
			if !ok {
				t.Fatal("expected ok=true")
			}
			if value != 42 {
				t.Errorf("value = %d, want 42", value)
			}
		})

		req := httptest.NewRequest("GET", "/projects/42", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
	})

	t.Run("non-integer responds 400", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /projects/{projectId}", func(w http.ResponseWriter, r *http.Request) {
			_, ok := PathInt64(w, r, "projectId", "project id")
			if ok {
				t.Fatal("expected ok=false")
			}
		})

		req := httptest.NewRequest("GET", "/projects/not-a-number", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: name required", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("node %w", domain.ErrNotFound), http.StatusNotFound},
		{"conflict", &domain.ConflictError{Message: "project exists", ResourceType: "project"}, http.StatusConflict},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"unmapped error", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var problem httputil.ProblemDetail
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("body did not decode as ProblemDetail: %v", err)
			}
			if problem.Status != tt.wantStatus {
				t.Errorf("problem.Status = %d, want %d", problem.Status, tt.wantStatus)
			}
		})
	}
}
