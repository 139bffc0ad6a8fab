package httputil

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, 201, map[string]string{"id": "abc"})

	if rec.Code != 201 {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body did not decode as JSON: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("body[id] = %q, want abc", body["id"])
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, 404, "node not found")

	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}

	var problem ProblemDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("response body did not decode as ProblemDetail: %v", err)
	}
	if problem.Status != 404 {
		t.Errorf("problem.Status = %d, want 404", problem.Status)
	}
	if problem.Detail != "node not found" {
		t.Errorf("problem.Detail = %q, want %q", problem.Detail, "node not found")
	}
	if problem.Title == "" {
		t.Error("problem.Title should be populated from http.StatusText")
	}
}
