package httputil

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body decodes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a page"}`))
		rec := httptest.NewRecorder()

		var dest payload
		if err := ParseJSON(rec, req, &dest); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dest.Name != "a page" {
			t.Errorf("Name = %q, want %q", dest.Name, "a page")
		}
	})

	t.Run("malformed body returns error", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		var dest payload
		if err := ParseJSON(rec, req, &dest); err == nil {
			t.Error("expected an error for malformed JSON, got nil")
		}
	})
}
