package converter

import "testing"

func TestExportMarkdown(t *testing.T) {
	doc := `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello"}]}]}`

	got := ExportMarkdown([]byte(doc))
	if got != "hello" {
		t.Errorf("ExportMarkdown = %q, want %q", got, "hello")
	}
}

func TestExportMarkdown_EmptyDocument(t *testing.T) {
	if got := ExportMarkdown([]byte(`{}`)); got != "" {
		t.Errorf("ExportMarkdown(empty doc) = %q, want empty string", got)
	}
}
