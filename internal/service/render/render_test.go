package render

import "testing"

func TestRenderReadableText(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "empty bytes",
			doc:  "",
			want: "",
		},
		{
			name: "empty object",
			doc:  `{}`,
			want: "",
		},
		{
			name: "single paragraph",
			doc: `{"type":"doc","content":[
				{"type":"paragraph","content":[{"type":"text","text":"hello world"}]}
			]}`,
			want: "hello world",
		},
		{
			name: "heading level 2",
			doc: `{"type":"doc","content":[
				{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Title"}]}
			]}`,
			want: "## Title",
		},
		{
			name: "heading level clamps above 6",
			doc: `{"type":"doc","content":[
				{"type":"heading","attrs":{"level":9},"content":[{"type":"text","text":"Title"}]}
			]}`,
			want: "###### Title",
		},
		{
			name: "bullet list",
			doc: `{"type":"doc","content":[
				{"type":"bulletList","content":[
					{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"first"}]}]},
					{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"second"}]}]}
				]}
			]}`,
			want: "- first\n- second",
		},
		{
			name: "ordered list numbers items",
			doc: `{"type":"doc","content":[
				{"type":"orderedList","content":[
					{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"one"}]}]},
					{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"two"}]}]}
				]}
			]}`,
			want: "1. one\n2. two",
		},
		{
			name: "code block with language",
			doc: `{"type":"doc","content":[
				{"type":"codeBlock","attrs":{"language":"go"},"content":[{"type":"text","text":"fmt.Println()"}]}
			]}`,
			want: "```go\nfmt.Println()\n```",
		},
		{
			name: "blockquote prefixes every line",
			doc: `{"type":"doc","content":[
				{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"quoted"}]}]}
			]}`,
			want: "> quoted",
		},
		{
			name: "horizontal rule",
			doc: `{"type":"doc","content":[{"type":"horizontalRule"}]}`,
			want: "---",
		},
		{
			name: "unrecognised node type with no content renders empty",
			doc:  `{"type":"somethingUnknown"}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderReadableText([]byte(tt.doc))
			if got != tt.want {
				t.Errorf("RenderReadableText(%s) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
