package converter

import "context"

// markdownConverter lifts Markdown source straight into document paragraphs.
// Markdown's blank-line-separated blocks already match the document
// paragraph boundary, so no markup stripping is needed.
type markdownConverter struct{}

// NewMarkdownConverter creates a new markdown converter.
func NewMarkdownConverter() ContentConverter {
	return &markdownConverter{}
}

func (c *markdownConverter) Convert(ctx context.Context, input []byte) (map[string]interface{}, error) {
	return paragraphsToDoc(string(input)), nil
}

func (c *markdownConverter) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

func (c *markdownConverter) Name() string {
	return "markdown"
}
