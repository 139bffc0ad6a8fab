package converter

import "context"

// textConverter lifts plain text into document paragraphs, one per
// blank-line-separated block.
type textConverter struct{}

// NewTextConverter creates a new plain-text converter.
func NewTextConverter() ContentConverter {
	return &textConverter{}
}

func (c *textConverter) Convert(ctx context.Context, input []byte) (map[string]interface{}, error) {
	return paragraphsToDoc(string(input)), nil
}

func (c *textConverter) SupportedExtensions() []string {
	return []string{".txt", ".text"}
}

func (c *textConverter) Name() string {
	return "plaintext"
}
