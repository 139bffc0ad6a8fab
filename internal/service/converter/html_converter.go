package converter

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"dipstudio/internal/service/converter/sanitizer"
)

// htmlConverter converts HTML files into a rich-text document. It runs a
// two-stage process: sanitize the HTML to remove dangerous elements (XSS
// prevention), then flatten the sanitized markup to plain text via
// html-to-markdown before lifting it into document paragraphs.
type htmlConverter struct {
	sanitizer *sanitizer.HTMLSanitizer
	converter *md.Converter
}

// NewHTMLConverter creates a new HTML converter. It sanitizes HTML before
// conversion to prevent XSS attacks.
func NewHTMLConverter() ContentConverter {
	return &htmlConverter{
		sanitizer: sanitizer.NewHTMLSanitizer(),
		converter: md.NewConverter("", true, nil),
	}
}

func (c *htmlConverter) Convert(ctx context.Context, input []byte) (map[string]interface{}, error) {
	sanitized, err := c.sanitizer.Sanitize(string(input))
	if err != nil {
		return nil, fmt.Errorf("sanitize html: %w", err)
	}

	text, err := c.converter.ConvertString(sanitized)
	if err != nil {
		return nil, fmt.Errorf("convert html to text: %w", err)
	}

	return paragraphsToDoc(text), nil
}

func (c *htmlConverter) SupportedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *htmlConverter) Name() string {
	return "html"
}
