// Package converter turns externally-authored documents (HTML, Markdown,
// plain text) into the rich-text JSON tree the document engine renders, and
// exports a document back out to Markdown.
package converter

import (
	"context"
	"strings"
)

// ContentConverter turns raw file content into a TipTap-style rich-text
// document: {"type": "doc", "content": [...]}.
type ContentConverter interface {
	Convert(ctx context.Context, input []byte) (map[string]interface{}, error)
	SupportedExtensions() []string
	Name() string
}

// paragraphsToDoc builds a minimal rich-text document from plain text,
// splitting on blank lines and rendering each block as a paragraph of text.
// This is the conversion's common ground state: every converter reduces its
// input to plain text first (HTML via sanitize+markdown, Markdown/text
// as-is), then lifts that text into document nodes here.
func paragraphsToDoc(text string) map[string]interface{} {
	var blocks []interface{}
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		blocks = append(blocks, map[string]interface{}{
			"type": "paragraph",
			"content": []interface{}{
				map[string]interface{}{"type": "text", "text": block},
			},
		})
	}
	if blocks == nil {
		blocks = []interface{}{}
	}
	return map[string]interface{}{
		"type":    "doc",
		"content": blocks,
	}
}
