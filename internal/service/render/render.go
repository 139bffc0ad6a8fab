// Package render turns a function node's rich-text document JSON into a
// readable, Markdown-ish plain-text projection for consumption by an
// external AI coding agent.
package render

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// RenderReadableText converts a TipTap-style rich-text document (raw JSON
// bytes, typically rooted at a "doc" node) into readable text. An empty or
// malformed document renders to the empty string.
func RenderReadableText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	return renderNode(gjson.ParseBytes(raw))
}

// renderNode renders a single node and, for unrecognised node types,
// recurses into its content. A non-object value (the recursion base case
// for malformed input) renders to its own string form.
func renderNode(n gjson.Result) string {
	if !n.Exists() {
		return ""
	}
	if !n.IsObject() {
		return n.String()
	}

	nodeType := n.Get("type").String()
	content := childNodes(n)

	switch nodeType {
	case "text":
		return strings.TrimSpace(n.Get("text").String())

	case "doc":
		return strings.TrimSpace(joinBlocks(content))

	case "paragraph":
		return inlineText(content) + "\n"

	case "heading":
		level := 1
		if lv := n.Get("attrs.level"); lv.Exists() {
			level = clamp(int(lv.Int()), 1, 6)
		}
		return strings.Repeat("#", level) + " " + strings.TrimSpace(inlineText(content)) + "\n"

	case "bulletList":
		return listItems(content, "- ", false) + "\n"

	case "orderedList":
		return listItems(content, "", true) + "\n"

	case "listItem":
		raw := strings.TrimSpace(joinBlocks(content))
		if raw == "" {
			return ""
		}
		return strings.ReplaceAll(raw, "\n", "\n  ") + "\n"

	case "blockquote":
		raw := strings.TrimSpace(joinBlocks(content))
		lines := strings.Split(raw, "\n")
		for i, l := range lines {
			lines[i] = "> " + l
		}
		return strings.Join(lines, "\n") + "\n"

	case "codeBlock":
		raw := inlineText(content)
		lang := strings.TrimSpace(n.Get("attrs.language").String())
		if lang != "" {
			return fmt.Sprintf("```%s\n%s\n```\n", lang, raw)
		}
		return fmt.Sprintf("```\n%s\n```\n", raw)

	case "horizontalRule":
		return "---\n"

	default:
		return joinBlocks(content)
	}
}

// childNodes returns a node's "content" array as a slice, or nil if absent
// or not an array.
func childNodes(n gjson.Result) []gjson.Result {
	content := n.Get("content")
	if !content.IsArray() {
		return nil
	}
	return content.Array()
}

// inlineText flattens an inline content list (e.g. a paragraph's content)
// into a single line of text.
func inlineText(nodes []gjson.Result) string {
	var b strings.Builder
	for _, n := range nodes {
		if !n.IsObject() {
			continue
		}
		switch n.Get("type").String() {
		case "text":
			b.WriteString(n.Get("text").String())
		case "hardBreak":
			b.WriteString("\n")
		default:
			b.WriteString(renderNode(n))
		}
	}
	return strings.ReplaceAll(b.String(), "\n\n", "\n")
}

// joinBlocks concatenates the rendered text of a list of block-level nodes.
func joinBlocks(nodes []gjson.Result) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(renderNode(n))
	}
	return b.String()
}

// listItems renders a bulletList/orderedList's items, prefixing the first
// line of each with a bullet or number and indenting continuation lines.
func listItems(nodes []gjson.Result, bullet string, ordered bool) string {
	var lines []string
	for i, n := range nodes {
		raw := strings.TrimSpace(renderNode(n))
		if raw == "" {
			continue
		}
		prefix := bullet
		if ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		for _, line := range strings.Split(raw, "\n") {
			if line != "" {
				lines = append(lines, prefix+line)
			} else {
				lines = append(lines, "")
			}
			prefix = "  "
		}
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
