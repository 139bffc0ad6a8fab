package converter

import "dipstudio/internal/service/render"

// ExportMarkdown renders a document's raw rich-text JSON back out to
// Markdown-ish plain text, for download/export. It's the same projection
// the context-assembly service hands to an AI agent — export has no
// further requirement on fidelity than "readable," so no separate renderer
// is needed.
func ExportMarkdown(content []byte) string {
	return render.RenderReadableText(content)
}
