package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Registry manages content converters and routes files by extension.
//
// Thread-safe for concurrent access.
type Registry struct {
	mu         sync.RWMutex
	converters map[string]ContentConverter // key: file extension (e.g., ".html")
}

// NewRegistry creates a registry with the standard converters pre-registered.
func NewRegistry() *Registry {
	registry := &Registry{
		converters: make(map[string]ContentConverter),
	}

	registry.Register(NewMarkdownConverter())
	registry.Register(NewTextConverter())
	registry.Register(NewHTMLConverter())

	return registry
}

// Register adds a converter and associates it with its supported
// extensions. Extensions are normalized to lowercase with a leading dot.
func (r *Registry) Register(converter ContentConverter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range converter.SupportedExtensions() {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		r.converters[ext] = converter
	}
}

// GetConverter retrieves a converter for the given file extension, or nil
// if none is registered for it. Lookup is case-insensitive.
func (r *Registry) GetConverter(fileExt string) ContentConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[strings.ToLower(fileExt)]
}

// Convert selects a converter by the filename's extension and runs it.
func (r *Registry) Convert(ctx context.Context, filename string, content []byte) (map[string]interface{}, error) {
	ext := filepath.Ext(filename)
	c := r.GetConverter(ext)
	if c == nil {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}

	return c.Convert(ctx, content)
}

// SupportedExtensions returns every registered file extension.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.converters))
	for ext := range r.converters {
		exts = append(exts, ext)
	}
	return exts
}
