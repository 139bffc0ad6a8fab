package services

import "context"

// DocumentService defines business logic for reading and mutating a
// function node's document content (a TipTap-style rich-text JSON tree).
type DocumentService interface {
	// GetContent returns the raw content JSON for a function node's
	// document.
	GetContent(ctx context.Context, projectID int64, functionNodeID string) ([]byte, error)

	// SetContent overwrites a function node's document content wholesale
	// and touches its editor/edited_at metadata.
	SetContent(ctx context.Context, projectID int64, functionNodeID string, content []byte, editorID, editorName string) ([]byte, error)

	// PatchContent applies an RFC 6902 JSON Patch document to a function
	// node's document content, persists the result, and touches its
	// editor/edited_at metadata.
	PatchContent(ctx context.Context, projectID int64, functionNodeID string, patch []byte, editorID, editorName string) ([]byte, error)
}
