package repositories

import (
	"context"

	"dipstudio/internal/domain/models"
)

// FunctionDocumentRepository defines data access operations for a function
// node's document metadata row. The document's actual rich-text content is
// handled separately by DocumentContentRepository.
type FunctionDocumentRepository interface {
	// Create inserts a new, empty document record for a function node.
	Create(ctx context.Context, doc *models.FunctionDocument) error

	GetByFunctionNodeID(ctx context.Context, functionNodeID string) (*models.FunctionDocument, error)

	// Touch updates EditorID/EditorName/EditedAt after a content change.
	Touch(ctx context.Context, doc *models.FunctionDocument) error

	Delete(ctx context.Context, functionNodeID string) error
}

// DocumentContentRepository stores and mutates the raw JSON content of a
// function document (a TipTap-style rich-text document tree).
type DocumentContentRepository interface {
	// Get returns the raw content JSON for a document, or an empty document
	// object if none has been written yet.
	Get(ctx context.Context, documentID int64) ([]byte, error)

	// Set overwrites the document's content wholesale.
	Set(ctx context.Context, documentID int64, content []byte) error

	// Patch applies an RFC 6902 JSON Patch document to the stored content
	// and persists the result, returning the patched content.
	Patch(ctx context.Context, documentID int64, patch []byte) ([]byte, error)

	Delete(ctx context.Context, documentID int64) error
}
