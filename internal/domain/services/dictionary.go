package services

import (
	"context"

	"dipstudio/internal/domain/models"
)

// CreateDictionaryEntryRequest represents a request to add a term to a
// project's dictionary.
type CreateDictionaryEntryRequest struct {
	ProjectID  int64
	Term       string
	Definition string
}

// UpdateDictionaryEntryRequest represents a request to edit a dictionary
// entry.
type UpdateDictionaryEntryRequest struct {
	Term       *string
	Definition *string
}

// DictionaryService defines business logic for a project's term/definition
// dictionary, used to give the AI agent a shared vocabulary when assembling
// context for a function.
type DictionaryService interface {
	CreateEntry(ctx context.Context, req *CreateDictionaryEntryRequest) (*models.DictionaryEntry, error)

	ListEntries(ctx context.Context, projectID int64) ([]models.DictionaryEntry, error)

	UpdateEntry(ctx context.Context, projectID, id int64, req *UpdateDictionaryEntryRequest) (*models.DictionaryEntry, error)

	DeleteEntry(ctx context.Context, projectID, id int64) error
}
