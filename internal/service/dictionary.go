package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dipstudio/internal/config"
	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
	"dipstudio/internal/domain/services"
)

// dictionaryService implements services.DictionaryService.
type dictionaryService struct {
	dictionaryRepo repositories.DictionaryRepository
	logger         *slog.Logger
}

// NewDictionaryService creates a new dictionary service.
func NewDictionaryService(dictionaryRepo repositories.DictionaryRepository, logger *slog.Logger) services.DictionaryService {
	return &dictionaryService{dictionaryRepo: dictionaryRepo, logger: logger}
}

func (s *dictionaryService) CreateEntry(ctx context.Context, req *services.CreateDictionaryEntryRequest) (*models.DictionaryEntry, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Term, validation.Required, validation.Length(1, config.MaxDictionaryTermLength)),
		validation.Field(&req.Definition, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	entry := &models.DictionaryEntry{
		ProjectID:  req.ProjectID,
		Term:       strings.TrimSpace(req.Term),
		Definition: req.Definition,
	}
	if err := s.dictionaryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("dictionary entry created", "id", entry.ID, "project_id", entry.ProjectID)
	return entry, nil
}

func (s *dictionaryService) ListEntries(ctx context.Context, projectID int64) ([]models.DictionaryEntry, error) {
	return s.dictionaryRepo.List(ctx, projectID)
}

func (s *dictionaryService) UpdateEntry(ctx context.Context, projectID, id int64, req *services.UpdateDictionaryEntryRequest) (*models.DictionaryEntry, error) {
	entry, err := s.dictionaryRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if req.Term != nil {
		term := strings.TrimSpace(*req.Term)
		if err := validation.Validate(term, validation.Required, validation.Length(1, config.MaxDictionaryTermLength)); err != nil {
			return nil, fmt.Errorf("%w: term: %v", domain.ErrValidation, err)
		}
		entry.Term = term
	}
	if req.Definition != nil {
		if err := validation.Validate(*req.Definition, validation.Required); err != nil {
			return nil, fmt.Errorf("%w: definition: %v", domain.ErrValidation, err)
		}
		entry.Definition = *req.Definition
	}

	if err := s.dictionaryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("dictionary entry updated", "id", entry.ID)
	return entry, nil
}

func (s *dictionaryService) DeleteEntry(ctx context.Context, projectID, id int64) error {
	if err := s.dictionaryRepo.Delete(ctx, projectID, id); err != nil {
		return err
	}
	s.logger.Info("dictionary entry deleted", "id", id)
	return nil
}
