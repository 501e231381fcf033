package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"folio/internal/models"
	"folio/internal/repository"
)

// ContentService owns section validation and the upsert/read flow for site content.
type ContentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService creates a ContentService.
func NewContentService(contentRepo repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// GetAll returns every configured section.
func (s *ContentService) GetAll(ctx context.Context) ([]models.Content, error) {
	return s.contentRepo.GetAll(ctx)
}

// GetSection returns the section document, or a synthetic empty record when
// the section has never been written. Unknown section names are rejected.
func (s *ContentService) GetSection(ctx context.Context, section string) (*models.Content, error) {
	if !models.IsValidSection(section) {
		return nil, models.NewValidationError("Invalid content section",
			models.FieldError{Field: "section", Message: sectionFieldMessage()})
	}

	content, err := s.contentRepo.GetBySection(ctx, section)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return models.EmptyContent(section), nil
	}
	return content, nil
}

// Upsert writes a section document on behalf of editor editorID. Repeated
// upserts with identical data stay a single record; updatedAt still advances.
func (s *ContentService) Upsert(ctx context.Context, section string, data json.RawMessage, editorID uint) (*models.Content, error) {
	if !models.IsValidSection(section) {
		return nil, models.NewValidationError("Invalid content section",
			models.FieldError{Field: "section", Message: sectionFieldMessage()})
	}
	if err := validateSectionData(section, data); err != nil {
		return nil, err
	}

	content := &models.Content{
		Section:   section,
		Data:      data,
		UpdatedBy: &editorID,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.contentRepo.Upsert(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Delete removes a section document.
func (s *ContentService) Delete(ctx context.Context, section string) error {
	if !models.IsValidSection(section) {
		return models.NewValidationError("Invalid content section",
			models.FieldError{Field: "section", Message: sectionFieldMessage()})
	}
	return s.contentRepo.Delete(ctx, section)
}

func sectionFieldMessage() string {
	return fmt.Sprintf("must be one of %v", models.ContentSections)
}

// validateSectionData applies per-section boundary rules. All known sections
// carry a JSON object; a handful of well-known fields are type-checked when
// present, everything else passes through as an opaque payload.
func validateSectionData(section string, data json.RawMessage) error {
	if len(data) == 0 {
		return models.NewValidationError("Content data is required",
			models.FieldError{Field: "data", Message: "is required"})
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.NewValidationError("Content data must be a JSON object",
			models.FieldError{Field: "data", Message: "must be a JSON object"})
	}

	stringFields := map[string][]string{
		models.SectionHero:    {"name", "title", "subtitle", "tagline"},
		models.SectionAbout:   {"headline", "bio"},
		models.SectionContact: {"email", "location"},
	}
	for _, field := range stringFields[section] {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return models.NewValidationError("Invalid content data",
				models.FieldError{Field: "data." + field, Message: "must be a string"})
		}
	}

	if section == models.SectionSkills {
		if raw, ok := payload["skills"]; ok {
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				return models.NewValidationError("Invalid content data",
					models.FieldError{Field: "data.skills", Message: "must be an array"})
			}
		}
	}

	return nil
}
