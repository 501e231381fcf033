package service

import (
	"context"

	"folio/internal/models"
	"folio/internal/repository"
	"folio/internal/util"
)

const (
	maxTitleLen           = 100
	maxDescriptionLen     = 500
	maxFullDescriptionLen = 10000
)

// ProjectService owns project validation, slug derivation, and CRUD flow.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// CreateProjectInput is the admin-facing payload for creating a project.
type CreateProjectInput struct {
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	FullDescription string               `json:"fullDescription"`
	Technologies    []string             `json:"technologies"`
	Category        string               `json:"category"`
	Images          models.ProjectImages `json:"images"`
	LiveURL         string               `json:"liveUrl"`
	GithubURL       string               `json:"githubUrl"`
	Featured        bool                 `json:"featured"`
	AIPrompts       []string             `json:"aiPrompts"`
}

// UpdateProjectInput carries a partial update; nil fields are left untouched.
type UpdateProjectInput struct {
	Title           *string               `json:"title"`
	Description     *string               `json:"description"`
	FullDescription *string               `json:"fullDescription"`
	Technologies    *[]string             `json:"technologies"`
	Category        *string               `json:"category"`
	Images          *models.ProjectImages `json:"images"`
	LiveURL         *string               `json:"liveUrl"`
	GithubURL       *string               `json:"githubUrl"`
	Featured        *bool                 `json:"featured"`
	AIPrompts       *[]string             `json:"aiPrompts"`
}

// ListProjectsInput narrows and pages the public listing.
type ListProjectsInput struct {
	Category string
	Featured *bool
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// NewProjectService creates a ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// List returns a page of projects plus the total matching count.
func (s *ProjectService) List(ctx context.Context, in ListProjectsInput) ([]models.Project, int64, error) {
	if in.Category != "" && !models.ProjectCategory(in.Category).Valid() {
		return nil, 0, models.NewValidationError("Invalid category",
			models.FieldError{Field: "category", Message: "must be one of ai-generated, manual, hybrid"})
	}
	return s.projectRepo.List(ctx, repository.ProjectFilter{
		Category: in.Category,
		Featured: in.Featured,
		Search:   in.Search,
		Sort:     in.Sort,
		Page:     in.Page,
		Limit:    in.Limit,
	})
}

// GetBySlug returns a single project by its slug.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return s.projectRepo.GetBySlug(ctx, slug)
}

// TrackView applies the atomic view-counter increment for a project.
func (s *ProjectService) TrackView(ctx context.Context, id uint) error {
	return s.projectRepo.IncrementView(ctx, id)
}

// Create validates the payload, derives the slug from the title, and persists.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	if in.Category == "" {
		in.Category = string(models.CategoryManual)
	}
	fields := validateProjectFields(in.Title, in.Description, in.FullDescription, in.Category)

	slug := util.Slugify(in.Title)
	if len(fields) == 0 && slug == "" {
		fields = append(fields, models.FieldError{Field: "title", Message: "must contain at least one alphanumeric character"})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid project data", fields...)
	}

	project := &models.Project{
		Title:           in.Title,
		Slug:            slug,
		Description:     in.Description,
		FullDescription: in.FullDescription,
		Technologies:    in.Technologies,
		Category:        models.ProjectCategory(in.Category),
		Images:          in.Images,
		LiveURL:         in.LiveURL,
		GithubURL:       in.GithubURL,
		Featured:        in.Featured,
		AIPrompts:       in.AIPrompts,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies a partial update; a changed title re-derives the slug.
func (s *ProjectService) Update(ctx context.Context, id uint, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.FullDescription != nil {
		project.FullDescription = *in.FullDescription
	}
	if in.Technologies != nil {
		project.Technologies = *in.Technologies
	}
	if in.Category != nil {
		project.Category = models.ProjectCategory(*in.Category)
	}
	if in.Images != nil {
		project.Images = *in.Images
	}
	if in.LiveURL != nil {
		project.LiveURL = *in.LiveURL
	}
	if in.GithubURL != nil {
		project.GithubURL = *in.GithubURL
	}
	if in.Featured != nil {
		project.Featured = *in.Featured
	}
	if in.AIPrompts != nil {
		project.AIPrompts = *in.AIPrompts
	}

	fields := validateProjectFields(project.Title, project.Description, project.FullDescription, string(project.Category))
	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid project data", fields...)
	}

	if in.Title != nil {
		slug := util.Slugify(project.Title)
		if slug == "" {
			return nil, models.NewValidationError("Invalid project data",
				models.FieldError{Field: "title", Message: "must contain at least one alphanumeric character"})
		}
		project.Slug = slug
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project permanently.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	return s.projectRepo.Delete(ctx, id)
}

func validateProjectFields(title, description, fullDescription, category string) []models.FieldError {
	var fields []models.FieldError
	if title == "" {
		fields = append(fields, models.FieldError{Field: "title", Message: "is required"})
	} else if len(title) > maxTitleLen {
		fields = append(fields, models.FieldError{Field: "title", Message: "must be at most 100 characters"})
	}
	if description == "" {
		fields = append(fields, models.FieldError{Field: "description", Message: "is required"})
	} else if len(description) > maxDescriptionLen {
		fields = append(fields, models.FieldError{Field: "description", Message: "must be at most 500 characters"})
	}
	if len(fullDescription) > maxFullDescriptionLen {
		fields = append(fields, models.FieldError{Field: "fullDescription", Message: "must be at most 10000 characters"})
	}
	if !models.ProjectCategory(category).Valid() {
		fields = append(fields, models.FieldError{Field: "category", Message: "must be one of ai-generated, manual, hybrid"})
	}
	return fields
}
