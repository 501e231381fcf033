package service

import (
	"context"
	"strings"
	"testing"

	"folio/internal/models"
	"folio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRepoStub is a stub for repository.ProjectRepository.
type projectRepoStub struct {
	listFn          func(context.Context, repository.ProjectFilter) ([]models.Project, int64, error)
	getByIDFn       func(context.Context, uint) (*models.Project, error)
	getBySlugFn     func(context.Context, string) (*models.Project, error)
	createFn        func(context.Context, *models.Project) error
	updateFn        func(context.Context, *models.Project) error
	deleteFn        func(context.Context, uint) error
	incrementViewFn func(context.Context, uint) error
}

func (s *projectRepoStub) List(ctx context.Context, f repository.ProjectFilter) ([]models.Project, int64, error) {
	return s.listFn(ctx, f)
}
func (s *projectRepoStub) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return s.getByIDFn(ctx, id)
}
func (s *projectRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *projectRepoStub) Create(ctx context.Context, p *models.Project) error {
	return s.createFn(ctx, p)
}
func (s *projectRepoStub) Update(ctx context.Context, p *models.Project) error {
	return s.updateFn(ctx, p)
}
func (s *projectRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *projectRepoStub) IncrementView(ctx context.Context, id uint) error {
	return s.incrementViewFn(ctx, id)
}

func TestProjectService_Create(t *testing.T) {
	t.Run("Derives slug from title", func(t *testing.T) {
		var created *models.Project
		svc := NewProjectService(&projectRepoStub{
			createFn: func(_ context.Context, p *models.Project) error {
				created = p
				return nil
			},
		})

		project, err := svc.Create(context.Background(), CreateProjectInput{
			Title:       "Café Résumé Builder!",
			Description: "Generates résumés",
			Category:    string(models.CategoryAIGenerated),
		})
		require.NoError(t, err)
		assert.Equal(t, "cafe-resume-builder", created.Slug)
		assert.Equal(t, project, created)
	})

	t.Run("Validation failures", func(t *testing.T) {
		svc := NewProjectService(&projectRepoStub{})

		tests := []struct {
			name  string
			input CreateProjectInput
			field string
		}{
			{
				"Missing title",
				CreateProjectInput{Description: "d", Category: "manual"},
				"title",
			},
			{
				"Title too long",
				CreateProjectInput{Title: strings.Repeat("a", 101), Description: "d", Category: "manual"},
				"title",
			},
			{
				"Description too long",
				CreateProjectInput{Title: "t", Description: strings.Repeat("a", 501), Category: "manual"},
				"description",
			},
			{
				"Bad category",
				CreateProjectInput{Title: "t", Description: "d", Category: "handmade"},
				"category",
			},
			{
				"Symbols-only title has no slug",
				CreateProjectInput{Title: "!!!", Description: "d", Category: "manual"},
				"title",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), tt.input)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, models.CodeValidation, appErr.Code)
				require.NotEmpty(t, appErr.Fields)
				assert.Equal(t, tt.field, appErr.Fields[0].Field)
			})
		}
	})
}

func TestProjectService_Update(t *testing.T) {
	existing := func() *models.Project {
		return &models.Project{
			ID:          1,
			Title:       "Old Title",
			Slug:        "old-title",
			Description: "old description",
			Category:    models.CategoryManual,
			Featured:    false,
		}
	}

	t.Run("Partial update leaves absent fields untouched", func(t *testing.T) {
		var saved *models.Project
		svc := NewProjectService(&projectRepoStub{
			getByIDFn: func(context.Context, uint) (*models.Project, error) {
				return existing(), nil
			},
			updateFn: func(_ context.Context, p *models.Project) error {
				saved = p
				return nil
			},
		})

		featured := true
		_, err := svc.Update(context.Background(), 1, UpdateProjectInput{Featured: &featured})
		require.NoError(t, err)
		assert.True(t, saved.Featured)
		assert.Equal(t, "Old Title", saved.Title)
		assert.Equal(t, "old-title", saved.Slug, "slug unchanged without a new title")
	})

	t.Run("New title re-derives slug", func(t *testing.T) {
		var saved *models.Project
		svc := NewProjectService(&projectRepoStub{
			getByIDFn: func(context.Context, uint) (*models.Project, error) {
				return existing(), nil
			},
			updateFn: func(_ context.Context, p *models.Project) error {
				saved = p
				return nil
			},
		})

		title := "Shiny New Name"
		_, err := svc.Update(context.Background(), 1, UpdateProjectInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "shiny-new-name", saved.Slug)
	})

	t.Run("Missing project", func(t *testing.T) {
		svc := NewProjectService(&projectRepoStub{
			getByIDFn: func(context.Context, uint) (*models.Project, error) {
				return nil, models.NewNotFoundError("Project", uint(9))
			},
		})

		title := "t"
		_, err := svc.Update(context.Background(), 9, UpdateProjectInput{Title: &title})
		assertAppErrCode(t, err, models.CodeNotFound)
	})
}

func TestProjectService_List_InvalidCategory(t *testing.T) {
	svc := NewProjectService(&projectRepoStub{})
	_, _, err := svc.List(context.Background(), ListProjectsInput{Category: "bogus"})
	assertAppErrCode(t, err, models.CodeValidation)
}
