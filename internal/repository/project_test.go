package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"folio/internal/cache"
	"folio/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(title, slug string, category models.ProjectCategory) *models.Project {
	return &models.Project{
		Title:        title,
		Slug:         slug,
		Description:  "A " + title + " project",
		Technologies: []string{"Go", "React"},
		Category:     category,
	}
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := newProject("Portfolio Site", "portfolio-site", models.CategoryManual)
	require.NoError(t, repo.Create(ctx, project))
	require.NotZero(t, project.ID)

	got, err := repo.GetBySlug(ctx, "portfolio-site")
	require.NoError(t, err)
	assert.Equal(t, "Portfolio Site", got.Title)
	assert.Equal(t, []string{"Go", "React"}, got.Technologies)

	byID, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Slug, byID.Slug)
}

func TestProjectRepository_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProject("First", "same-slug", models.CategoryManual)))

	err := repo.Create(ctx, newProject("Second", "same-slug", models.CategoryHybrid))
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDuplicateKey, appErr.Code)
}

func TestProjectRepository_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	_, err := repo.GetBySlug(ctx, "nope")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	_, err = repo.GetByID(ctx, 9999)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestProjectRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	featured := newProject("Neural Painter", "neural-painter", models.CategoryAIGenerated)
	featured.Featured = true
	featured.Technologies = []string{"Go", "PyTorch"}
	require.NoError(t, repo.Create(ctx, featured))
	require.NoError(t, repo.Create(ctx, newProject("Hand Rolled CMS", "hand-rolled-cms", models.CategoryManual)))
	require.NoError(t, repo.Create(ctx, newProject("Mixed Mode App", "mixed-mode-app", models.CategoryHybrid)))

	t.Run("By category", func(t *testing.T) {
		projects, total, err := repo.List(ctx, ProjectFilter{Category: string(models.CategoryManual)})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, projects, 1)
		assert.Equal(t, "hand-rolled-cms", projects[0].Slug)
	})

	t.Run("By featured", func(t *testing.T) {
		isFeatured := true
		projects, total, err := repo.List(ctx, ProjectFilter{Featured: &isFeatured})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, projects, 1)
		assert.Equal(t, "neural-painter", projects[0].Slug)
	})

	t.Run("Search matches title", func(t *testing.T) {
		_, total, err := repo.List(ctx, ProjectFilter{Search: "painter"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("Search matches technologies", func(t *testing.T) {
		projects, total, err := repo.List(ctx, ProjectFilter{Search: "pytorch"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, projects, 1)
		assert.Equal(t, "neural-painter", projects[0].Slug)
	})

	t.Run("Pagination", func(t *testing.T) {
		projects, total, err := repo.List(ctx, ProjectFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, projects, 1)
	})

	t.Run("Sort by title ascending", func(t *testing.T) {
		projects, _, err := repo.List(ctx, ProjectFilter{Sort: "title"})
		require.NoError(t, err)
		require.Len(t, projects, 3)
		assert.Equal(t, "hand-rolled-cms", projects[0].Slug)
		assert.Equal(t, "neural-painter", projects[2].Slug)
	})

	t.Run("Unknown sort key is rejected", func(t *testing.T) {
		_, _, err := repo.List(ctx, ProjectFilter{Sort: "password"})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})
}

func TestProjectRepository_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := newProject("Old Title", "old-title", models.CategoryManual)
	require.NoError(t, repo.Create(ctx, project))

	project.Title = "New Title"
	project.Featured = true
	require.NoError(t, repo.Update(ctx, project))

	got, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.True(t, got.Featured)

	require.NoError(t, repo.Delete(ctx, project.ID))

	err = repo.Delete(ctx, project.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestProjectRepository_UpdateDropsOldSlugCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := newProject("Weather Dashboard", "weather-dashboard", models.CategoryManual)
	require.NoError(t, repo.Create(ctx, project))

	// Warm the cache under the original slug.
	got, err := repo.GetBySlug(ctx, "weather-dashboard")
	require.NoError(t, err)
	require.Equal(t, project.ID, got.ID)

	project.Title = "Climate Dashboard"
	project.Slug = "climate-dashboard"
	require.NoError(t, repo.Update(ctx, project))

	_, err = repo.GetBySlug(ctx, "weather-dashboard")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	got, err = repo.GetBySlug(ctx, "climate-dashboard")
	require.NoError(t, err)
	assert.Equal(t, "Climate Dashboard", got.Title)
}

func TestProjectRepository_IncrementView(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	project := newProject("Counted", "counted", models.CategoryManual)
	require.NoError(t, repo.Create(ctx, project))

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrementView(ctx, project.ID))
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, n, got.ViewCount)

	// Unknown ID must be a silent no-op.
	assert.NoError(t, repo.IncrementView(ctx, 9999))
}
