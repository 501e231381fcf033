package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"folio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contentRepoStub is a stub for repository.ContentRepository.
type contentRepoStub struct {
	getAllFn       func(context.Context) ([]models.Content, error)
	getBySectionFn func(context.Context, string) (*models.Content, error)
	upsertFn       func(context.Context, *models.Content) error
	deleteFn       func(context.Context, string) error
}

func (s *contentRepoStub) GetAll(ctx context.Context) ([]models.Content, error) {
	return s.getAllFn(ctx)
}
func (s *contentRepoStub) GetBySection(ctx context.Context, section string) (*models.Content, error) {
	return s.getBySectionFn(ctx, section)
}
func (s *contentRepoStub) Upsert(ctx context.Context, content *models.Content) error {
	return s.upsertFn(ctx, content)
}
func (s *contentRepoStub) Delete(ctx context.Context, section string) error {
	return s.deleteFn(ctx, section)
}

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestContentService_GetSection_UnknownName(t *testing.T) {
	svc := NewContentService(&contentRepoStub{})

	_, err := svc.GetSection(context.Background(), "blog")
	assertAppErrCode(t, err, models.CodeValidation)
}

func TestContentService_GetSection_NeverWrittenIsEmptyState(t *testing.T) {
	svc := NewContentService(&contentRepoStub{
		getBySectionFn: func(context.Context, string) (*models.Content, error) {
			return nil, nil
		},
	})

	content, err := svc.GetSection(context.Background(), models.SectionHero)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, models.SectionHero, content.Section)
	assert.JSONEq(t, `{}`, string(content.Data))
}

func TestContentService_Upsert(t *testing.T) {
	t.Run("Stamps editor and time", func(t *testing.T) {
		var stored *models.Content
		svc := NewContentService(&contentRepoStub{
			upsertFn: func(_ context.Context, c *models.Content) error {
				stored = c
				return nil
			},
		})

		content, err := svc.Upsert(context.Background(), models.SectionHero,
			json.RawMessage(`{"name":"Ada Lovelace"}`), 7)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.NotNil(t, stored.UpdatedBy)
		assert.EqualValues(t, 7, *stored.UpdatedBy)
		assert.False(t, stored.UpdatedAt.IsZero())
		assert.Equal(t, stored, content)
	})

	t.Run("Rejects unknown section", func(t *testing.T) {
		svc := NewContentService(&contentRepoStub{})
		_, err := svc.Upsert(context.Background(), "banner", json.RawMessage(`{}`), 1)
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("Rejects non-object data", func(t *testing.T) {
		svc := NewContentService(&contentRepoStub{})
		_, err := svc.Upsert(context.Background(), models.SectionHero, json.RawMessage(`[1,2]`), 1)
		assertAppErrCode(t, err, models.CodeValidation)

		_, err = svc.Upsert(context.Background(), models.SectionHero, nil, 1)
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("Rejects wrong field types", func(t *testing.T) {
		svc := NewContentService(&contentRepoStub{})
		_, err := svc.Upsert(context.Background(), models.SectionHero,
			json.RawMessage(`{"name":123}`), 1)
		assertAppErrCode(t, err, models.CodeValidation)

		_, err = svc.Upsert(context.Background(), models.SectionSkills,
			json.RawMessage(`{"skills":"Go"}`), 1)
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("Unknown fields pass through", func(t *testing.T) {
		svc := NewContentService(&contentRepoStub{
			upsertFn: func(context.Context, *models.Content) error { return nil },
		})
		_, err := svc.Upsert(context.Background(), models.SectionSettings,
			json.RawMessage(`{"theme":"dark","anything":{"nested":true}}`), 1)
		assert.NoError(t, err)
	})
}

func TestContentService_Delete_UnknownSection(t *testing.T) {
	svc := NewContentService(&contentRepoStub{})
	err := svc.Delete(context.Background(), "banner")
	assertAppErrCode(t, err, models.CodeValidation)
}
