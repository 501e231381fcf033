package repository

import (
	"context"
	"errors"

	"folio/internal/cache"
	"folio/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentRepository defines persistence operations for site content sections.
type ContentRepository interface {
	GetAll(ctx context.Context) ([]models.Content, error)
	GetBySection(ctx context.Context, section string) (*models.Content, error)
	Upsert(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, section string) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository returns a new ContentRepository implementation.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) GetAll(ctx context.Context) ([]models.Content, error) {
	var sections []models.Content

	err := cache.Aside(ctx, cache.ContentAllKey, &sections, cache.ContentTTL, func() error {
		if err := r.db.WithContext(ctx).Order("section").Find(&sections).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// GetBySection returns (nil, nil) when the section has never been written.
func (r *contentRepository) GetBySection(ctx context.Context, section string) (*models.Content, error) {
	var content models.Content
	key := cache.ContentKey(section)

	found, err := cache.GetJSON(ctx, key, &content)
	if err == nil && found {
		return &content, nil
	}

	err = r.db.WithContext(ctx).Where("section = ?", section).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}

	_ = cache.SetJSON(ctx, key, &content, cache.ContentTTL)
	return &content, nil
}

// Upsert writes the section document, keyed by section name. The store-level
// conflict clause guarantees a single row per section under concurrent writes.
func (r *contentRepository) Upsert(ctx context.Context, content *models.Content) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_by", "updated_at"}),
	}).Create(content).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateContent(ctx, content.Section)
	return nil
}

func (r *contentRepository) Delete(ctx context.Context, section string) error {
	res := r.db.WithContext(ctx).Where("section = ?", section).Delete(&models.Content{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Content section", section)
	}

	cache.InvalidateContent(ctx, section)
	return nil
}
