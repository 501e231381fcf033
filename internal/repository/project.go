package repository

import (
	"context"
	"errors"
	"strings"

	"folio/internal/cache"
	"folio/internal/models"

	"gorm.io/gorm"
)

// ProjectFilter narrows and pages the project listing. Zero-valued fields are
// omitted from the query entirely rather than matching nothing.
type ProjectFilter struct {
	Category string
	Featured *bool
	Search   string
	Sort     string
	Page     int
	Limit    int
}

// sortColumns whitelists the sortable API fields. A leading "-" on the sort
// key flips the direction.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"viewCount": "view_count",
}

func orderClause(sort string) (string, bool) {
	if sort == "" {
		return "created_at DESC", true
	}
	direction := "ASC"
	if strings.HasPrefix(sort, "-") {
		direction = "DESC"
		sort = sort[1:]
	}
	column, ok := sortColumns[sort]
	if !ok {
		return "", false
	}
	return column + " " + direction, true
}

// ProjectRepository defines persistence operations for portfolio projects.
type ProjectRepository interface {
	List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	IncrementView(ctx context.Context, id uint) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) List(ctx context.Context, filter ProjectFilter) ([]models.Project, int64, error) {
	order, ok := orderClause(filter.Sort)
	if !ok {
		return nil, 0, models.NewValidationError(
			"sort must be one of createdAt, title, viewCount, optionally prefixed with -")
	}

	q := r.db.WithContext(ctx).Model(&models.Project{})

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		// Technologies are stored as serialized JSON, so a LIKE against the
		// column text matches any tag. Works the same on postgres and sqlite.
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(technologies) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var projects []models.Project
	err := q.Order(order).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return projects, total, nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	key := cache.ProjectKey(slug)

	err := cache.Aside(ctx, key, &project, cache.ProjectTTL, func() error {
		if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Project", slug)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateKeyError("Project with this slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	// A title change renames the slug; the entry cached under the stored slug
	// must drop too or GetBySlug keeps serving the pre-rename record.
	var prev models.Project
	if err := r.db.WithContext(ctx).Select("slug").First(&prev, project.ID).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateKeyError("Project with this slug already exists")
		}
		return models.NewInternalError(err)
	}

	if prev.Slug != "" && prev.Slug != project.Slug {
		cache.InvalidateProject(ctx, prev.Slug)
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Project", id)
		}
		return models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Delete(&models.Project{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProject(ctx, project.Slug)
	return nil
}

// IncrementView applies a single atomic counter update. Concurrent calls all
// land; a missing project is a silent no-op.
func (r *projectRepository) IncrementView(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
