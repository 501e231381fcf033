package repository

import (
	"context"
	"time"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsRepository defines persistence operations for page-view tracking
// and the visitor aggregates built on top of it.
type AnalyticsRepository interface {
	RecordPageView(ctx context.Context, session *models.AnalyticsSession, view *models.PageView) error
	GetSession(ctx context.Context, sessionID string) (*models.AnalyticsSession, error)
	Visitors(ctx context.Context, since time.Time, page, limit int) ([]models.AnalyticsSession, int64, error)
	Stats(ctx context.Context, start, end time.Time) (*models.VisitorStats, error)
	PopularPages(ctx context.Context, limit int) ([]models.PagePopularity, error)
	Trend(ctx context.Context, days int) ([]models.TrendPoint, error)
}

type analyticsRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewAnalyticsRepository returns a new AnalyticsRepository implementation.
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db, log: observability.NewRepoLogger("analytics_sessions")}
}

// RecordPageView upserts the session keyed by sessionId and appends one page
// entry. FirstVisit is only written on insert; every later event just advances
// LastVisit and refreshes the client metadata.
func (r *analyticsRepository) RecordPageView(ctx context.Context, session *models.AnalyticsSession, view *models.PageView) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ip_address", "user_agent", "referrer", "device", "last_visit",
		}),
	}).Create(session).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	// The conflict path does not report the existing row ID, so resolve it.
	var ref struct{ ID uint }
	err = r.db.WithContext(ctx).
		Model(&models.AnalyticsSession{}).
		Select("id").
		Where("session_id = ?", session.SessionID).
		First(&ref).Error
	if err != nil {
		return models.NewInternalError(err)
	}

	view.SessionRef = ref.ID
	if err := r.db.WithContext(ctx).Create(view).Error; err != nil {
		r.log.LogError(ctx, err, "record_page_view")
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "record_page_view", map[string]interface{}{
		"session_id": session.SessionID,
		"path":       view.Path,
	})
	return nil
}

func (r *analyticsRepository) GetSession(ctx context.Context, sessionID string) (*models.AnalyticsSession, error) {
	var session models.AnalyticsSession
	err := r.db.WithContext(ctx).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("viewed_at")
		}).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Session", sessionID)
		}
		return nil, models.NewInternalError(err)
	}
	return &session, nil
}

// Visitors lists sessions newest-activity-first. A non-zero since restricts
// the listing to sessions whose last visit falls in the window.
func (r *analyticsRepository) Visitors(ctx context.Context, since time.Time, page, limit int) ([]models.AnalyticsSession, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if since.IsZero() {
			return db
		}
		return db.Where("last_visit >= ?", since)
	}

	var total int64
	if err := scope(r.db.WithContext(ctx).Model(&models.AnalyticsSession{})).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	var sessions []models.AnalyticsSession
	err := scope(r.db.WithContext(ctx)).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("viewed_at")
		}).
		Order("last_visit DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return sessions, total, nil
}

// Stats aggregates over sessions whose last visit falls in [start, end].
func (r *analyticsRepository) Stats(ctx context.Context, start, end time.Time) (*models.VisitorStats, error) {
	stats := &models.VisitorStats{}

	sessions := r.db.WithContext(ctx).
		Model(&models.AnalyticsSession{}).
		Where("last_visit >= ? AND last_visit <= ?", start, end)
	if err := sessions.Count(&stats.TotalVisitors).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	views := r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Joins("JOIN analytics_sessions ON analytics_sessions.id = page_views.session_ref").
		Where("analytics_sessions.last_visit >= ? AND analytics_sessions.last_visit <= ?", start, end)
	if err := views.Count(&stats.TotalPageViews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	err := r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Joins("JOIN analytics_sessions ON analytics_sessions.id = page_views.session_ref").
		Where("analytics_sessions.last_visit >= ? AND analytics_sessions.last_visit <= ?", start, end).
		Distinct("page_views.path").
		Count(&stats.UniquePages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return stats, nil
}

func (r *analyticsRepository) PopularPages(ctx context.Context, limit int) ([]models.PagePopularity, error) {
	if limit <= 0 {
		limit = 10
	}

	var pages []models.PagePopularity
	err := cache.Aside(ctx, cache.PopularKey(limit), &pages, cache.PopularPagesTTL, func() error {
		err := r.db.WithContext(ctx).
			Model(&models.PageView{}).
			Select("path, COUNT(*) AS views").
			Group("path").
			Order("views DESC").
			Limit(limit).
			Scan(&pages).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// Trend returns one point per calendar day over the trailing window. Visitors
// are sessions that started that day; page views are the events that actually
// happened that day.
func (r *analyticsRepository) Trend(ctx context.Context, days int) ([]models.TrendPoint, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	type dayCount struct {
		Day   string
		Count int64
	}

	var visitorRows []dayCount
	err := r.db.WithContext(ctx).
		Model(&models.AnalyticsSession{}).
		Select("DATE(first_visit) AS day, COUNT(*) AS count").
		Where("first_visit >= ?", since).
		Group("DATE(first_visit)").
		Scan(&visitorRows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var viewRows []dayCount
	err = r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Select("DATE(viewed_at) AS day, COUNT(*) AS count").
		Where("viewed_at >= ?", since).
		Group("DATE(viewed_at)").
		Scan(&viewRows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	visitors := make(map[string]int64, len(visitorRows))
	for _, row := range visitorRows {
		visitors[normalizeDay(row.Day)] = row.Count
	}
	views := make(map[string]int64, len(viewRows))
	for _, row := range viewRows {
		views[normalizeDay(row.Day)] = row.Count
	}

	// Zero-fill so the series always covers the full window.
	points := make([]models.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		points = append(points, models.TrendPoint{
			Date:      day,
			Visitors:  visitors[day],
			PageViews: views[day],
		})
	}
	return points, nil
}

// normalizeDay trims a driver-formatted date to YYYY-MM-DD. Postgres scans
// DATE() results with a time component; sqlite returns the bare string.
func normalizeDay(day string) string {
	if len(day) > 10 {
		return day[:10]
	}
	return day
}
