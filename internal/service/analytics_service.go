package service

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"folio/internal/models"
	"folio/internal/observability"
	"folio/internal/repository"
)

const (
	defaultPopularLimit  = 10
	defaultTrendDays     = 7
	defaultVisitorsLimit = 20
	maxTrendDays         = 90
)

// AnalyticsService records page views and serves traffic aggregates.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

// TrackInput carries one page view event as received at the boundary.
type TrackInput struct {
	SessionID string
	Path      string
	Duration  *int
	IP        string
	UserAgent string
	Referrer  string
}

// Track records a page view and returns the session identifier the caller
// should continue sending. The stored IP is anonymized before it touches disk.
func (s *AnalyticsService) Track(ctx context.Context, input TrackInput) (string, error) {
	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	path := strings.TrimSpace(input.Path)
	if path == "" {
		path = "/"
	}

	device := DeviceFromUserAgent(input.UserAgent)
	now := time.Now().UTC()

	session := &models.AnalyticsSession{
		SessionID:  sessionID,
		IPAddress:  AnonymizeIP(input.IP),
		UserAgent:  input.UserAgent,
		Referrer:   input.Referrer,
		Device:     device,
		FirstVisit: now,
		LastVisit:  now,
	}
	view := &models.PageView{
		Path:     path,
		Duration: input.Duration,
		ViewedAt: now,
	}

	if err := s.analyticsRepo.RecordPageView(ctx, session, view); err != nil {
		return sessionID, err
	}

	observability.PageViewsRecorded.WithLabelValues(string(device)).Inc()
	return sessionID, nil
}

// StatsQuery bounds the overall rollup. An explicit range wins; otherwise a
// trailing window of Days; with neither, the rollup covers all recorded
// activity.
type StatsQuery struct {
	Start time.Time
	End   time.Time
	Days  int
}

// Stats returns visitor totals for the requested range alongside today,
// this-week, and this-month rollups.
func (s *AnalyticsService) Stats(ctx context.Context, q StatsQuery) (*models.StatsOverview, error) {
	now := time.Now().UTC()

	start, end := q.Start, q.End
	if end.IsZero() {
		end = now
	}
	if start.IsZero() {
		if q.Days > 0 {
			start = now.AddDate(0, 0, -q.Days)
		} else {
			start = time.Unix(0, 0).UTC()
		}
	}
	if end.Before(start) {
		return nil, models.NewValidationError("Invalid date range",
			models.FieldError{Field: "endDate", Message: "must not precede startDate"})
	}

	overall, err := s.analyticsRepo.Stats(ctx, start, end)
	if err != nil {
		return nil, err
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := s.analyticsRepo.Stats(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}

	week, err := s.analyticsRepo.Stats(ctx, now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}

	month, err := s.analyticsRepo.Stats(ctx, now.AddDate(0, -1, 0), now)
	if err != nil {
		return nil, err
	}

	return &models.StatsOverview{
		Overall:   *overall,
		Today:     *today,
		ThisWeek:  *week,
		ThisMonth: *month,
	}, nil
}

// PopularPages returns the most viewed paths, most viewed first.
func (s *AnalyticsService) PopularPages(ctx context.Context, limit int) ([]models.PagePopularity, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	return s.analyticsRepo.PopularPages(ctx, limit)
}

// Trend returns per-day visitor and page view counts for the trailing window,
// zero-filled so every day in the window is present.
func (s *AnalyticsService) Trend(ctx context.Context, days int) ([]models.TrendPoint, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}
	return s.analyticsRepo.Trend(ctx, days)
}

// Visitors returns recent sessions with their page views, newest activity
// first. When days > 0 only sessions active within the trailing window are
// listed.
func (s *AnalyticsService) Visitors(ctx context.Context, days, page, limit int) ([]models.AnalyticsSession, *models.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = defaultVisitorsLimit
	}
	var since time.Time
	if days > 0 {
		since = time.Now().UTC().AddDate(0, 0, -days)
	}
	sessions, total, err := s.analyticsRepo.Visitors(ctx, since, page, limit)
	if err != nil {
		return nil, nil, err
	}
	pagination := models.NewPagination(page, limit, total)
	return sessions, &pagination, nil
}

// AnonymizeIP strips the host-identifying portion of an address. IPv4 keeps
// the first two octets, IPv6 keeps the first six bytes. Unparseable input
// comes back empty rather than stored raw.
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return ""
	}
	if v4 := parsed.To4(); v4 != nil {
		return net.IPv4(v4[0], v4[1], 0, 0).String()
	}
	v6 := parsed.To16()
	masked := make(net.IP, net.IPv6len)
	copy(masked, v6[:6])
	return masked.String()
}

// DeviceFromUserAgent classifies a user agent string into a coarse device
// type. iPad user agents carry a Mobile token and parse with both flags set;
// tablet wins the tie so real tablets never count as phones.
func DeviceFromUserAgent(ua string) models.DeviceType {
	parsed := useragent.Parse(ua)
	switch {
	case parsed.Tablet:
		return models.DeviceTablet
	case parsed.Mobile:
		return models.DeviceMobile
	default:
		return models.DeviceDesktop
	}
}
