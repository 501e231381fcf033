package server

import (
	"time"

	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

const statsDateLayout = "2006-01-02"

// TrackPageView handles POST /api/analytics/track
// @Summary Record a page view
// @Description Fire-and-forget ingest. Storage failures are logged, never surfaced to the visitor.
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body object{sessionId=string,path=string,duration=int,referrer=string} true "Page view event"
// @Success 200 {object} models.Response
// @Router /analytics/track [post]
func (s *Server) TrackPageView(c *fiber.Ctx) error {
	var req struct {
		SessionID string `json:"sessionId"`
		Path      string `json:"path"`
		Duration  *int   `json:"duration"`
		Referrer  string `json:"referrer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	sessionID, err := s.analyticsService.Track(c.Context(), service.TrackInput{
		SessionID: req.SessionID,
		Path:      req.Path,
		Duration:  req.Duration,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Referrer:  req.Referrer,
	})
	if err != nil {
		// Analytics must never break the visitor's page load.
		middleware.Logger.ErrorContext(c.UserContext(), "page view ingest failed", "error", err)
	}

	return c.JSON(models.OK(fiber.Map{"sessionId": sessionID}))
}

// GetAnalyticsStats handles GET /api/analytics/stats
// @Summary Visitor totals
// @Description Overall totals for the requested range plus today/this-week/this-month rollups.
// @Tags analytics
// @Produce json
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD)"
// @Param days query int false "Trailing window in days, used when no explicit range is given"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Security BearerAuth
// @Router /analytics/stats [get]
func (s *Server) GetAnalyticsStats(c *fiber.Ctx) error {
	q := service.StatsQuery{Days: c.QueryInt("days", 0)}

	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse(statsDateLayout, raw)
		if err != nil {
			return models.RespondWithError(c, models.NewValidationError("Invalid date range",
				models.FieldError{Field: "startDate", Message: "must be YYYY-MM-DD"}))
		}
		q.Start = start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse(statsDateLayout, raw)
		if err != nil {
			return models.RespondWithError(c, models.NewValidationError("Invalid date range",
				models.FieldError{Field: "endDate", Message: "must be YYYY-MM-DD"}))
		}
		q.End = end
	}

	stats, err := s.analyticsService.Stats(c.Context(), q)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OK(fiber.Map{"stats": stats}))
}

// GetAnalyticsVisitors handles GET /api/analytics/visitors
// @Summary Recent visitor sessions
// @Tags analytics
// @Produce json
// @Param days query int false "Restrict to sessions active in the trailing window"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Response
// @Security BearerAuth
// @Router /analytics/visitors [get]
func (s *Server) GetAnalyticsVisitors(c *fiber.Ctx) error {
	pq := parsePageQuery(c, 20)

	sessions, pagination, err := s.analyticsService.Visitors(c.Context(), c.QueryInt("days", 0), pq.Page, pq.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.OK(fiber.Map{
		"visitors":   sessions,
		"pagination": pagination,
	}))
}

// GetPopularPages handles GET /api/analytics/popular-pages
// @Summary Most viewed paths
// @Tags analytics
// @Produce json
// @Param limit query int false "Number of paths"
// @Success 200 {object} models.Response
// @Security BearerAuth
// @Router /analytics/popular-pages [get]
func (s *Server) GetPopularPages(c *fiber.Ctx) error {
	pages, err := s.analyticsService.PopularPages(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OK(fiber.Map{"pages": pages}))
}

// GetAnalyticsTrend handles GET /api/analytics/trend
// @Summary Per-day traffic trend
// @Description Zero-filled day buckets over the trailing window.
// @Tags analytics
// @Produce json
// @Param days query int false "Trailing window in days"
// @Success 200 {object} models.Response
// @Security BearerAuth
// @Router /analytics/trend [get]
func (s *Server) GetAnalyticsTrend(c *fiber.Ctx) error {
	trend, err := s.analyticsService.Trend(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OK(fiber.Map{"trend": trend}))
}
