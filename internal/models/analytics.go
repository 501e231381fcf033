package models

import "time"

// DeviceType is the coarse device class inferred from the user agent.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

// AnalyticsSession accumulates the page views of one browsing session.
// FirstVisit is set once on the first event and never changes; LastVisit
// advances with every event. The stored IP is always anonymized.
type AnalyticsSession struct {
	ID         uint       `gorm:"primaryKey" json:"-"`
	SessionID  string     `gorm:"size:64;not null;uniqueIndex" json:"sessionId"`
	IPAddress  string     `gorm:"size:45" json:"ipAddress"`
	UserAgent  string     `gorm:"size:512" json:"userAgent"`
	Referrer   string     `gorm:"size:512" json:"referrer,omitempty"`
	Device     DeviceType `gorm:"type:varchar(10);not null;default:'desktop'" json:"device"`
	FirstVisit time.Time  `gorm:"not null;index" json:"firstVisit"`
	LastVisit  time.Time  `gorm:"not null;index" json:"lastVisit"`
	Pages      []PageView `gorm:"foreignKey:SessionRef" json:"pages,omitempty"`
}

// TableName specifies the table name for GORM.
func (AnalyticsSession) TableName() string {
	return "analytics_sessions"
}

// PageView is a single append-only page entry within a session.
type PageView struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	SessionRef uint      `gorm:"not null;index" json:"-"`
	Path       string    `gorm:"size:512;not null;index" json:"path"`
	Duration   *int      `json:"duration,omitempty"`
	ViewedAt   time.Time `gorm:"not null;index" json:"timestamp"`
}

// VisitorStats aggregates visitor activity in a date range.
type VisitorStats struct {
	TotalVisitors  int64 `json:"totalVisitors"`
	TotalPageViews int64 `json:"totalPageViews"`
	UniquePages    int64 `json:"uniquePages"`
}

// StatsOverview is the stats payload: the requested range plus fixed
// recent-activity rollups.
type StatsOverview struct {
	Overall   VisitorStats `json:"overall"`
	Today     VisitorStats `json:"today"`
	ThisWeek  VisitorStats `json:"thisWeek"`
	ThisMonth VisitorStats `json:"thisMonth"`
}

// PagePopularity is one entry of the popular-pages ranking.
type PagePopularity struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// TrendPoint is one day of the visitor trend series.
type TrendPoint struct {
	Date      string `json:"date"`
	Visitors  int64  `json:"visitors"`
	PageViews int64  `json:"pageViews"`
}
