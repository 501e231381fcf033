package models

import (
	"encoding/json"
	"time"
)

// Known content sections. Each section is a singleton document edited as a unit.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionSkills   = "skills"
	SectionContact  = "contact"
	SectionSettings = "settings"
)

// ContentSections lists every valid section name in display order.
var ContentSections = []string{
	SectionHero,
	SectionAbout,
	SectionSkills,
	SectionContact,
	SectionSettings,
}

// IsValidSection reports whether name is one of the known content sections.
func IsValidSection(name string) bool {
	for _, s := range ContentSections {
		if s == name {
			return true
		}
	}
	return false
}

// Content holds the structured payload of a single named site section.
// Writes are upserts keyed by section, so at most one row exists per section.
type Content struct {
	ID        uint            `gorm:"primaryKey" json:"id,omitempty"`
	Section   string          `gorm:"size:20;not null;uniqueIndex" json:"section"`
	Data      json.RawMessage `gorm:"type:jsonb" json:"data"`
	UpdatedBy *uint           `json:"updatedBy,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// EmptyContent returns the synthetic record served for a section that has
// never been written. Reading an unconfigured section is valid empty state,
// not an error.
func EmptyContent(section string) *Content {
	return &Content{
		Section: section,
		Data:    json.RawMessage(`{}`),
	}
}
