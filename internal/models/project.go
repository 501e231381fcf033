package models

import "time"

// ProjectCategory classifies how a showcased project was produced.
type ProjectCategory string

const (
	CategoryAIGenerated ProjectCategory = "ai-generated"
	CategoryManual      ProjectCategory = "manual"
	CategoryHybrid      ProjectCategory = "hybrid"
)

// Valid reports whether the category is one of the known values.
func (c ProjectCategory) Valid() bool {
	switch c {
	case CategoryAIGenerated, CategoryManual, CategoryHybrid:
		return true
	}
	return false
}

// ProjectImages groups the thumbnail and gallery image URLs of a project.
type ProjectImages struct {
	Thumbnail string   `gorm:"size:512" json:"thumbnail"`
	Gallery   []string `gorm:"serializer:json" json:"gallery"`
}

// Project represents a portfolio project record. The slug is derived from the
// title and must stay unique. ViewCount only ever moves through IncrementView,
// never through a generic update.
type Project struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Title           string          `gorm:"size:100;not null" json:"title"`
	Slug            string          `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	Description     string          `gorm:"size:500;not null" json:"description"`
	FullDescription string          `gorm:"type:text" json:"fullDescription,omitempty"`
	Technologies    []string        `gorm:"serializer:json" json:"technologies"`
	Category        ProjectCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Images          ProjectImages   `gorm:"embedded;embeddedPrefix:image_" json:"images"`
	LiveURL         string          `gorm:"size:512" json:"liveUrl,omitempty"`
	GithubURL       string          `gorm:"size:512" json:"githubUrl,omitempty"`
	Featured        bool            `gorm:"not null;default:false;index" json:"featured"`
	AIPrompts       []string        `gorm:"serializer:json" json:"aiPrompts,omitempty"`
	ViewCount       int64           `gorm:"not null;default:0" json:"viewCount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
