// Package models contains data structures for the application's domain models.
package models

import "time"

// UserRole defines the authorization level of a user account.
type UserRole string

const (
	// RoleAdmin grants access to the content, project, and analytics admin surface.
	RoleAdmin UserRole = "admin"
	// RoleUser is a reserved non-privileged role.
	RoleUser UserRole = "user"
)

// User represents the site owner's admin identity. The account is created
// exactly once through the bootstrap registration flow.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(10);not null;default:'admin'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
