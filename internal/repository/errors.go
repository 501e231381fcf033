// Package repository implements the data access layer for the application.
package repository

import "strings"

// isUniqueConstraintError detects uniqueness violations across the drivers we
// run against (postgres in production, sqlite in tests).
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
