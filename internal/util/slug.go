// Package util holds small shared helpers with no domain dependencies.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]+`)
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	marksRemoving = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify derives a URL-safe identifier from a title: accents are stripped,
// the result is lowercased, runs of non-alphanumeric characters collapse to a
// single hyphen, and leading/trailing hyphens are removed. The function is
// idempotent: Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	if folded, _, err := transform.String(marksRemoving, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is a well-formed slug.
func IsValidSlug(s string) bool {
	return s != "" && slugPattern.MatchString(s)
}
