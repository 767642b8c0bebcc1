package catalog

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugs are stored in a VARCHAR(60) column.
const maxSlugLen = 60

// MakeSlug derives the URL-safe slug for a category or recipe name: lowercased,
// diacritics stripped, non-alphanumeric runs collapsed to a single hyphen,
// trimmed, and capped at 60 characters.
func MakeSlug(name string) string {
	s := slug.Make(name)
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}
