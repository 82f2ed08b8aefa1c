// Package slugs provides the canonical slug helper used for holiday and docs topic ids.
package slugs

import (
	"strings"

	goslug "github.com/gosimple/slug"
)

// Slug converts a display name to a lowercase, dash-separated id.
// "Guru Nanak Jayanti" -> "guru-nanak-jayanti", "Id-ul-Fitr" -> "id-ul-fitr".
func Slug(s string) string {
	slugged := goslug.Make(strings.TrimSpace(s))
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(s), "-"))
	}
	return slugged
}
