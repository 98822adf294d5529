package models

import (
	"regexp"
	"strings"
)

var nonWordRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a name: lowercased, runs of
// non-word characters collapsed to a single dash.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonWordRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
