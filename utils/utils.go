package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUsername trims and NFC-normalizes a username so visually equal
// names map to the same stored key.
func NormalizeUsername(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// SortSpec is a single sort key; the catalog never sorts on more than one.
type SortSpec struct {
	Field      string
	Descending bool
}

var sortableMovieFields = map[string]bool{
	"createdAt":   true,
	"title":       true,
	"releaseYear": true,
	"rating":      true,
}

// DefaultMovieSort lists newest entries first.
var DefaultMovieSort = SortSpec{Field: "createdAt", Descending: true}

// ParseMovieSort reads values like "title" or "-releaseYear". Unknown keys
// fall back to the default.
func ParseMovieSort(v string) SortSpec {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultMovieSort
	}
	desc := strings.HasPrefix(v, "-")
	field := strings.TrimPrefix(v, "-")
	if !sortableMovieFields[field] {
		return DefaultMovieSort
	}
	return SortSpec{Field: field, Descending: desc}
}
