package utils

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Slugify lower-cases a category name and turns each whitespace run into a hyphen.
func Slugify(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(name), "-")
}
