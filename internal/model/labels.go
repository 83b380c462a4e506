package model

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)
	camelBoundary     = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores, dashes and camelCase boundaries.
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	spaced := camelBoundary.ReplaceAllString(name, "$1 $2")
	words := splitWordsPattern.Split(spaced, -1)
	segments := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, word)
	}
	// Casers carry state, so each call gets its own.
	return cases.Title(language.English).String(strings.Join(segments, " "))
}
