package models

import "strings"

// StarString renders an effectiveness rating as a five-glyph bar, e.g. "★★★☆☆".
func StarString(stars int) string {
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars)
}

// Label returns the verdict with its first letter upper-cased for display.
func (r CompatibilityResult) Label() string {
	return titleCase(string(r))
}

// Label returns the severity with its first letter upper-cased for display.
func (s SeverityLevel) Label() string {
	return titleCase(string(s))
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
