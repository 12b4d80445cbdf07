package ingest

import (
	"regexp"
	"strings"
)

// The source document is a bespoke pipe-table dialect, not CommonMark: rows
// can carry markdown emphasis inline, and intervention tables misalign one
// column per row. A full markdown AST would throw that structure away, so
// the parser works line-by-line with small regex passes.

var (
	boldPattern       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	codePattern       = regexp.MustCompile("`(.*?)`")
	linkPattern       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	edgeHyphens = regexp.MustCompile(`(^-|-$)`)
)

// stripMarkdown removes emphasis, code, and link markers and collapses
// whitespace runs into single spaces.
func stripMarkdown(input string) string {
	out := boldPattern.ReplaceAllString(input, "$1")
	out = codePattern.ReplaceAllString(out, "$1")
	out = linkPattern.ReplaceAllString(out, "$1")
	out = whitespacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// slugify derives the url-safe id fragment used for entry and category ids.
// "&" becomes "and"; any non-alphanumeric run collapses to a single hyphen.
func slugify(input string) string {
	out := strings.ToLower(stripMarkdown(input))
	out = strings.ReplaceAll(out, "&", " and ")
	out = nonAlnumRun.ReplaceAllString(out, "-")
	return edgeHyphens.ReplaceAllString(out, "")
}

// normalizeNameToken canonicalizes a name fragment for alias comparison:
// lowercase with non-alphanumeric runs collapsed to single spaces.
func normalizeNameToken(input string) string {
	out := strings.ToLower(stripMarkdown(input))
	out = nonAlnumRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// parseTableLine splits a pipe-delimited row into stripped cells. Leading and
// trailing pipes are dropped first so empty edge cells do not appear.
func parseTableLine(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = stripMarkdown(part)
	}
	return cells
}
