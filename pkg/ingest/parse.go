package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/biostack-io/biostack-engine/pkg/apperrors"
	"github.com/biostack-io/biostack-engine/pkg/models"
)

const notSpecified = "Not specified in source data."

var (
	categoryHeaderPattern = regexp.MustCompile(`(?m)^## CATEGORY (\d+): (.+)$`)
	listSplitPattern      = regexp.MustCompile(`\s*;\s*`)
	commaSplitPattern     = regexp.MustCompile(`\s*,\s*`)
	sentenceSplitPattern  = regexp.MustCompile(`\.\s+`)
	cyclingYesPattern     = regexp.MustCompile(`(?i)(yes|mandatory|non-negotiable|required)`)
	lineBreakPattern      = regexp.MustCompile(`\r?\n`)
)

// parseDocument transforms the markdown source into category and entry
// collections. Any section without a recognizable table header contributes a
// category with zero entries; a document with no category headers at all is
// a fatal ingestion error.
func parseDocument(markdown string) ([]models.Category, []models.Entry, error) {
	headerMatches := categoryHeaderPattern.FindAllStringSubmatchIndex(markdown, -1)
	if len(headerMatches) == 0 {
		return nil, nil, apperrors.ErrNoCategoryHeaders
	}

	categories := make([]models.Category, 0, len(headerMatches))
	entries := make([]models.Entry, 0)

	for i, match := range headerMatches {
		categoryNumber, _ := strconv.Atoi(markdown[match[2]:match[3]])
		categoryTitle := stripMarkdown(markdown[match[4]:match[5]])
		categoryID := "category-" + strconv.Itoa(categoryNumber) + "-" + slugify(categoryTitle)

		categories = append(categories, models.Category{
			ID:           categoryID,
			Title:        categoryTitle,
			DisplayOrder: categoryNumber,
		})

		sectionStart := match[1]
		sectionEnd := len(markdown)
		if i+1 < len(headerMatches) {
			sectionEnd = headerMatches[i+1][0]
		}

		entries = append(entries, parseSection(markdown[sectionStart:sectionEnd], categoryID, categoryTitle)...)
	}

	return categories, entries, nil
}

// parseSection parses the table within one category section into entries.
// Rows before the header row are ignored; scanning stops at a "---" rule line.
func parseSection(section, categoryID, categoryTitle string) []models.Entry {
	rawLines := lineBreakPattern.Split(section, -1)
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = strings.TrimSpace(line)
	}

	headerRowIndex := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "| # |") {
			headerRowIndex = i
			break
		}
	}
	if headerRowIndex < 0 {
		return nil
	}

	headers := parseTableLine(lines[headerRowIndex])
	isInterventionTable := false
	for _, header := range headers {
		if header == "Intervention" {
			isInterventionTable = true
			break
		}
	}

	var entries []models.Entry
	for rowIndex := headerRowIndex + 1; rowIndex < len(lines); rowIndex++ {
		line := lines[rowIndex]
		if !strings.HasPrefix(line, "|") {
			if strings.HasPrefix(line, "---") {
				break
			}
			if line == "" {
				continue
			}
		}
		if strings.HasPrefix(line, "|---") {
			continue
		}

		cells := parseTableLine(line)

		// Intervention rows may carry an extra "Cycling Required?" cell
		// inserted before the trailing notes column; re-align headers for
		// such rows.
		headersForRow := headers
		if isInterventionTable && len(cells) == len(headers)+1 {
			headersForRow = make([]string, 0, len(headers)+1)
			headersForRow = append(headersForRow, headers[:len(headers)-1]...)
			headersForRow = append(headersForRow, "Cycling Required?", headers[len(headers)-1])
		}

		if len(cells) != len(headersForRow) {
			continue
		}

		raw := make(map[string]string, len(headersForRow))
		for cellIndex, header := range headersForRow {
			raw[header] = cells[cellIndex]
		}

		entries = append(entries, buildEntry(raw, categoryID, categoryTitle, isInterventionTable))
	}
	return entries
}

// buildEntry maps a row's field dictionary onto an Entry, applying the
// documented fallbacks and derivations.
func buildEntry(raw map[string]string, categoryID, categoryTitle string, isInterventionTable bool) models.Entry {
	indexNumber, _ := strconv.Atoi(strings.TrimSpace(raw["#"]))
	name := fieldOr(raw, "", "Substance", "Intervention")
	mechanism := fieldOr(raw, notSpecified, "Mechanism of Action")
	benefits := splitList(fieldOr(raw, "", "Primary Benefits"))
	dosageOrProtocol := fieldOr(raw, notSpecified, "Standard Dosage", "Protocol")
	timingAdministration := fieldOr(raw, notSpecified, "Timing & Administration", "Timing & Frequency")
	onset := fieldOr(raw, notSpecified, "Onset")

	durationFallback := notSpecified
	if isInterventionTable {
		durationFallback = "Protocol dependent."
	}
	duration := fieldOr(raw, durationFallback, "Duration")

	effectivenessStars := parseStars(fieldOr(raw, "★★★", "Effectiveness"))
	synergies := splitList(fieldOr(raw, "", "Best Synergies", "Best Combinations"))
	cycling := parseCycling(fieldOr(raw, notSpecified, "Cycling Required?"))
	rawNotes := fieldOr(raw, notSpecified, "Notes & Warnings", "Notes")
	warnings := splitWarnings(rawNotes)

	fullTextForInference := strings.Join([]string{
		mechanism,
		strings.Join(benefits, " "),
		dosageOrProtocol,
		timingAdministration,
		rawNotes,
		strings.Join(synergies, " "),
	}, " ")
	tags := inferTags(fullTextForInference, categoryTitle)

	kind := models.EntryKindSubstance
	if isInterventionTable {
		kind = models.EntryKindIntervention
	}

	return models.Entry{
		ID:                   strconv.Itoa(indexNumber) + "-" + slugify(name),
		IndexNumber:          indexNumber,
		Name:                 name,
		Kind:                 kind,
		CategoryID:           categoryID,
		Mechanism:            mechanism,
		Benefits:             benefits,
		DosageOrProtocol:     dosageOrProtocol,
		TimingAdministration: timingAdministration,
		Onset:                onset,
		Duration:             duration,
		EffectivenessStars:   effectivenessStars,
		EvidenceLevel:        models.EvidenceLevelForStars(effectivenessStars),
		StimulationProfile:   inferStimulationProfile(tags),
		Synergies:            synergies,
		Cycling:              cycling,
		Warnings:             warnings,
		Tags:                 tags,
		RawNotes:             stripMarkdown(rawNotes),
	}
}

// fieldOr returns the value of the first key present in the row dictionary.
// Presence is what counts: an empty cell under a present header is returned
// as-is rather than falling through.
func fieldOr(raw map[string]string, fallback string, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key]; ok {
			return value
		}
	}
	return fallback
}

// splitList parses a delimited cell into items: semicolons win when they
// produce more than one segment, otherwise commas.
func splitList(input string) []string {
	cleaned := stripMarkdown(input)
	if cleaned == "" {
		return []string{}
	}

	primary := nonEmpty(listSplitPattern.Split(cleaned, -1))
	if len(primary) > 1 {
		return primary
	}
	return nonEmpty(commaSplitPattern.Split(cleaned, -1))
}

// splitWarnings parses the notes cell into warning items: semicolons when
// they yield at least two segments, else sentence boundaries. Capped at 10.
func splitWarnings(input string) []string {
	cleaned := stripMarkdown(input)
	if cleaned == "" {
		return []string{}
	}

	segments := nonEmpty(listSplitPattern.Split(cleaned, -1))
	if len(segments) >= 2 {
		return capItems(segments, 10)
	}
	return capItems(nonEmpty(sentenceSplitPattern.Split(cleaned, -1)), 10)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func capItems(values []string, max int) []string {
	if len(values) > max {
		return values[:max]
	}
	return values
}

// parseStars counts ★ glyphs in the effectiveness cell, clamped to [1,5].
func parseStars(effectiveness string) int {
	count := strings.Count(effectiveness, "★")
	if count <= 1 {
		return 1
	}
	if count >= 5 {
		return 5
	}
	return count
}

// parseCycling extracts the cycling requirement from the guidance text.
func parseCycling(value string) models.CyclingInfo {
	guidance := stripMarkdown(value)
	if guidance == "" {
		guidance = notSpecified
	}
	return models.CyclingInfo{
		Required: cyclingYesPattern.MatchString(guidance),
		Guidance: guidance,
	}
}
