package ingest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/biostack-io/biostack-engine/pkg/models"
)

var (
	parentheticalPattern = regexp.MustCompile(`\(([^)]*)\)`)
	nameChunkPattern     = regexp.MustCompile(`(?i)\s*/\s*|\s+or\s+`)
	synergyTermPattern   = regexp.MustCompile(`(?i)\s*(?:\+|,|\bor\b)\s*`)
)

// aliasesFromName expands an entry name into comparable aliases: the full
// normalized name, the name with parentheticals stripped, each parenthetical
// group alone, and each "/"- or "or"-separated chunk. Single-character
// aliases are discarded. Order is deterministic so tie-breaks are stable
// across runs.
func aliasesFromName(name string) []string {
	cleanName := stripMarkdown(name)

	var aliases []string
	seen := make(map[string]bool)
	add := func(alias string) {
		if alias == "" || seen[alias] {
			return
		}
		seen[alias] = true
		aliases = append(aliases, alias)
	}

	add(normalizeNameToken(cleanName))

	withoutParentheses := strings.TrimSpace(parentheticalPattern.ReplaceAllString(cleanName, " "))
	if withoutParentheses != "" {
		add(normalizeNameToken(withoutParentheses))
	}

	for _, group := range parentheticalPattern.FindAllStringSubmatch(cleanName, -1) {
		add(normalizeNameToken(group[1]))
	}

	for _, chunk := range nameChunkPattern.Split(cleanName, -1) {
		add(normalizeNameToken(chunk))
	}

	out := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if len(alias) > 1 {
			out = append(out, alias)
		}
	}
	return out
}

// splitSynergyTerms breaks free-text synergy mentions into candidate terms:
// each mention as a whole plus its "+", ",", and "or" separated fragments.
func splitSynergyTerms(synergies []string) []string {
	var terms []string
	seen := make(map[string]bool)
	add := func(term string) {
		if term == "" || seen[term] {
			return
		}
		seen[term] = true
		terms = append(terms, term)
	}

	for _, synergy := range synergies {
		clean := stripMarkdown(synergy)
		if clean == "" {
			continue
		}
		add(clean)
		for _, fragment := range synergyTermPattern.Split(clean, -1) {
			add(strings.TrimSpace(fragment))
		}
	}
	return terms
}

// matchSynergyTerm finds the entry whose alias best matches the term.
// A candidate matches when its alias and the normalized term contain each
// other in either direction and the alias has at least 3 characters; the
// longest matching alias wins. This is a heuristic: short or ambiguous names
// can over- or under-match, which is why derived synergy rules stay advisory.
func matchSynergyTerm(term, sourceEntryID string, entries []models.Entry, aliasesByEntryID map[string][]string) (models.Entry, bool) {
	normalizedTerm := normalizeNameToken(term)
	if len(normalizedTerm) < 2 {
		return models.Entry{}, false
	}

	var best models.Entry
	bestScore := 0
	found := false

	for _, candidate := range entries {
		if candidate.ID == sourceEntryID {
			continue
		}
		for _, alias := range aliasesByEntryID[candidate.ID] {
			if len(alias) < 3 {
				continue
			}
			if !strings.Contains(normalizedTerm, alias) && !strings.Contains(alias, normalizedTerm) {
				continue
			}
			if score := len(alias); score > bestScore {
				best = candidate
				bestScore = score
				found = true
			}
		}
	}
	return best, found
}

// deriveRules produces the full compatibility rule collection: synergy rules
// matched from each entry's free-text synergy mentions, the fixed tag-pair
// heuristics, and the within-stimulant-category rule.
func deriveRules(entries []models.Entry, categories []models.Category) []models.CompatibilityRule {
	var rules []models.CompatibilityRule
	pairSeen := make(map[string]bool)

	aliasesByEntryID := make(map[string][]string, len(entries))
	for _, entry := range entries {
		aliasesByEntryID[entry.ID] = aliasesFromName(entry.Name)
	}

	for _, entry := range entries {
		for _, term := range splitSynergyTerms(entry.Synergies) {
			match, ok := matchSynergyTerm(term, entry.ID, entries, aliasesByEntryID)
			if !ok {
				continue
			}

			pair := []string{entry.ID, match.ID}
			sort.Strings(pair)
			pairKey := pair[0] + "::" + pair[1]
			if pairSeen[pairKey] {
				continue
			}
			pairSeen[pairKey] = true

			rules = append(rules, models.CompatibilityRule{
				ID:        "synergy-" + pair[0] + "-" + pair[1],
				AppliesTo: models.RuleMatcher{EntryIDs: pair},
				Result:    models.ResultSynergy,
				Reason:    fmt.Sprintf("Source data lists these entries as a potentially complementary stack (%s references %s).", entry.Name, match.Name),
				Severity:  models.SeverityLow,
				Evidence:  entry.EvidenceLevel,
			})
		}
	}

	rules = append(rules, fixedTagRules()...)

	for _, category := range categories {
		if !strings.Contains(strings.ToLower(category.Title), "stimulants") {
			continue
		}
		rules = append(rules, models.CompatibilityRule{
			ID:        "rule-category-stimulants-within-category",
			AppliesTo: models.RuleMatcher{CategoryIDs: []string{category.ID}},
			Result:    models.ResultCaution,
			Reason:    "Combining multiple entries from the stimulant/eugeroic category increases overstimulation risk.",
			Severity:  models.SeverityMedium,
			Evidence:  models.EvidenceModerate,
		})
		break
	}

	return rules
}

// fixedTagRules are the hand-authored tag-pair heuristics. They are part of
// the generated artifact so the engine only ever consumes one rule source.
func fixedTagRules() []models.CompatibilityRule {
	return []models.CompatibilityRule{
		{
			ID:        "rule-tag-serotonergic-maoi",
			AppliesTo: models.RuleMatcher{TagPairs: []string{TagSerotonergic, TagMAOInhibitor}},
			Result:    models.ResultAvoid,
			Reason:    "Potential serotonin overload risk when serotonergic compounds are combined with MAO-inhibiting compounds.",
			Severity:  models.SeverityHigh,
			Evidence:  models.EvidenceModerate,
		},
		{
			ID:        "rule-tag-stimulant-stimulant",
			AppliesTo: models.RuleMatcher{TagPairs: []string{TagStimulatory, TagStimulatory}},
			Result:    models.ResultCaution,
			Reason:    "Stacking multiple stimulating compounds can increase anxiety, blood pressure, sleep disruption, and tolerance pressure.",
			Severity:  models.SeverityMedium,
			Evidence:  models.EvidenceModerate,
		},
		{
			ID:        "rule-tag-blood-thinner-blood-thinner",
			AppliesTo: models.RuleMatcher{TagPairs: []string{TagBloodThinnerRisk, TagBloodThinnerRisk}},
			Result:    models.ResultCaution,
			Reason:    "Combining agents with blood-thinner interaction warnings can increase bleeding risk.",
			Severity:  models.SeverityHigh,
			Evidence:  models.EvidenceModerate,
		},
		{
			ID:        "rule-tag-cholinergic-cholinergic",
			AppliesTo: models.RuleMatcher{TagPairs: []string{TagCholinergic, TagCholinergic}},
			Result:    models.ResultCaution,
			Reason:    "Concurrent high-cholinergic compounds may increase headaches, mood changes, and cholinergic side effects.",
			Severity:  models.SeverityMedium,
			Evidence:  models.EvidenceLimited,
		},
		{
			ID:        "rule-tag-gabaergic-gabaergic",
			AppliesTo: models.RuleMatcher{TagPairs: []string{TagGABAergic, TagGABAergic}},
			Result:    models.ResultCaution,
			Reason:    "Combining multiple GABAergic compounds can increase sedation and cognitive dulling in sensitive users.",
			Severity:  models.SeverityMedium,
			Evidence:  models.EvidenceLimited,
		},
		{
			ID:        "rule-tag-psychedelic-psychedelic",
			AppliesTo: models.RuleMatcher{TagPairs: []string{TagPsychedelic, TagPsychedelic}},
			Result:    models.ResultCaution,
			Reason:    "Psychedelic combinations have elevated unpredictability and should not be combined without specialist clinical oversight.",
			Severity:  models.SeverityHigh,
			Evidence:  models.EvidenceLimited,
		},
	}
}
