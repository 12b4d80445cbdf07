package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/biostack-io/biostack-engine/pkg/dataset"
	"github.com/biostack-io/biostack-engine/pkg/disclaimers"
	"github.com/biostack-io/biostack-engine/pkg/models"
)

const (
	unknownPairReason = "No direct compatibility rule found for this pair. Treat as caution and consult your clinician."
	selectMoreSummary = "Select at least two entries to evaluate educational compatibility."
)

// CompatibilityService evaluates advisory compatibility verdicts for a
// selection of catalog entries.
type CompatibilityService interface {
	// Evaluate computes all pairwise verdicts for the given entry ids and
	// aggregates them into one overall outcome. Unresolvable ids are dropped
	// silently; fewer than two resolved entries yields a valid degenerate
	// unknown outcome, not an error.
	Evaluate(ids []string) models.CompatibilityOutcome
}

// compatibilityService is a pure function over the immutable dataset
// snapshot: no I/O, no mutation, safe for concurrent use.
type compatibilityService struct {
	data   *dataset.Dataset
	logger *zap.Logger
}

// NewCompatibilityService creates a CompatibilityService over the given dataset.
func NewCompatibilityService(data *dataset.Dataset, logger *zap.Logger) CompatibilityService {
	return &compatibilityService{data: data, logger: logger}
}

func (s *compatibilityService) Evaluate(ids []string) models.CompatibilityOutcome {
	uniqueIDs := dedupe(ids)
	selected := s.data.EntriesByIDs(uniqueIDs)

	selectedIDs := make([]string, len(selected))
	for i, entry := range selected {
		selectedIDs[i] = entry.ID
	}

	if len(selected) < 2 {
		return models.CompatibilityOutcome{
			SelectedIDs:     selectedIDs,
			SelectedEntries: selected,
			Verdict:         models.ResultUnknown,
			Severity:        models.SeverityLow,
			Evidence:        models.EvidenceLimited,
			Summary:         selectMoreSummary,
			PairResults:     []models.PairCompatibilityResult{},
			SafetyReminder:  disclaimers.CompatibilitySafetyReminder,
		}
	}

	rules := s.data.Rules()
	pairResults := make([]models.PairCompatibilityResult, 0, len(selected)*(len(selected)-1)/2)
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			pairResults = append(pairResults, evaluatePair(selected[i], selected[j], rules))
		}
	}

	overall := defaultUnknownPair(selectedIDs[0], selectedIDs[1])
	for _, current := range pairResults {
		if resultDelta := current.Verdict.Priority() - overall.Verdict.Priority(); resultDelta != 0 {
			if resultDelta > 0 {
				overall = current
			}
			continue
		}
		if current.Severity.Priority() > overall.Severity.Priority() {
			overall = current
		}
	}

	summary := overall.Reason
	if len(pairResults) > 1 {
		summary = fmt.Sprintf("Highest-priority signal across %d checked pairs: %s", len(pairResults), overall.Reason)
	}

	return models.CompatibilityOutcome{
		SelectedIDs:     selectedIDs,
		SelectedEntries: selected,
		Verdict:         overall.Verdict,
		Severity:        overall.Severity,
		Evidence:        overall.Evidence,
		Summary:         summary,
		PairResults:     pairResults,
		SafetyReminder:  disclaimers.CompatibilitySafetyReminder,
	}
}

// evaluatePair collects every rule matching the pair and keeps the top one by
// (result, severity, evidence) priority. No matching rule synthesizes an
// unknown verdict.
func evaluatePair(left, right models.Entry, rules []models.CompatibilityRule) models.PairCompatibilityResult {
	matched := make([]models.CompatibilityRule, 0)
	for _, rule := range rules {
		if ruleMatchesPair(&rule, &left, &right) {
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		return defaultUnknownPair(left.ID, right.ID)
	}

	top := matched[0]
	for _, rule := range matched[1:] {
		if outranks(&top, &rule) {
			top = rule
		}
	}

	return models.PairCompatibilityResult{
		Pair:         [2]string{left.ID, right.ID},
		Verdict:      top.Result,
		Severity:     top.Severity,
		Evidence:     top.Evidence,
		Reason:       top.Reason,
		MatchedRules: matched,
	}
}

// outranks reports whether candidate outranks current under the selection
// ordering: result priority, then severity, then evidence. Full ties keep
// the first-seen rule.
func outranks(current, candidate *models.CompatibilityRule) bool {
	if delta := candidate.Result.Priority() - current.Result.Priority(); delta != 0 {
		return delta > 0
	}
	if delta := candidate.Severity.Priority() - current.Severity.Priority(); delta != 0 {
		return delta > 0
	}
	return candidate.Evidence.Priority() > current.Evidence.Priority()
}

// ruleMatchesPair applies the matcher under its documented precedence.
// Only the effective condition (Kind) is consulted; lower-precedence
// conditions on the same rule are ignored.
func ruleMatchesPair(rule *models.CompatibilityRule, a, b *models.Entry) bool {
	switch rule.AppliesTo.Kind() {
	case models.MatcherEntryIDs:
		for _, id := range rule.AppliesTo.EntryIDs {
			if id != a.ID && id != b.ID {
				return false
			}
		}
		return true

	case models.MatcherCategoryIDs:
		categoryIDs := rule.AppliesTo.CategoryIDs
		if len(categoryIDs) == 1 {
			return a.CategoryID == categoryIDs[0] && b.CategoryID == categoryIDs[0]
		}
		for _, categoryID := range categoryIDs {
			if categoryID != a.CategoryID && categoryID != b.CategoryID {
				return false
			}
		}
		return true

	case models.MatcherTagPair:
		tagA, tagB := rule.AppliesTo.TagPairs[0], rule.AppliesTo.TagPairs[1]
		if tagA == tagB {
			return a.HasTag(tagA) && b.HasTag(tagA)
		}
		return (a.HasTag(tagA) && b.HasTag(tagB)) || (a.HasTag(tagB) && b.HasTag(tagA))

	default:
		return false
	}
}

func defaultUnknownPair(leftID, rightID string) models.PairCompatibilityResult {
	return models.PairCompatibilityResult{
		Pair:         [2]string{leftID, rightID},
		Verdict:      models.ResultUnknown,
		Severity:     models.SeverityLow,
		Evidence:     models.EvidenceLimited,
		Reason:       unknownPairReason,
		MatchedRules: []models.CompatibilityRule{},
	}
}

// dedupe removes duplicate and empty ids, keeping first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
