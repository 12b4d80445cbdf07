package models

// CompatibilityResult is the verdict a rule asserts when it matches a pair.
type CompatibilityResult string

const (
	ResultSynergy CompatibilityResult = "synergy"
	ResultCaution CompatibilityResult = "caution"
	ResultAvoid   CompatibilityResult = "avoid"
	ResultUnknown CompatibilityResult = "unknown"
)

// Priority ranks verdicts for rule selection and aggregation (avoid highest).
func (r CompatibilityResult) Priority() int {
	switch r {
	case ResultAvoid:
		return 4
	case ResultCaution:
		return 3
	case ResultSynergy:
		return 2
	case ResultUnknown:
		return 1
	default:
		return 0
	}
}

// SeverityLevel is the magnitude of a caution/avoid signal.
type SeverityLevel string

const (
	SeverityLow    SeverityLevel = "low"
	SeverityMedium SeverityLevel = "medium"
	SeverityHigh   SeverityLevel = "high"
)

// Priority ranks severities for rule selection and aggregation (high highest).
func (s SeverityLevel) Priority() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// MatcherKind identifies which condition of a RuleMatcher is in effect.
// Exactly one condition is meaningful per rule; when several are populated
// the highest-precedence one wins.
type MatcherKind int

const (
	MatcherUnmatched MatcherKind = iota
	MatcherEntryIDs
	MatcherCategoryIDs
	MatcherTagPair
)

// RuleMatcher selects the entry pairs a rule applies to. The three conditions
// form a precedence chain: entry ids beat category ids beat tag pairs. Use
// Kind to dispatch instead of probing the fields directly.
type RuleMatcher struct {
	EntryIDs    []string `json:"entryIds,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	TagPairs    []string `json:"tagPairs,omitempty"`
}

// Kind returns the effective matcher variant under the documented precedence:
// non-empty EntryIDs first, then non-empty CategoryIDs, then a TagPairs list
// of exactly two tags. Anything else never matches.
func (m *RuleMatcher) Kind() MatcherKind {
	switch {
	case len(m.EntryIDs) > 0:
		return MatcherEntryIDs
	case len(m.CategoryIDs) > 0:
		return MatcherCategoryIDs
	case len(m.TagPairs) == 2:
		return MatcherTagPair
	default:
		return MatcherUnmatched
	}
}

// CompatibilityRule asserts a verdict for every entry pair its matcher selects.
// Rules are derived artifacts: the ingestion pipeline regenerates the whole
// collection from the source document on every run.
type CompatibilityRule struct {
	ID        string              `json:"id" validate:"required"`
	AppliesTo RuleMatcher         `json:"appliesTo"`
	Result    CompatibilityResult `json:"result" validate:"required,oneof=synergy caution avoid unknown"`
	Reason    string              `json:"reason" validate:"required"`
	Severity  SeverityLevel       `json:"severity" validate:"required,oneof=low medium high"`
	Evidence  EvidenceLevel       `json:"evidence" validate:"required,oneof=strong moderate limited"`
}

// Validate checks the rule against the schema rules.
func (r *CompatibilityRule) Validate() error {
	return validate.Struct(r)
}
