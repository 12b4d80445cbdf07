package models

// PairCompatibilityResult is the verdict for one unordered entry pair.
// Ephemeral: computed per evaluation, never persisted.
type PairCompatibilityResult struct {
	Pair         [2]string           `json:"pair"`
	Verdict      CompatibilityResult `json:"verdict"`
	Severity     SeverityLevel       `json:"severity"`
	Evidence     EvidenceLevel       `json:"evidence"`
	Reason       string              `json:"reason"`
	MatchedRules []CompatibilityRule `json:"matchedRules"`
}

// CompatibilityOutcome is the full result of evaluating a selection of entries:
// every pairwise verdict plus the single highest-priority signal across them.
// SafetyReminder is always present verbatim regardless of verdict.
type CompatibilityOutcome struct {
	SelectedIDs     []string                  `json:"selectedIds"`
	SelectedEntries []Entry                   `json:"selectedEntries"`
	Verdict         CompatibilityResult       `json:"verdict"`
	Severity        SeverityLevel             `json:"severity"`
	Evidence        EvidenceLevel             `json:"evidence"`
	Summary         string                    `json:"summary"`
	PairResults     []PairCompatibilityResult `json:"pairResults"`
	SafetyReminder  string                    `json:"safetyReminder"`
}
