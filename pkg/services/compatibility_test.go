package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/biostack-io/biostack-engine/pkg/dataset"
	"github.com/biostack-io/biostack-engine/pkg/disclaimers"
	"github.com/biostack-io/biostack-engine/pkg/models"
)

func makeEntry(id string, index int, name, categoryID string, tags ...string) models.Entry {
	if tags == nil {
		tags = []string{}
	}
	return models.Entry{
		ID:                   id,
		IndexNumber:          index,
		Name:                 name,
		Kind:                 models.EntryKindSubstance,
		CategoryID:           categoryID,
		Mechanism:            "Mechanism.",
		Benefits:             []string{"Benefit"},
		DosageOrProtocol:     "10mg",
		TimingAdministration: "Morning",
		Onset:                "Fast",
		Duration:             "Short",
		EffectivenessStars:   3,
		EvidenceLevel:        models.EvidenceModerate,
		StimulationProfile:   models.ProfileUnknown,
		Synergies:            []string{},
		Cycling:              models.CyclingInfo{Required: false, Guidance: "Not specified in source data."},
		Warnings:             []string{},
		Tags:                 tags,
		RawNotes:             "Notes.",
	}
}

func testDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	categories := []models.Category{
		{ID: "category-1-stimulants", Title: "Stimulants & Eugeroics", DisplayOrder: 1},
		{ID: "category-2-mood", Title: "Mood & Serotonin Support", DisplayOrder: 2},
		{ID: "category-3-foundational", Title: "Foundational Health", DisplayOrder: 3},
	}

	entries := []models.Entry{
		makeEntry("1-caffeine", 1, "Caffeine", "category-1-stimulants", "stimulatory"),
		makeEntry("2-modafinil", 2, "Modafinil", "category-1-stimulants", "stimulatory"),
		makeEntry("3-5-htp", 3, "5-HTP", "category-2-mood", "serotonergic"),
		makeEntry("4-rhodiola-rosea", 4, "Rhodiola Rosea", "category-2-mood", "mao_inhibitor"),
		makeEntry("5-creatine-monohydrate", 5, "Creatine Monohydrate", "category-3-foundational"),
		makeEntry("6-prebiotics", 6, "Prebiotics", "category-3-foundational"),
		makeEntry("7-l-theanine", 7, "L-Theanine", "category-3-foundational", "calming", "sedating"),
	}

	rules := []models.CompatibilityRule{
		{
			ID:        "synergy-1-caffeine-7-l-theanine",
			AppliesTo: models.RuleMatcher{EntryIDs: []string{"1-caffeine", "7-l-theanine"}},
			Result:    models.ResultSynergy,
			Reason:    "Source data lists these entries as a potentially complementary stack (Caffeine references L-Theanine).",
			Severity:  models.SeverityLow,
			Evidence:  models.EvidenceModerate,
		},
		{
			ID:        "rule-tag-serotonergic-maoi",
			AppliesTo: models.RuleMatcher{TagPairs: []string{"serotonergic", "mao_inhibitor"}},
			Result:    models.ResultAvoid,
			Reason:    "Potential serotonin overload risk when serotonergic compounds are combined with MAO-inhibiting compounds.",
			Severity:  models.SeverityHigh,
			Evidence:  models.EvidenceModerate,
		},
		{
			ID:        "rule-tag-stimulant-stimulant",
			AppliesTo: models.RuleMatcher{TagPairs: []string{"stimulatory", "stimulatory"}},
			Result:    models.ResultCaution,
			Reason:    "Stacking multiple stimulating compounds can increase anxiety, blood pressure, sleep disruption, and tolerance pressure.",
			Severity:  models.SeverityMedium,
			Evidence:  models.EvidenceModerate,
		},
		{
			ID:        "rule-category-stimulants-within-category",
			AppliesTo: models.RuleMatcher{CategoryIDs: []string{"category-1-stimulants"}},
			Result:    models.ResultCaution,
			Reason:    "Combining multiple entries from the stimulant/eugeroic category increases overstimulation risk.",
			Severity:  models.SeverityMedium,
			Evidence:  models.EvidenceModerate,
		},
	}

	data, err := dataset.New(categories, entries, rules)
	require.NoError(t, err)
	return data
}

func newService(t *testing.T) CompatibilityService {
	t.Helper()
	return NewCompatibilityService(testDataset(t), zap.NewNop())
}

func TestEvaluate_AvoidPair(t *testing.T) {
	outcome := newService(t).Evaluate([]string{"3-5-htp", "4-rhodiola-rosea"})

	assert.Equal(t, models.ResultAvoid, outcome.Verdict)
	assert.Equal(t, models.SeverityHigh, outcome.Severity)
	require.Len(t, outcome.PairResults, 1)
	assert.Equal(t, models.ResultAvoid, outcome.PairResults[0].Verdict)
	// Single pair: summary is the winning reason verbatim.
	assert.Equal(t, outcome.PairResults[0].Reason, outcome.Summary)
}

func TestEvaluate_UnknownPairHasNoMatchedRules(t *testing.T) {
	outcome := newService(t).Evaluate([]string{"5-creatine-monohydrate", "6-prebiotics"})

	assert.Equal(t, models.ResultUnknown, outcome.Verdict)
	require.Len(t, outcome.PairResults, 1)
	assert.Empty(t, outcome.PairResults[0].MatchedRules)
	assert.Equal(t, models.SeverityLow, outcome.PairResults[0].Severity)
	assert.Equal(t, models.EvidenceLimited, outcome.PairResults[0].Evidence)
}

func TestEvaluate_PairCountIsNChoose2(t *testing.T) {
	outcome := newService(t).Evaluate([]string{"1-caffeine", "3-5-htp", "5-creatine-monohydrate", "7-l-theanine"})
	assert.Len(t, outcome.PairResults, 6)
}

func TestEvaluate_HighestPriorityPairWinsRegardlessOfPosition(t *testing.T) {
	// The avoid pair (5-HTP + Rhodiola) is evaluated last here; it must
	// still set the overall verdict.
	outcome := newService(t).Evaluate([]string{"1-caffeine", "3-5-htp", "4-rhodiola-rosea"})

	assert.Equal(t, models.ResultAvoid, outcome.Verdict)
	assert.Len(t, outcome.PairResults, 3)
	assert.Contains(t, outcome.Summary, "Highest-priority signal across 3 checked pairs:")
}

func TestEvaluate_CautionBeatsSynergy(t *testing.T) {
	// Caffeine + Modafinil matches both the tag-pair rule and the category
	// rule; caution wins and both rules are reported.
	outcome := newService(t).Evaluate([]string{"1-caffeine", "2-modafinil"})

	assert.Equal(t, models.ResultCaution, outcome.Verdict)
	require.Len(t, outcome.PairResults, 1)
	assert.Len(t, outcome.PairResults[0].MatchedRules, 2)
	// Equal result/severity/evidence: first-seen rule supplies the reason.
	assert.Equal(t, "Stacking multiple stimulating compounds can increase anxiety, blood pressure, sleep disruption, and tolerance pressure.", outcome.PairResults[0].Reason)
}

func TestEvaluate_SynergyPair(t *testing.T) {
	outcome := newService(t).Evaluate([]string{"1-caffeine", "7-l-theanine"})

	assert.Equal(t, models.ResultSynergy, outcome.Verdict)
	require.Len(t, outcome.PairResults, 1)
	assert.Equal(t, "synergy-1-caffeine-7-l-theanine", outcome.PairResults[0].MatchedRules[0].ID)
}

func TestEvaluate_FewerThanTwoResolved(t *testing.T) {
	service := newService(t)

	tests := []struct {
		name string
		ids  []string
	}{
		{"no ids", nil},
		{"one id", []string{"1-caffeine"}},
		{"duplicates collapse to one", []string{"1-caffeine", "1-caffeine"}},
		{"unresolvable ids dropped", []string{"1-caffeine", "bogus"}},
		{"only unresolvable ids", []string{"bogus", "also-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := service.Evaluate(tt.ids)
			assert.Equal(t, models.ResultUnknown, outcome.Verdict)
			assert.Equal(t, models.SeverityLow, outcome.Severity)
			assert.Equal(t, models.EvidenceLimited, outcome.Evidence)
			assert.Empty(t, outcome.PairResults)
			assert.Equal(t, "Select at least two entries to evaluate educational compatibility.", outcome.Summary)
		})
	}
}

func TestEvaluate_SafetyReminderAlwaysPresent(t *testing.T) {
	service := newService(t)

	for _, ids := range [][]string{
		nil,
		{"1-caffeine"},
		{"3-5-htp", "4-rhodiola-rosea"},
		{"5-creatine-monohydrate", "6-prebiotics"},
	} {
		outcome := service.Evaluate(ids)
		assert.Equal(t, disclaimers.CompatibilitySafetyReminder, outcome.SafetyReminder)
	}
}

func TestEvaluate_DeduplicatesInput(t *testing.T) {
	outcome := newService(t).Evaluate([]string{"1-caffeine", "1-caffeine", "7-l-theanine", "", "7-l-theanine"})

	assert.Equal(t, []string{"1-caffeine", "7-l-theanine"}, outcome.SelectedIDs)
	assert.Len(t, outcome.PairResults, 1)
}

func TestEvaluate_SelfPairTagRule(t *testing.T) {
	// A tag pair with identical tags requires the tag on both entries.
	outcome := newService(t).Evaluate([]string{"1-caffeine", "5-creatine-monohydrate"})

	assert.Equal(t, models.ResultUnknown, outcome.Verdict)
	assert.Empty(t, outcome.PairResults[0].MatchedRules)
}

func TestEvaluate_IsPure(t *testing.T) {
	service := newService(t)
	ids := []string{"3-5-htp", "4-rhodiola-rosea", "1-caffeine"}

	first := service.Evaluate(ids)
	second := service.Evaluate(ids)
	assert.Equal(t, first, second)
}
