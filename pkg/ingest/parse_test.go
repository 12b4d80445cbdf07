package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biostack-io/biostack-engine/pkg/apperrors"
	"github.com/biostack-io/biostack-engine/pkg/models"
)

// sourceDoc is a miniature version of the real catalog document: two
// substance categories, one intervention category with the extra
// cycling cell, plus prose that the row scanner has to skip.
const sourceDoc = `# Biohacking Catalog

Intro prose that should be ignored.

## CATEGORY 1: Stimulants & Eugeroics

Some section prose before the table.

| # | Substance | Mechanism of Action | Primary Benefits | Standard Dosage | Timing & Administration | Onset | Duration | Effectiveness | Best Synergies | Notes & Warnings |
|---|---|---|---|---|---|---|---|---|---|---|
| 1 | Caffeine | Adenosine receptor antagonist promoting wakefulness | Alertness; Focus; Energy | 50-200mg | Morning | 15-45 min | 4-6 hours | ★★★★★ | L-Theanine | Anxiety at high doses; Avoid within 8 hours of bed; Raises blood pressure slightly |
| 2 | L-Theanine | Promotes calming alpha brain waves and relaxation | Calm focus; Anxiety reduction | 100-200mg | With caffeine | 30-60 min | 3-5 hours | ★★★★ | **Caffeine** | Very safe. Mild drowsiness possible at high doses. |

## CATEGORY 2: Mood & Serotonin Support

| # | Substance | Mechanism of Action | Primary Benefits | Standard Dosage | Timing & Administration | Onset | Duration | Effectiveness | Best Synergies | Notes & Warnings |
|---|---|---|---|---|---|---|---|---|---|---|
| 3 | 5-HTP | Serotonin precursor (5-hydroxytryptophan) | Mood support; Sleep quality | 50-100mg | Evening | 30-60 min | 4-8 hours | ★★★ | Magnesium or B6 | Do not combine with SSRI medication; Risk of serotonin syndrome; Not for use during pregnancy |
| 4 | Rhodiola Rosea | Adaptogen with mild MAO-A and MAO-B inhibition (monoamine oxidase) | Stress resilience; Fatigue reduction | 200-400mg | Morning | 30-90 min | 4-6 hours | ★★★ | — | Mild agitation possible. May affect blood pressure. |

## CATEGORY 3: Recovery Protocols

| # | Intervention | Mechanism of Action | Primary Benefits | Protocol | Timing & Frequency | Onset | Effectiveness | Best Combinations | Notes |
|---|---|---|---|---|---|---|---|---|---|
| 5 | Cold Exposure | Cold-induced catecholamine and adrenaline release | Alertness; Recovery | 2-5 min cold shower | Morning, 3-5x weekly | Immediate | ★★★★ | Breathwork | Yes — rest days are mandatory | Not for uncontrolled hypertension. |

---

Trailing prose after the horizontal rule.
`

func parseFixture(t *testing.T) ([]models.Category, []models.Entry) {
	t.Helper()
	categories, entries, err := parseDocument(sourceDoc)
	require.NoError(t, err)
	return categories, entries
}

func TestParseDocument_NoCategoryHeaders(t *testing.T) {
	_, _, err := parseDocument("# Just a title\n\nNo categories here.\n")
	assert.ErrorIs(t, err, apperrors.ErrNoCategoryHeaders)
}

func TestParseDocument_Categories(t *testing.T) {
	categories, _ := parseFixture(t)
	require.Len(t, categories, 3)

	assert.Equal(t, "category-1-stimulants-and-eugeroics", categories[0].ID)
	assert.Equal(t, "Stimulants & Eugeroics", categories[0].Title)
	assert.Equal(t, 1, categories[0].DisplayOrder)

	assert.Equal(t, "category-2-mood-and-serotonin-support", categories[1].ID)
	assert.Equal(t, "category-3-recovery-protocols", categories[2].ID)
}

func TestParseDocument_Entries(t *testing.T) {
	_, entries := parseFixture(t)
	require.Len(t, entries, 5)

	caffeine := entries[0]
	assert.Equal(t, "1-caffeine", caffeine.ID)
	assert.Equal(t, 1, caffeine.IndexNumber)
	assert.Equal(t, models.EntryKindSubstance, caffeine.Kind)
	assert.Equal(t, "category-1-stimulants-and-eugeroics", caffeine.CategoryID)
	assert.Equal(t, []string{"Alertness", "Focus", "Energy"}, caffeine.Benefits)
	assert.Equal(t, 5, caffeine.EffectivenessStars)
	assert.Equal(t, models.EvidenceStrong, caffeine.EvidenceLevel)
	assert.Equal(t, []string{"L-Theanine"}, caffeine.Synergies)
	assert.Len(t, caffeine.Warnings, 3)

	// Markdown emphasis is stripped from cells.
	theanine := entries[1]
	assert.Equal(t, []string{"Caffeine"}, theanine.Synergies)

	htp := entries[2]
	assert.Equal(t, "3-5-htp", htp.ID)
	assert.Equal(t, 3, htp.EffectivenessStars)
	assert.Equal(t, models.EvidenceModerate, htp.EvidenceLevel)
}

func TestParseDocument_InterventionTable(t *testing.T) {
	_, entries := parseFixture(t)

	cold := entries[4]
	assert.Equal(t, "5-cold-exposure", cold.ID)
	assert.Equal(t, models.EntryKindIntervention, cold.Kind)
	assert.Equal(t, "2-5 min cold shower", cold.DosageOrProtocol)
	assert.Equal(t, "Morning, 3-5x weekly", cold.TimingAdministration)
	// Intervention tables have no Duration column.
	assert.Equal(t, "Protocol dependent.", cold.Duration)
	// The extra cell before the trailing column is the cycling guidance.
	assert.True(t, cold.Cycling.Required)
	assert.Equal(t, "Yes — rest days are mandatory", cold.Cycling.Guidance)
	assert.Equal(t, "Not for uncontrolled hypertension.", cold.RawNotes)
}

func TestParseDocument_SubstanceCyclingDefault(t *testing.T) {
	_, entries := parseFixture(t)

	caffeine := entries[0]
	assert.False(t, caffeine.Cycling.Required)
	assert.Equal(t, "Not specified in source data.", caffeine.Cycling.Guidance)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"**bold** text", "bold text"},
		{"`code` span", "code span"},
		{"[link](https://example.com) here", "link here"},
		{"  collapse \t whitespace  ", "collapse whitespace"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripMarkdown(tt.input))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Stimulants & Eugeroics", "stimulants-and-eugeroics"},
		{"5-HTP", "5-htp"},
		{"Lion's Mane (Hericium)", "lion-s-mane-hericium"},
		{"**Creatine Monohydrate**", "creatine-monohydrate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.input))
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"semicolons preferred", "a; b; c", []string{"a", "b", "c"}},
		{"commas when one semicolon segment", "a, b, c", []string{"a", "b", "c"}},
		{"single item", "alone", []string{"alone"}},
		{"empty", "", []string{}},
		{"semicolon with trailing empty", "a; b;", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitList(tt.input))
		})
	}
}

func TestSplitWarnings(t *testing.T) {
	t.Run("semicolons win with two or more segments", func(t *testing.T) {
		got := splitWarnings("Insomnia risk; Not for pregnancy")
		assert.Equal(t, []string{"Insomnia risk", "Not for pregnancy"}, got)
	})

	t.Run("sentence split otherwise", func(t *testing.T) {
		got := splitWarnings("Generally safe. May cause headaches. Start low.")
		assert.Equal(t, []string{"Generally safe", "May cause headaches", "Start low."}, got)
	})

	t.Run("capped at ten", func(t *testing.T) {
		got := splitWarnings("a; b; c; d; e; f; g; h; i; j; k; l")
		assert.Len(t, got, 10)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, []string{}, splitWarnings(""))
	})
}

func TestParseStars(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 1},
		{"★", 1},
		{"★★", 2},
		{"★★★", 3},
		{"★★★★", 4},
		{"★★★★★", 5},
		{"★★★★★★★", 5},
		{"no stars at all", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseStars(tt.input), "input %q", tt.input)
	}
}

func TestParseCycling(t *testing.T) {
	tests := []struct {
		input        string
		wantRequired bool
		wantGuidance string
	}{
		{"Yes, 5 days on 2 off", true, "Yes, 5 days on 2 off"},
		{"Non-negotiable rest days", true, "Non-negotiable rest days"},
		{"MANDATORY breaks", true, "MANDATORY breaks"},
		{"No cycling needed", false, "No cycling needed"},
		{"", false, "Not specified in source data."},
	}
	for _, tt := range tests {
		got := parseCycling(tt.input)
		assert.Equal(t, tt.wantRequired, got.Required, "input %q", tt.input)
		assert.Equal(t, tt.wantGuidance, got.Guidance, "input %q", tt.input)
	}
}
