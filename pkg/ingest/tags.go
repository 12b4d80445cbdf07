package ingest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/biostack-io/biostack-engine/pkg/models"
)

// Inferred tag vocabulary. Tags drive the heuristic compatibility rules, so
// renaming one here requires regenerating the rule set.
const (
	TagStimulatory              = "stimulatory"
	TagCalming                  = "calming"
	TagSedating                 = "sedating"
	TagSerotonergic             = "serotonergic"
	TagMAOInhibitor             = "mao_inhibitor"
	TagBloodThinnerRisk         = "blood_thinner_risk"
	TagCholinergic              = "cholinergic"
	TagGABAergic                = "gabaergic"
	TagPsychedelic              = "psychedelic"
	TagThyroidSensitive         = "thyroid_sensitive"
	TagBloodPressureSensitive   = "blood_pressure_sensitive"
	TagSpecialPopulationCaution = "special_population_caution"
)

// tagRule is one independent keyword check. The battery is declarative so
// individual rules can be unit-tested and extended without touching the
// matching loop.
type tagRule struct {
	tags    []string
	pattern *regexp.Regexp
	// entryTextOnly matches against the raw entry text without the category
	// title appended; the pattern carries its own case-insensitivity flag.
	entryTextOnly bool
}

var tagRules = []tagRule{
	{
		tags:    []string{TagStimulatory},
		pattern: regexp.MustCompile(`(stimulant|stimulating|wakefulness|alertness|energizing|psychostimulation|eugeroic|dopamine surge|adrenaline|caffeine|modafinil|cold exposure)`),
	},
	{
		tags:    []string{TagCalming, TagSedating},
		pattern: regexp.MustCompile(`(calm|calming|anxiolytic|anxiety reduction|sleep|sedat|drows|bedtime|relaxation)`),
	},
	{
		tags:    []string{TagSerotonergic},
		pattern: regexp.MustCompile(`(serotonin|5-ht|ssri|snri|triptan|fluoxetine|serotonergic|5-ht2a)`),
	},
	{
		tags:    []string{TagMAOInhibitor},
		pattern: regexp.MustCompile(`(mao-a|mao-b|maoi|monoamine oxidase)`),
	},
	{
		tags:    []string{TagBloodThinnerRisk},
		pattern: regexp.MustCompile(`(anticoagulant|blood thinner|blood-thinning|platelet|before surgery)`),
	},
	{
		tags:          []string{TagCholinergic},
		pattern:       regexp.MustCompile(`(?i)(acetylcholine|choline|ache inhibitor|acetylcholinesterase|ache)`),
		entryTextOnly: true,
	},
	{
		tags:    []string{TagGABAergic},
		pattern: regexp.MustCompile(`(gaba|gabaergic|benzodiazepine|phenibut)`),
	},
	{
		tags:    []string{TagPsychedelic},
		pattern: regexp.MustCompile(`(psilocybin|lsd|ketamine|psychedelic)`),
	},
	{
		tags:    []string{TagThyroidSensitive},
		pattern: regexp.MustCompile(`(thyroid)`),
	},
	{
		tags:    []string{TagBloodPressureSensitive},
		pattern: regexp.MustCompile(`(hypertension|blood pressure)`),
	},
	{
		tags:    []string{TagSpecialPopulationCaution},
		pattern: regexp.MustCompile(`(pregnan|breastfeeding|minors)`),
	},
}

// inferTags runs the full rule battery over the entry's concatenated text
// (mechanism, benefits, dosage, timing, notes, synergies) plus the category
// title and returns the matched tags, sorted and deduplicated.
func inferTags(text, categoryTitle string) []string {
	lower := strings.ToLower(text + " " + categoryTitle)

	seen := make(map[string]bool)
	for _, rule := range tagRules {
		subject := lower
		if rule.entryTextOnly {
			subject = text
		}
		if rule.pattern.MatchString(subject) {
			for _, tag := range rule.tags {
				seen[tag] = true
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// inferStimulationProfile derives the profile purely from tag presence.
func inferStimulationProfile(tags []string) models.StimulationProfile {
	var stimulating, calming bool
	for _, tag := range tags {
		switch tag {
		case TagStimulatory:
			stimulating = true
		case TagCalming, TagSedating:
			calming = true
		}
	}

	switch {
	case stimulating && calming:
		return models.ProfileBalanced
	case stimulating:
		return models.ProfileStimulating
	case calming:
		return models.ProfileCalming
	default:
		return models.ProfileUnknown
	}
}
