package models

// EntryKind distinguishes ingestible substances from practice-based interventions.
type EntryKind string

const (
	EntryKindSubstance    EntryKind = "substance"
	EntryKindIntervention EntryKind = "intervention"
)

// EvidenceLevel expresses the confidence behind an effectiveness rating or rule.
// Derived deterministically from effectiveness stars: >=4 strong, ==3 moderate,
// else limited.
type EvidenceLevel string

const (
	EvidenceStrong   EvidenceLevel = "strong"
	EvidenceModerate EvidenceLevel = "moderate"
	EvidenceLimited  EvidenceLevel = "limited"
)

// Priority ranks evidence levels for rule tie-breaking (strong highest).
func (e EvidenceLevel) Priority() int {
	switch e {
	case EvidenceStrong:
		return 3
	case EvidenceModerate:
		return 2
	case EvidenceLimited:
		return 1
	default:
		return 0
	}
}

// EvidenceLevelForStars maps an effectiveness star count to an evidence level.
func EvidenceLevelForStars(stars int) EvidenceLevel {
	switch {
	case stars >= 4:
		return EvidenceStrong
	case stars == 3:
		return EvidenceModerate
	default:
		return EvidenceLimited
	}
}

// StimulationProfile summarizes whether an entry pushes arousal up, down,
// both, or neither. Derived purely from inferred tags.
type StimulationProfile string

const (
	ProfileStimulating StimulationProfile = "stimulating"
	ProfileCalming     StimulationProfile = "calming"
	ProfileBalanced    StimulationProfile = "balanced"
	ProfileUnknown     StimulationProfile = "unknown"
)

// CyclingInfo captures whether an entry needs on/off cycling and the source guidance.
type CyclingInfo struct {
	Required bool   `json:"required"`
	Guidance string `json:"guidance" validate:"required"`
}

// Entry is one catalogued substance or intervention.
// All fields are populated by the ingestion pipeline and immutable at runtime.
type Entry struct {
	ID                   string             `json:"id" validate:"required"`
	IndexNumber          int                `json:"indexNumber" validate:"required,gt=0"`
	Name                 string             `json:"name" validate:"required"`
	Kind                 EntryKind          `json:"kind" validate:"required,oneof=substance intervention"`
	CategoryID           string             `json:"categoryId" validate:"required"`
	Mechanism            string             `json:"mechanism" validate:"required"`
	Benefits             []string           `json:"benefits" validate:"dive,required"`
	DosageOrProtocol     string             `json:"dosageOrProtocol" validate:"required"`
	TimingAdministration string             `json:"timingAdministration" validate:"required"`
	Onset                string             `json:"onset" validate:"required"`
	Duration             string             `json:"duration" validate:"required"`
	EffectivenessStars   int                `json:"effectivenessStars" validate:"required,min=1,max=5"`
	EvidenceLevel        EvidenceLevel      `json:"evidenceLevel" validate:"required,oneof=strong moderate limited"`
	StimulationProfile   StimulationProfile `json:"stimulationProfile" validate:"required,oneof=stimulating calming balanced unknown"`
	Synergies            []string           `json:"synergies" validate:"dive,required"`
	Cycling              CyclingInfo        `json:"cycling"`
	Warnings             []string           `json:"warnings" validate:"dive,required"`
	Tags                 []string           `json:"tags" validate:"dive,required"`
	RawNotes             string             `json:"rawNotes" validate:"required"`
}

// Validate checks the entry against the schema rules.
func (e *Entry) Validate() error {
	return validate.Struct(e)
}

// HasTag reports whether the entry carries the given inferred tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
