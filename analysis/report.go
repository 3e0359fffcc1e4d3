package analysis

import (
	"time"

	"github.com/Maurilio21/cante-ganhe-backend/coherence"
	"github.com/Maurilio21/cante-ganhe-backend/feedback"
	"github.com/Maurilio21/cante-ganhe-backend/grammar"
	"github.com/Maurilio21/cante-ganhe-backend/meter"
	"github.com/Maurilio21/cante-ganhe-backend/rhyme"
)

// ReasonRhymeBreak labels rhyme break issues in the report.
const ReasonRhymeBreak = "quebra_de_rima"

// Validation protocol phase labels. Phase 1 is this engine; the later
// phases are human steps tracked outside it.
const (
	PhaseAutomated  = "validacao_automatica_concluida"
	PhaseSpecialist = "revisao_especialista_pendente"
	PhaseComposers  = "teste_compositores_pendente"
)

// Report is the full analysis result for one song, serialized as the
// service's JSON contract.
type Report struct {
	Meta     Meta            `json:"meta"`
	Sections []SectionReport `json:"sections"`
	Checks   Checks          `json:"checks"`
	Scores   feedback.Scores `json:"scores"`
	Protocol Protocol        `json:"protocol"`
	Feedback Snapshot        `json:"feedback"`
}

// Meta identifies the analyzed song and run.
type Meta struct {
	Title         string    `json:"title"`
	Genre         string    `json:"genre"`
	TimeSignature string    `json:"timeSignature"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// SectionReport is one section with its syllable metrics.
type SectionReport struct {
	Name    string         `json:"name"`
	Lines   []string       `json:"lines"`
	Metrics SectionMetrics `json:"metrics"`
}

// SectionMetrics summarizes a section's poetic syllable counts.
// Average and Std are rounded to two decimals.
type SectionMetrics struct {
	AverageSyllables float64 `json:"averageSyllables"`
	Std              float64 `json:"std"`
	Syllables        []int   `json:"syllables"`
}

// Checks groups every analyzer's findings.
type Checks struct {
	Rhymes           RhymeChecks     `json:"rhymes"`
	Meter            MeterChecks     `json:"meter"`
	Grammar          GrammarChecks   `json:"grammar"`
	MusicalAdherence MusicalChecks   `json:"musicalAdherence"`
	Coherence        CoherenceChecks `json:"coherence"`
	Phonetics        PhoneticChecks  `json:"phonetics"`
}

// RhymeBreak is a line whose ending rhymes with nothing else in its
// section.
type RhymeBreak struct {
	Section   string `json:"section"`
	LineIndex int    `json:"lineIndex"`
	Reason    string `json:"reason"`
}

// SectionPairs are the classified rhyme pairs of one section.
type SectionPairs struct {
	Section string       `json:"section"`
	Pairs   []rhyme.Pair `json:"pairs"`
}

// RhymeChecks holds rhyme breaks and per-section pair details.
type RhymeChecks struct {
	Issues []RhymeBreak   `json:"issues"`
	Pairs  []SectionPairs `json:"pairs"`
}

// MeterChecks holds irregular sections and per-line syllable counts.
type MeterChecks struct {
	VarianceIssues []meter.VarianceIssue `json:"varianceIssues"`
	LineMetrics    []meter.LineMetric    `json:"lineMetrics"`
}

// GrammarChecks holds grammar and slang findings.
type GrammarChecks struct {
	Issues []grammar.Issue `json:"issues"`
}

// MusicalChecks holds genre cadence findings and the reference used.
type MusicalChecks struct {
	CadenceIssues []meter.CadenceIssue `json:"cadenceIssues"`
	TimeSignature string               `json:"timeSignature"`
	Genre         string               `json:"genre"`
}

// CoherenceChecks holds theme and emotion findings plus the keywords
// that drove them.
type CoherenceChecks struct {
	DriftIssues     []coherence.DriftIssue `json:"driftIssues"`
	EmotionIssues   []coherence.ShiftIssue `json:"emotionIssues"`
	SectionKeywords [][]string             `json:"sectionKeywords"`
}

// CacophonyIssue is an unpleasant sound sequence found on a line. Line
// indexes are global over the whole song, in section order.
type CacophonyIssue struct {
	LineIndex int    `json:"lineIndex"`
	Hit       string `json:"hit"`
}

// AlliterationIssue flags a line with heavy initial-consonant
// repetition.
type AlliterationIssue struct {
	LineIndex int `json:"lineIndex"`
}

// PhoneticChecks holds euphony findings.
type PhoneticChecks struct {
	CacophonyIssues    []CacophonyIssue    `json:"cacophonyIssues"`
	AlliterationIssues []AlliterationIssue `json:"alliterationIssues"`
}

// Protocol reports the validation protocol phases.
type Protocol struct {
	Phase1 string `json:"phase1"`
	Phase2 string `json:"phase2"`
	Phase3 string `json:"phase3"`
}

// Snapshot is the feedback state after this run: cumulative rule hit
// counts and the dynamic weights they have earned.
type Snapshot struct {
	RuleHits       map[string]int     `json:"ruleHits"`
	DynamicWeights map[string]float64 `json:"dynamicWeights"`
}
