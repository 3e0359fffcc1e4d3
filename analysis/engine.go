// Package analysis runs the full lyric quality pipeline: sectionize,
// analyze rhyme, meter, grammar, coherence and euphony, score the
// result, and merge the run into the adaptive feedback state.
//
// The pipeline is deterministic: the same lyrics, genre reference and
// feedback state always yield the same report (timestamps aside).
// Feedback persistence is best-effort: a store failure is logged and
// the report still returned.
//
// Known limitations:
//   - Scores are linear issue penalties, not a perceptual model.
//   - Dynamic weights are tracked and reported but do not yet feed back
//     into the category scores.
package analysis

import (
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Maurilio21/cante-ganhe-backend/coherence"
	"github.com/Maurilio21/cante-ganhe-backend/feedback"
	"github.com/Maurilio21/cante-ganhe-backend/genres"
	"github.com/Maurilio21/cante-ganhe-backend/grammar"
	"github.com/Maurilio21/cante-ganhe-backend/meter"
	"github.com/Maurilio21/cante-ganhe-backend/phonetics"
	"github.com/Maurilio21/cante-ganhe-backend/rhyme"
	"github.com/Maurilio21/cante-ganhe-backend/sections"
)

// DefaultTimeSignature is assumed when a song specifies none.
const DefaultTimeSignature = "4/4"

// Category score penalties per issue.
const (
	grammarPenalty = 8
	rhymePenalty   = 10
	musicalPenalty = 8
	themePenalty   = 10
)

// Total score blend weights.
const (
	grammarBlend = 0.30
	rhymeBlend   = 0.25
	musicalBlend = 0.25
	themeBlend   = 0.20
)

// Song is an analysis request.
type Song struct {
	Title         string `json:"title"`
	Lyrics        string `json:"lyrics"`
	Genre         string `json:"genre"`
	TimeSignature string `json:"timeSignature"`
}

// Engine wires the analyzers to a genre reference and a feedback store.
// Safe for concurrent use as long as the store is.
type Engine struct {
	genres genres.Source
	store  feedback.Store
	log    zerolog.Logger
	now    func() time.Time
}

// New builds an engine. A nil src falls back to the built-in genre
// table; a nil store keeps feedback in memory only.
func New(src genres.Source, store feedback.Store, log zerolog.Logger) *Engine {
	if src == nil {
		src = genres.Default()
	}
	if store == nil {
		store = feedback.NewMemStore()
	}
	return &Engine{genres: src, store: store, log: log, now: time.Now}
}

// Analyze runs the full pipeline over one song and returns its report.
// The feedback state is loaded, updated with this run and saved; load
// and save failures are logged and analysis proceeds regardless.
func (e *Engine) Analyze(song Song) (*Report, error) {
	state, err := e.store.Load()
	if err != nil {
		e.log.Warn().Err(err).Msg("feedback state unreadable, starting fresh")
	}

	genreKey := strings.ToLower(strings.TrimSpace(song.Genre))
	timeSignature := song.TimeSignature
	if timeSignature == "" {
		timeSignature = DefaultTimeSignature
	}

	secs := sections.Split(song.Lyrics)
	var allLines []string
	for _, sec := range secs {
		allLines = append(allLines, sec.Lines...)
	}

	var rhymeBreaks []RhymeBreak
	var rhymePairs []SectionPairs
	for _, sec := range secs {
		pairs, breaks := rhyme.AnalyzeSection(sec.Lines)
		rhymePairs = append(rhymePairs, SectionPairs{Section: sec.Name, Pairs: orEmpty(pairs)})
		for _, idx := range breaks {
			rhymeBreaks = append(rhymeBreaks, RhymeBreak{
				Section:   sec.Name,
				LineIndex: idx,
				Reason:    ReasonRhymeBreak,
			})
		}
	}

	lineMetrics, sectionStats := meter.Analyze(secs)
	varianceIssues := meter.VarianceIssues(sectionStats)
	cadenceIssues := meter.Cadence(sectionStats, e.genres.Lookup(genreKey), timeSignature)

	grammarIssues := grammar.Check(allLines)
	profiles, driftIssues, shiftIssues := coherence.Analyze(secs)

	var cacophonyIssues []CacophonyIssue
	var alliterationIssues []AlliterationIssue
	for i, line := range allLines {
		for _, hit := range phonetics.Cacophonies(line) {
			cacophonyIssues = append(cacophonyIssues, CacophonyIssue{LineIndex: i, Hit: hit})
		}
		if phonetics.HasAlliteration(line) {
			alliterationIssues = append(alliterationIssues, AlliterationIssue{LineIndex: i})
		}
	}

	runHits := map[string]int{}
	for range rhymeBreaks {
		runHits["rhyme_break"]++
	}
	for _, issue := range grammarIssues {
		runHits[issue.ID]++
	}
	for _, issue := range cadenceIssues {
		runHits[issue.Kind]++
	}
	for range cacophonyIssues {
		runHits["cacophony"]++
	}
	for range alliterationIssues {
		runHits["alliteration"]++
	}
	for range varianceIssues {
		runHits["meter_variance"]++
	}
	for range driftIssues {
		runHits["theme_drift"]++
	}
	for range shiftIssues {
		runHits["emotion_shift"]++
	}

	musicalCount := len(cadenceIssues) + len(varianceIssues)
	themeCount := len(driftIssues) + len(shiftIssues)
	scores := feedback.Scores{
		Grammar: categoryScore(len(grammarIssues), grammarPenalty),
		Rhymes:  categoryScore(len(rhymeBreaks), rhymePenalty),
		Musical: categoryScore(musicalCount, musicalPenalty),
		Theme:   categoryScore(themeCount, themePenalty),
	}
	scores.Total = round2(scores.Grammar*grammarBlend +
		scores.Rhymes*rhymeBlend +
		scores.Musical*musicalBlend +
		scores.Theme*themeBlend)

	now := e.now()
	state.Record(runHits, feedback.RunRecord{
		Timestamp:     now,
		Scores:        scores,
		Genre:         genreKey,
		TimeSignature: timeSignature,
		Issues: feedback.IssueCounts{
			Grammar: len(grammarIssues),
			Rhymes:  len(rhymeBreaks),
			Musical: musicalCount,
			Theme:   themeCount,
		},
	})
	if err := e.store.Save(state); err != nil {
		e.log.Warn().Err(err).Msg("feedback state not saved")
	}

	e.log.Info().
		Str("genre", genreKey).
		Str("time_signature", timeSignature).
		Int("sections", len(secs)).
		Int("lines", len(allLines)).
		Float64("total", scores.Total).
		Msg("lyrics analyzed")

	report := &Report{
		Meta: Meta{
			Title:         song.Title,
			Genre:         genreKey,
			TimeSignature: timeSignature,
			GeneratedAt:   now,
		},
		Sections: sectionReports(secs, sectionStats),
		Checks: Checks{
			Rhymes: RhymeChecks{
				Issues: orEmpty(rhymeBreaks),
				Pairs:  orEmpty(rhymePairs),
			},
			Meter: MeterChecks{
				VarianceIssues: orEmpty(varianceIssues),
				LineMetrics:    orEmpty(lineMetrics),
			},
			Grammar: GrammarChecks{Issues: orEmpty(grammarIssues)},
			MusicalAdherence: MusicalChecks{
				CadenceIssues: orEmpty(cadenceIssues),
				TimeSignature: timeSignature,
				Genre:         genreKey,
			},
			Coherence: CoherenceChecks{
				DriftIssues:     orEmpty(driftIssues),
				EmotionIssues:   orEmpty(shiftIssues),
				SectionKeywords: sectionKeywords(profiles),
			},
			Phonetics: PhoneticChecks{
				CacophonyIssues:    orEmpty(cacophonyIssues),
				AlliterationIssues: orEmpty(alliterationIssues),
			},
		},
		Scores: scores,
		Protocol: Protocol{
			Phase1: PhaseAutomated,
			Phase2: PhaseSpecialist,
			Phase3: PhaseComposers,
		},
		Feedback: snapshotOf(state),
	}
	return report, nil
}

// sectionReports pairs each section with its rounded metrics.
func sectionReports(secs []sections.Section, stats []meter.SectionStat) []SectionReport {
	out := make([]SectionReport, len(secs))
	for i, sec := range secs {
		out[i] = SectionReport{
			Name:  sec.Name,
			Lines: sec.Lines,
			Metrics: SectionMetrics{
				AverageSyllables: round2(stats[i].Average),
				Std:              round2(stats[i].Std),
				Syllables:        orEmpty(stats[i].Syllables),
			},
		}
	}
	return out
}

// sectionKeywords extracts the keyword lists of every profile.
func sectionKeywords(profiles []coherence.SectionProfile) [][]string {
	out := make([][]string, len(profiles))
	for i, p := range profiles {
		out[i] = orEmpty(p.Keywords)
	}
	return out
}

// snapshotOf copies the cumulative hit counts and weights out of the
// state so the report cannot alias it.
func snapshotOf(state feedback.State) Snapshot {
	snap := Snapshot{
		RuleHits:       make(map[string]int, len(state.RuleHits)),
		DynamicWeights: make(map[string]float64, len(state.DynamicWeights)),
	}
	for rule, hits := range state.RuleHits {
		snap.RuleHits[rule] = hits
	}
	for rule, w := range state.DynamicWeights {
		snap.DynamicWeights[rule] = w
	}
	return snap
}

// categoryScore deducts a fixed penalty per issue from 100, clamped to
// [0, 100].
func categoryScore(issues, penalty int) float64 {
	score := 100 - float64(issues*penalty)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// orEmpty replaces a nil slice with an empty one so report arrays
// serialize as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
