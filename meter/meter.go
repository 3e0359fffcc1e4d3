// Package meter aggregates per-line poetic syllable counts into section
// statistics and checks them against genre cadence expectations.
//
// All functions are safe for concurrent use by multiple goroutines.
package meter

import (
	"math"

	"github.com/Maurilio21/cante-ganhe-backend/genres"
	"github.com/Maurilio21/cante-ganhe-backend/phonetics"
	"github.com/Maurilio21/cante-ganhe-backend/sections"
)

const (
	// defaultMinSyllables and defaultMaxSyllables bound the per-line
	// cadence range when no genre reference is available.
	defaultMinSyllables = 6
	defaultMaxSyllables = 11

	// maxStd is the per-section standard deviation above which the
	// cadence is considered irregular.
	maxStd = 1.5
)

// Cadence issue kinds, used as feedback rule identifiers.
const (
	KindOutOfRange    = "meter_out_of_range"
	KindTimeSignature = "time_signature_mismatch"
)

// LineMetric is the poetic syllable count of one line.
type LineMetric struct {
	SectionIndex int `json:"sectionIndex"`
	LineIndex    int `json:"lineIndex"`
	Syllables    int `json:"syllables"`
}

// SectionStat summarizes the syllable counts of one section. Std is the
// population standard deviation.
type SectionStat struct {
	Average   float64 `json:"average"`
	Std       float64 `json:"std"`
	Syllables []int   `json:"syllables"`
}

// VarianceIssue flags a section whose syllable counts vary too much.
type VarianceIssue struct {
	SectionIndex int     `json:"sectionIndex"`
	Std          float64 `json:"std"`
}

// CadenceIssue is either an out-of-range line (Kind KindOutOfRange,
// with SectionIndex, Syllables and Expected set) or a time-signature
// mismatch (Kind KindTimeSignature, with TimeSignature set).
type CadenceIssue struct {
	Kind          string `json:"kind"`
	SectionIndex  int    `json:"sectionIndex"`
	Syllables     int    `json:"syllables,omitempty"`
	Expected      []int  `json:"expected,omitempty"`
	TimeSignature string `json:"timeSignature,omitempty"`
}

// Analyze computes the line metrics and per-section statistics of secs.
func Analyze(secs []sections.Section) ([]LineMetric, []SectionStat) {
	var metrics []LineMetric
	stats := make([]SectionStat, len(secs))
	for si, sec := range secs {
		counts := make([]int, 0, len(sec.Lines))
		for li, line := range sec.Lines {
			n := phonetics.PoeticSyllables(line)
			metrics = append(metrics, LineMetric{SectionIndex: si, LineIndex: li, Syllables: n})
			counts = append(counts, n)
		}
		stats[si] = statOf(counts)
	}
	return metrics, stats
}

// statOf derives the summary of one section's counts.
func statOf(counts []int) SectionStat {
	n := float64(len(counts))
	if n == 0 {
		n = 1
	}
	sum := 0
	for _, c := range counts {
		sum += c
	}
	avg := float64(sum) / n
	variance := 0.0
	for _, c := range counts {
		d := float64(c) - avg
		variance += d * d
	}
	variance /= n
	return SectionStat{Average: avg, Std: math.Sqrt(variance), Syllables: counts}
}

// VarianceIssues returns one issue per section whose standard deviation
// exceeds the irregularity threshold.
func VarianceIssues(stats []SectionStat) []VarianceIssue {
	var out []VarianceIssue
	for i, s := range stats {
		if s.Std > maxStd {
			out = append(out, VarianceIssue{SectionIndex: i, Std: s.Std})
		}
	}
	return out
}

// Cadence checks section stats against the genre's syllable range and
// allowed time signatures. A nil cfg applies the default range and
// skips the time-signature check.
func Cadence(stats []SectionStat, cfg *genres.Config, timeSignature string) []CadenceIssue {
	lo, hi := defaultMinSyllables, defaultMaxSyllables
	if cfg != nil && len(cfg.SyllableRange) == 2 {
		lo, hi = cfg.SyllableRange[0], cfg.SyllableRange[1]
	}

	var issues []CadenceIssue
	for i, stat := range stats {
		for _, count := range stat.Syllables {
			if count < lo || count > hi {
				issues = append(issues, CadenceIssue{
					Kind:         KindOutOfRange,
					SectionIndex: i,
					Syllables:    count,
					Expected:     []int{lo, hi},
				})
			}
		}
	}
	if cfg != nil && !cfg.AllowsTimeSignature(timeSignature) {
		issues = append(issues, CadenceIssue{Kind: KindTimeSignature, TimeSignature: timeSignature})
	}
	return issues
}
