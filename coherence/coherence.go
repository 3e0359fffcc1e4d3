// Package coherence measures thematic and emotional consistency across
// lyric sections.
//
// Each section is profiled by its top keywords (accent-stripped word
// frequency, stopwords excluded) and a lexicon-based emotion score.
// Adjacent sections are then compared: low keyword overlap is theme
// drift, an abrupt emotion delta is an emotion shift. Only adjacent
// sections in document order are compared.
//
// All functions are safe for concurrent use by multiple goroutines.
package coherence

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Maurilio21/cante-ganhe-backend/data"
	"github.com/Maurilio21/cante-ganhe-backend/normalize"
	"github.com/Maurilio21/cante-ganhe-backend/sections"
)

const (
	// maxKeywords is the number of keywords kept per section.
	maxKeywords = 6

	// driftThreshold is the Jaccard similarity below which adjacent
	// sections are considered thematically disconnected.
	driftThreshold = 0.15

	// shiftThreshold is the emotion score delta at which an adjacent
	// section change counts as an abrupt shift.
	shiftThreshold = 4
)

// lexicon maps accent-stripped words to emotion polarity, built once at
// init from the embedded data file.
var lexicon map[string]int

func init() {
	lexicon = parseLexicon(data.EmotionLexicon)
}

// parseLexicon parses tab-separated "word\tpolarity" lines. Blank lines
// and #-comments are skipped, as are unparseable polarities.
func parseLexicon(raw string) map[string]int {
	m := make(map[string]int, 32)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		score, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		m[strings.TrimSpace(parts[0])] = score
	}
	return m
}

// SectionProfile is the thematic summary of one section.
type SectionProfile struct {
	Keywords     []string `json:"keywords"`
	EmotionScore int      `json:"emotionScore"`
}

// DriftIssue reports low keyword overlap between adjacent sections.
type DriftIssue struct {
	Index      int     `json:"index"`
	NextIndex  int     `json:"nextIndex"`
	Similarity float64 `json:"similarity"`
}

// ShiftIssue reports an abrupt emotional change between adjacent
// sections.
type ShiftIssue struct {
	Index     int `json:"index"`
	NextIndex int `json:"nextIndex"`
	Delta     int `json:"delta"`
}

// Keywords extracts up to six accent-stripped keywords from lines by
// descending word frequency, skipping stopwords. Frequency ties keep
// first-occurrence order.
func Keywords(lines []string) []string {
	type entry struct {
		word  string
		count int
	}
	seen := make(map[string]*entry)
	var order []*entry
	for _, line := range lines {
		for _, word := range normalize.Words(line) {
			if isStopword(word) {
				continue
			}
			clean := normalize.StripAccents(word)
			e, ok := seen[clean]
			if !ok {
				e = &entry{word: clean}
				seen[clean] = e
				order = append(order, e)
			}
			e.count++
		}
	}
	slices.SortStableFunc(order, func(a, b *entry) int { return b.count - a.count })
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	out := make([]string, len(order))
	for i, e := range order {
		out[i] = e.word
	}
	return out
}

// EmotionScore sums emotion polarity over all words of lines: +1 per
// positive lexicon word, -1 per negative. Matching is
// accent-insensitive.
func EmotionScore(lines []string) int {
	score := 0
	for _, line := range lines {
		for _, word := range normalize.Words(line) {
			score += lexicon[normalize.StripAccents(word)]
		}
	}
	return score
}

// Analyze profiles every section and compares adjacent pairs for theme
// drift and emotion shifts.
func Analyze(secs []sections.Section) ([]SectionProfile, []DriftIssue, []ShiftIssue) {
	profiles := make([]SectionProfile, len(secs))
	for i, sec := range secs {
		profiles[i] = SectionProfile{
			Keywords:     Keywords(sec.Lines),
			EmotionScore: EmotionScore(sec.Lines),
		}
	}

	var drifts []DriftIssue
	var shifts []ShiftIssue
	for i := 0; i+1 < len(profiles); i++ {
		sim := jaccard(profiles[i].Keywords, profiles[i+1].Keywords)
		if sim < driftThreshold {
			drifts = append(drifts, DriftIssue{Index: i, NextIndex: i + 1, Similarity: sim})
		}
		delta := profiles[i].EmotionScore - profiles[i+1].EmotionScore
		if delta < 0 {
			delta = -delta
		}
		if delta >= shiftThreshold {
			shifts = append(shifts, ShiftIssue{Index: i, NextIndex: i + 1, Delta: delta})
		}
	}
	return profiles, drifts, shifts
}

// jaccard computes set similarity of two keyword lists. A section
// without keywords is fully similar to its neighbor, which suppresses
// false drift on tiny sections.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 1
	}
	set := make(map[string]struct{}, len(a))
	for _, w := range a {
		set[w] = struct{}{}
	}
	inter := 0
	union := len(a)
	for _, w := range b {
		if _, ok := set[w]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}
