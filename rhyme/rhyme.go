// Package rhyme classifies the rhymes between adjacent lyric lines.
//
// Each line contributes its final word's ending: rhyme key, vowel-only
// key, and heuristic part-of-speech tag. Adjacent pairs are classified
// as consonant (full match from the stressed vowel), assonant (vowel
// sounds only), or none, and graded rich/poor/neutral by grammatical
// class. Lines whose ending key appears only once in a section are
// reported as rhyme breaks: verse rhyme schemes are expected to repeat.
//
// Classification is evaluated directionally line to next line.
//
// All functions are safe for concurrent use by multiple goroutines.
package rhyme

import (
	"encoding/json"
	"fmt"

	"github.com/Maurilio21/cante-ganhe-backend/normalize"
	"github.com/Maurilio21/cante-ganhe-backend/phonetics"
)

// Type classifies a rhyme pair.
type Type int

const (
	None Type = iota
	Assonant
	Consonant
)

// typeNames maps Type values to their string names.
var typeNames = [...]string{
	None:      "none",
	Assonant:  "assonant",
	Consonant: "consonant",
}

// typeFromName maps string names back to Type values.
var typeFromName = map[string]Type{
	"none":      None,
	"assonant":  Assonant,
	"consonant": Consonant,
}

// String returns the name of the rhyme type.
func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalJSON encodes the rhyme type as a JSON string (e.g. "consonant").
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string into a Type.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := typeFromName[s]
	if !ok {
		return fmt.Errorf("rhyme: unknown type: %q", s)
	}
	*t = v
	return nil
}

// Richness grades a rhyme by the grammatical classes of its words:
// rich when both are known and different, poor when both are known and
// identical, neutral otherwise.
type Richness int

const (
	Neutral Richness = iota
	Poor
	Rich
)

// richnessNames maps Richness values to their string names.
var richnessNames = [...]string{
	Neutral: "neutral",
	Poor:    "poor",
	Rich:    "rich",
}

// richnessFromName maps string names back to Richness values.
var richnessFromName = map[string]Richness{
	"neutral": Neutral,
	"poor":    Poor,
	"rich":    Rich,
}

// String returns the name of the richness grade.
func (r Richness) String() string {
	if int(r) >= 0 && int(r) < len(richnessNames) {
		return richnessNames[r]
	}
	return fmt.Sprintf("Richness(%d)", int(r))
}

// MarshalJSON encodes the richness as a JSON string (e.g. "rich").
func (r Richness) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string into a Richness.
func (r *Richness) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := richnessFromName[s]
	if !ok {
		return fmt.Errorf("rhyme: unknown richness: %q", s)
	}
	*r = v
	return nil
}

// Ending describes the rhyme-relevant features of a line's final word.
// Computed on demand, not stored beyond the analysis pass.
type Ending struct {
	Word     string        `json:"word"`
	Key      string        `json:"key"`
	VowelKey string        `json:"vowelKey"`
	Tag      phonetics.Tag `json:"pos"`
}

// EndingOf derives the Ending of a line. A line without words yields a
// zero Ending.
func EndingOf(line string) Ending {
	last := normalize.LastWord(line)
	if last == "" {
		return Ending{}
	}
	return Ending{
		Word:     last,
		Key:      phonetics.RhymeKey(last),
		VowelKey: phonetics.RhymeVowelKey(last),
		Tag:      phonetics.GuessTag(last),
	}
}

// Pair classifies the rhyme between a line and the one after it.
type Pair struct {
	LineIndex     int       `json:"lineIndex"`
	NextLineIndex int       `json:"nextLineIndex"`
	Type          Type      `json:"type"`
	Richness      Richness  `json:"richness"`
	Words         [2]string `json:"words"`
}

// AnalyzeSection computes adjacent-line rhyme pairs and rhyme breaks
// for the lines of one section. Pairs skip lines without words. A break
// is the index of a line whose non-empty rhyme key occurs exactly once
// in the section.
func AnalyzeSection(lines []string) (pairs []Pair, breaks []int) {
	endings := make([]Ending, len(lines))
	for i, line := range lines {
		endings[i] = EndingOf(line)
	}

	for i := 0; i+1 < len(endings); i++ {
		cur, next := endings[i], endings[i+1]
		if cur.Word == "" || next.Word == "" {
			continue
		}
		pairs = append(pairs, Pair{
			LineIndex:     i,
			NextLineIndex: i + 1,
			Type:          classify(cur, next),
			Richness:      gradeRichness(cur.Tag, next.Tag),
			Words:         [2]string{cur.Word, next.Word},
		})
	}

	counts := make(map[string]int, len(endings))
	for _, e := range endings {
		if e.Key != "" {
			counts[e.Key]++
		}
	}
	for i, e := range endings {
		if e.Key != "" && counts[e.Key] == 1 {
			breaks = append(breaks, i)
		}
	}
	return pairs, breaks
}

// classify resolves the rhyme type of two endings. Consonant requires
// equal non-empty keys; assonant equal non-empty vowel keys with keys
// differing.
func classify(a, b Ending) Type {
	switch {
	case a.Key != "" && a.Key == b.Key:
		return Consonant
	case a.VowelKey != "" && a.VowelKey == b.VowelKey:
		return Assonant
	default:
		return None
	}
}

// gradeRichness grades a pair by part-of-speech tags.
func gradeRichness(a, b phonetics.Tag) Richness {
	switch {
	case a != phonetics.Unknown && b != phonetics.Unknown && a != b:
		return Rich
	case a == b && a != phonetics.Unknown:
		return Poor
	default:
		return Neutral
	}
}
