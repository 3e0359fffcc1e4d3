// Package phonetics implements Portuguese verse phonetics: vowel-cluster
// segmentation, stress-group detection, poetic syllable counting with
// synalepha, rhyme key derivation, and a suffix-based part-of-speech
// heuristic.
//
// Syllable counting is grapheme-driven: each maximal run of vowel
// characters in a word is one syllable nucleus. Poetic counting follows
// the traditional Portuguese scansion convention of stopping at the
// stressed syllable of a line's final word, then eliding one syllable
// per vowel-to-vowel word boundary (synalepha).
//
// Known limitations:
//
//   - Diphthong/hiatus distinction is not modeled; "sa-ú-de" counts as
//     two nuclei, not three.
//   - Stress detection uses the paroxytone suffix heuristic for
//     unaccented words and misses lexical exceptions.
//   - The part-of-speech tagger is suffix-only and routinely
//     misclassifies irregular forms.
//
// All functions are safe for concurrent use by multiple goroutines.
package phonetics

import (
	"strings"

	"github.com/Maurilio21/cante-ganhe-backend/normalize"
)

const (
	// vowels are Portuguese vowel characters, accented forms included.
	vowels = "aeiouáàâãéêíóôõúü"
	// accentedVowels carry a written accent and pin the stressed syllable.
	accentedVowels = "áàâãéêíóôõúü"
)

// isVowel reports whether r is a Portuguese vowel character.
func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}

// Group is a maximal run of vowel characters inside a word.
// Start and End are rune offsets, End exclusive.
type Group struct {
	Start int
	End   int
	Value string
}

// VowelGroups returns the maximal vowel runs of word in order. Each run
// is one syllable nucleus candidate.
func VowelGroups(word string) []Group {
	rs := []rune(strings.ToLower(word))
	var groups []Group
	for i := 0; i < len(rs); {
		if !isVowel(rs[i]) {
			i++
			continue
		}
		j := i
		for j < len(rs) && isVowel(rs[j]) {
			j++
		}
		groups = append(groups, Group{Start: i, End: j, Value: string(rs[i:j])})
		i = j
	}
	return groups
}

// SyllableCount returns the number of syllable nuclei in word, minimum 1.
func SyllableCount(word string) int {
	if n := len(VowelGroups(word)); n > 0 {
		return n
	}
	return 1
}

// paroxytoneEndings is the fixed suffix set of the Portuguese paroxytone
// heuristic: unaccented words ending in these are stressed on the
// second-to-last syllable. Compared against the accent-stripped word.
var paroxytoneEndings = []string{
	"a", "e", "o", "as", "es", "os", "am", "em", "ens", "um", "uns", "im", "ins",
}

// StressGroupIndex returns the index of the stressed vowel group of
// word. A written accent pins the stress to the group holding the
// right-most accented vowel; otherwise the paroxytone suffix heuristic
// applies. Single-group words are stressed on their only group.
func StressGroupIndex(word string) int {
	groups := VowelGroups(word)
	if len(groups) == 0 {
		return 0
	}
	rs := []rune(strings.ToLower(word))
	if idx := lastAccentedIndex(rs); idx >= 0 {
		for i, g := range groups {
			if idx >= g.Start && idx < g.End {
				return i
			}
		}
		return len(groups) - 1
	}
	if len(groups) == 1 {
		return 0
	}
	stripped := normalize.StripAccents(string(rs))
	for _, end := range paroxytoneEndings {
		if strings.HasSuffix(stripped, end) {
			return len(groups) - 2
		}
	}
	return len(groups) - 1
}

// lastAccentedIndex returns the rune offset of the right-most accented
// vowel, or -1.
func lastAccentedIndex(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if strings.ContainsRune(accentedVowels, rs[i]) {
			return i
		}
	}
	return -1
}

// EndsWithVowel reports whether word ends in a vowel character.
func EndsWithVowel(word string) bool {
	rs := []rune(strings.ToLower(word))
	return len(rs) > 0 && isVowel(rs[len(rs)-1])
}

// StartsWithVowelSound reports whether word begins with a vowel sound.
// A leading "h" is silent in Portuguese and transparent to the vowel
// after it, so "hoje" elides like "oje".
func StartsWithVowelSound(word string) bool {
	rs := []rune(strings.ToLower(word))
	if len(rs) == 0 {
		return false
	}
	if rs[0] == 'h' && len(rs) > 1 {
		return isVowel(rs[1])
	}
	return isVowel(rs[0])
}

// PoeticSyllables counts the poetic syllables of a line: the syllable
// counts of every word but the last, plus the final word counted only up
// to its stressed syllable, minus one elision per vowel-to-vowel word
// boundary. Returns 0 for a line with no words, otherwise at least 1.
func PoeticSyllables(line string) int {
	words := normalize.Words(line)
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words[:len(words)-1] {
		total += SyllableCount(w)
	}
	total += StressGroupIndex(words[len(words)-1]) + 1
	for i := 0; i+1 < len(words); i++ {
		if EndsWithVowel(words[i]) && StartsWithVowelSound(words[i+1]) {
			total--
		}
	}
	if total < 1 {
		return 1
	}
	return total
}

// RhymeKey returns the accent-stripped suffix of word from its stressed
// vowel group, letters only: "canção" and "então" both map to "ao".
// Equal non-empty keys mean consonant rhyme. Returns "" for an empty
// word; a word without vowels keys on its accent-stripped form.
func RhymeKey(word string) string {
	if word == "" {
		return ""
	}
	clean := strings.ToLower(word)
	groups := VowelGroups(clean)
	if len(groups) == 0 {
		return normalize.StripAccents(clean)
	}
	rs := []rune(clean)
	start := groups[StressGroupIndex(clean)].Start
	return stripNonLetters(normalize.StripAccents(string(rs[start:])))
}

// RhymeVowelKey returns RhymeKey with consonants removed, used for
// assonance matching.
func RhymeVowelKey(word string) string {
	var b strings.Builder
	for _, r := range RhymeKey(word) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripNonLetters drops everything outside a-z.
func stripNonLetters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
