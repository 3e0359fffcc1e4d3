// Package normalize prepares Brazilian Portuguese lyric lines for analysis.
//
// Two normalization layers are provided:
//
//   - Normalize lowercases a line, drops apostrophes, and replaces every
//     character outside the Portuguese letter set with a space. Diacritics
//     are preserved: syllable segmentation and stress detection depend on
//     them. Intra-word hyphens survive ("pré-refrão").
//   - StripAccents removes diacritical marks (NFD decomposition, removal
//     of combining marks, so ç becomes c) for the comparisons that must be
//     accent-insensitive: rhyme keys, suffix heuristics, keyword frequency.
//
// All functions are safe for concurrent use by multiple goroutines.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentedLetters are the letters outside a-z kept by Normalize.
const accentedLetters = "àáâãäçèéêëìíîïñòóôõöùúûü"

// keepRune reports whether r survives Normalize unchanged.
func keepRune(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	return r == '-' || strings.ContainsRune(accentedLetters, r)
}

// Normalize lowercases line and strips punctuation, keeping accented
// letters and hyphens. Runs of whitespace collapse to a single space.
// Returns "" for empty or punctuation-only lines.
func Normalize(line string) string {
	lower := strings.ToLower(line)
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r == '\'' || r == '’':
			// Apostrophes join contractions ("minh'alma"); drop them
			// without splitting the word.
		case keepRune(r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Words splits a line into normalized words.
// Returns nil for empty or punctuation-only lines.
func Words(line string) []string {
	clean := Normalize(line)
	if clean == "" {
		return nil
	}
	return strings.Split(clean, " ")
}

// LastWord returns the final normalized word of a line, or "" when the
// line has none.
func LastWord(line string) string {
	words := Words(line)
	if len(words) == 0 {
		return ""
	}
	return words[len(words)-1]
}

// StripAccents removes diacritical marks from s via NFD decomposition:
// combining marks are dropped and the result recomposed, so "ção"
// becomes "cao". Case is preserved.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
