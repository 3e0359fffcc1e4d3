package phonetics

import (
	"strings"

	"github.com/Maurilio21/cante-ganhe-backend/normalize"
)

const (
	// minAlliterationWords is the minimum word count for a line to be
	// checked for alliteration.
	minAlliterationWords = 4
	// alliterationRun is the number of consecutive identical word
	// initials that counts as alliteration.
	alliterationRun = 3
)

// cacophonies is the blacklist of awkward cross-word sound clashes,
// matched against the whitespace-free normalized line ("vou dar mamão"
// becomes "voudarmamão" and contains "mamão").
var cacophonies = []string{"latinha", "mamão", "porcada", "bocadela"}

// Cacophonies returns the blacklist entries formed by the juxtaposition
// of words in line, in blacklist order.
func Cacophonies(line string) []string {
	compact := strings.ReplaceAll(normalize.Normalize(line), " ", "")
	if compact == "" {
		return nil
	}
	var hits []string
	for _, c := range cacophonies {
		if strings.Contains(compact, c) {
			hits = append(hits, c)
		}
	}
	return hits
}

// HasAlliteration reports whether the initial letters of the line's
// words contain the same letter three or more times in a row. Lines
// under four words are not checked.
func HasAlliteration(line string) bool {
	words := normalize.Words(line)
	if len(words) < minAlliterationWords {
		return false
	}
	run := 0
	var prev rune
	for _, w := range words {
		r := []rune(w)[0]
		if r == prev {
			run++
		} else {
			prev, run = r, 1
		}
		if run >= alliterationRun {
			return true
		}
	}
	return false
}
