// Package grammar detects common Brazilian Portuguese grammar errors
// and dated slang in lyric lines using a fixed regex rule set.
//
// The rules target colloquialisms that hurt a lyric's perceived quality
// (pronoun case after prepositions, agreement slips, redundant
// comparatives), not full grammatical parsing. Absence of matches is a
// valid, common outcome.
//
// All functions are safe for concurrent use by multiple goroutines.
package grammar

// SlangID is the rule identifier reported for outdated slang matches.
const SlangID = "slang_outdated"

// Issue is one grammar finding on a line.
type Issue struct {
	ID        string `json:"id"`
	LineIndex int    `json:"lineIndex"`
	Label     string `json:"label"`
}

// Check evaluates every rule against every line. Rule order is stable:
// issues for a line appear in rule order, slang findings after them.
func Check(lines []string) []Issue {
	var issues []Issue
	for i, line := range lines {
		for _, rule := range rules {
			if rule.Pattern.MatchString(line) {
				issues = append(issues, Issue{ID: rule.ID, LineIndex: i, Label: rule.Label})
			}
		}
		for j, pattern := range slangPatterns {
			if pattern.MatchString(line) {
				issues = append(issues, Issue{
					ID:        SlangID,
					LineIndex: i,
					Label:     "Gíria desatualizada: " + slangOutdated[j],
				})
			}
		}
	}
	return issues
}
