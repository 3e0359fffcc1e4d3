package phonetics

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Maurilio21/cante-ganhe-backend/normalize"
)

// Tag is the heuristic grammatical class of a word.
type Tag int

const (
	Unknown Tag = iota
	Verb
	Adverb
	Noun
	Adjective
)

// tagNames maps Tag values to their string names.
var tagNames = [...]string{
	Unknown:   "unknown",
	Verb:      "verb",
	Adverb:    "adverb",
	Noun:      "noun",
	Adjective: "adj",
}

// tagFromName maps string names back to Tag values.
var tagFromName = map[string]Tag{
	"unknown": Unknown,
	"verb":    Verb,
	"adverb":  Adverb,
	"noun":    Noun,
	"adj":     Adjective,
}

// String returns the name of the tag.
func (t Tag) String() string {
	if int(t) >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", int(t))
}

// MarshalJSON encodes the tag as a JSON string (e.g. "verb").
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "verb") into a Tag.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, ok := tagFromName[s]
	if !ok {
		return fmt.Errorf("phonetics: unknown tag: %q", s)
	}
	*t = v
	return nil
}

// posRules are (pattern, tag) pairs evaluated in priority order against
// the accent-stripped lowercase word. The first match wins. Kept as data
// so the heuristic can be tuned and tested independently of control
// flow.
var posRules = []struct {
	pattern *regexp.Regexp
	tag     Tag
}{
	{regexp.MustCompile(`(ar|er|ir)$`), Verb},                              // infinitive
	{regexp.MustCompile(`(ando|endo|indo)$`), Verb},                        // gerund
	{regexp.MustCompile(`(ou|ei|ava|ia|ira|aremos|eremos|iremos)$`), Verb}, // preterite, imperfect, future
	{regexp.MustCompile(`mente$`), Adverb},
	{regexp.MustCompile(`(cao|coes|sao|soes)$`), Noun}, // -ção/-são after accent stripping
	{regexp.MustCompile(`(dade|tude|agem|encia|ismo)$`), Noun},
	{regexp.MustCompile(`(oso|osa|ivel|avel|ico|ica|ado|ada)$`), Adjective},
}

// GuessTag classifies word by its ending. Best effort: irregular forms
// are routinely misclassified, and words matching no rule are Unknown.
func GuessTag(word string) Tag {
	lower := normalize.StripAccents(strings.ToLower(word))
	for _, rule := range posRules {
		if rule.pattern.MatchString(lower) {
			return rule.tag
		}
	}
	return Unknown
}
