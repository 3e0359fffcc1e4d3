package phonetics

import (
	"reflect"
	"testing"

	"github.com/Maurilio21/cante-ganhe-backend/normalize"
)

func TestVowelGroups(t *testing.T) {
	tests := []struct {
		word string
		want []string
	}{
		{"canção", []string{"a", "ão"}},
		{"saudade", []string{"au", "a", "e"}},
		{"lua", []string{"ua"}},
		{"vrum", []string{"u"}},
		{"psst", nil},
		{"", nil},
	}
	for _, tt := range tests {
		groups := VowelGroups(tt.word)
		var got []string
		for _, g := range groups {
			got = append(got, g.Value)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("VowelGroups(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestSyllableCount(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"canção", 2},
		{"saudade", 3},
		{"amor", 2},
		{"eu", 1},
		{"psst", 1}, // no nucleus still counts as one syllable
	}
	for _, tt := range tests {
		if got := SyllableCount(tt.word); got != tt.want {
			t.Errorf("SyllableCount(%q) = %d, want %d", tt.word, got, tt.want)
		}
		if got := SyllableCount(tt.word); got < 1 {
			t.Errorf("SyllableCount(%q) = %d, below minimum", tt.word, got)
		}
	}
}

func TestStressGroupIndex(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"canção", 1}, // accent pins the last group
		{"você", 1},
		{"música", 0}, // right-most accent wins
		{"casa", 0},   // paroxytone: ends in "a"
		{"homem", 0},  // paroxytone: ends in "em"
		{"amor", 1},   // oxytone: no matching ending
		{"feliz", 1},
		{"lua", 0}, // single group
		{"", 0},
	}
	for _, tt := range tests {
		if got := StressGroupIndex(tt.word); got != tt.want {
			t.Errorf("StressGroupIndex(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestPoeticSyllables(t *testing.T) {
	tests := []struct {
		name string
		line string
		want int
	}{
		{"first golden line", "Eu vou cantar uma canção", 8},
		{"second golden line", "Pra te fazer feliz então", 8},
		{"synalepha elides boundary", "canta hoje", 2},
		{"silent h is transparent", "toda hora", 2},
		{"empty line", "", 0},
		{"punctuation only", "?!", 0},
		{"single word", "amor", 2},
		{"floor at one", "é", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PoeticSyllables(tt.line); got != tt.want {
				t.Errorf("PoeticSyllables(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

// Elision only reduces: the poetic count never exceeds the plain
// per-word syllable sum, and never drops below 1 for a non-empty line.
func TestPoeticSyllablesBounds(t *testing.T) {
	lines := []string{
		"Eu vou cantar uma canção",
		"a alma anda aberta",
		"hoje o amor é assim",
		"uma andorinha só não faz verão",
	}
	for _, line := range lines {
		got := PoeticSyllables(line)
		if got < 1 {
			t.Errorf("PoeticSyllables(%q) = %d, below 1", line, got)
		}
		plain := 0
		for _, w := range normalize.Words(line) {
			plain += SyllableCount(w)
		}
		if got > plain {
			t.Errorf("PoeticSyllables(%q) = %d exceeds plain sum %d", line, got, plain)
		}
	}
}

func TestRhymeKey(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"canção", "ao"},
		{"então", "ao"},
		{"amor", "or"},
		{"tambor", "or"},
		{"casa", "asa"},
		{"feliz", "iz"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := RhymeKey(tt.word); got != tt.want {
			t.Errorf("RhymeKey(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestRhymeVowelKey(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"canção", "ao"},
		{"casa", "aa"},
		{"feliz", "i"},
		{"amor", "o"},
	}
	for _, tt := range tests {
		if got := RhymeVowelKey(tt.word); got != tt.want {
			t.Errorf("RhymeVowelKey(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestGuessTag(t *testing.T) {
	tests := []struct {
		word string
		want Tag
	}{
		{"cantar", Verb},
		{"sorrindo", Verb},
		{"cantou", Verb},
		{"felizmente", Adverb},
		{"coração", Noun},
		{"saudade", Noun},
		{"amado", Adjective},
		{"incrível", Adjective},
		{"flor", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		if got := GuessTag(tt.word); got != tt.want {
			t.Errorf("GuessTag(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestTagJSON(t *testing.T) {
	for _, tag := range []Tag{Unknown, Verb, Adverb, Noun, Adjective} {
		data, err := tag.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v): %v", tag, err)
		}
		var back Tag
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", data, err)
		}
		if back != tag {
			t.Errorf("round trip %v -> %s -> %v", tag, data, back)
		}
	}
	var bad Tag
	if err := bad.UnmarshalJSON([]byte(`"substantivo"`)); err == nil {
		t.Error("UnmarshalJSON accepted unknown tag name")
	}
}
