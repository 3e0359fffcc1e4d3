package rhyme

import (
	"reflect"
	"testing"

	"github.com/Maurilio21/cante-ganhe-backend/phonetics"
)

func TestEndingOf(t *testing.T) {
	got := EndingOf("Eu vou cantar uma canção")
	want := Ending{Word: "canção", Key: "ao", VowelKey: "ao", Tag: phonetics.Noun}
	if got != want {
		t.Errorf("EndingOf = %+v, want %+v", got, want)
	}
	if got := EndingOf("?!"); got != (Ending{}) {
		t.Errorf("EndingOf on punctuation = %+v, want zero", got)
	}
}

func TestAnalyzeSectionConsonant(t *testing.T) {
	lines := []string{
		"Eu vou cantar uma canção",
		"Pra te fazer feliz então",
	}
	pairs, breaks := AnalyzeSection(lines)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	p := pairs[0]
	if p.Type != Consonant {
		t.Errorf("Type = %v, want consonant", p.Type)
	}
	if p.LineIndex != 0 || p.NextLineIndex != 1 {
		t.Errorf("pair indexes = %d,%d, want 0,1", p.LineIndex, p.NextLineIndex)
	}
	if p.Words != [2]string{"canção", "então"} {
		t.Errorf("pair words = %v", p.Words)
	}
	if len(breaks) != 0 {
		t.Errorf("breaks = %v, want none", breaks)
	}
}

func TestAnalyzeSectionAssonant(t *testing.T) {
	pairs, _ := AnalyzeSection([]string{"quem mora nessa casa", "é quem canta e fala"})
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Type != Assonant {
		t.Errorf("Type = %v, want assonant", pairs[0].Type)
	}
}

func TestAnalyzeSectionNone(t *testing.T) {
	pairs, _ := AnalyzeSection([]string{"hoje eu vi a saudade", "um retrato amado"})
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Type != None {
		t.Errorf("Type = %v, want none", pairs[0].Type)
	}
	if pairs[0].Richness != Rich {
		t.Errorf("Richness = %v, want rich (noun vs adj)", pairs[0].Richness)
	}
}

func TestRichnessGrades(t *testing.T) {
	tests := []struct {
		a, b phonetics.Tag
		want Richness
	}{
		{phonetics.Verb, phonetics.Noun, Rich},
		{phonetics.Verb, phonetics.Verb, Poor},
		{phonetics.Unknown, phonetics.Noun, Neutral},
		{phonetics.Unknown, phonetics.Unknown, Neutral},
	}
	for _, tt := range tests {
		if got := gradeRichness(tt.a, tt.b); got != tt.want {
			t.Errorf("gradeRichness(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAnalyzeSectionBreaks(t *testing.T) {
	lines := []string{
		"Eu vou cantar uma canção",
		"Pra te fazer feliz então",
		"esse verso fala de amor",
	}
	_, breaks := AnalyzeSection(lines)
	if !reflect.DeepEqual(breaks, []int{2}) {
		t.Errorf("breaks = %v, want [2]", breaks)
	}
}

func TestAnalyzeSectionSkipsEmptyEndings(t *testing.T) {
	pairs, breaks := AnalyzeSection([]string{"eu canto a canção", "...", "pra você então"})
	// The punctuation-only line pairs with nothing.
	if len(pairs) != 0 {
		t.Errorf("pairs = %+v, want none", pairs)
	}
	// Both real endings share the "ao" key, so no breaks either.
	if len(breaks) != 0 {
		t.Errorf("breaks = %v, want none", breaks)
	}
}

func TestAnalyzeSectionEmpty(t *testing.T) {
	pairs, breaks := AnalyzeSection(nil)
	if pairs != nil || breaks != nil {
		t.Errorf("AnalyzeSection(nil) = %v, %v, want nil, nil", pairs, breaks)
	}
}
