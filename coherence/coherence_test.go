package coherence

import (
	"math"
	"reflect"
	"testing"

	"github.com/Maurilio21/cante-ganhe-backend/sections"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "frequency then first occurrence",
			lines: []string{"amor amor saudade", "vida de amor"},
			want:  []string{"amor", "saudade", "vida"},
		},
		{
			name:  "stopwords excluded",
			lines: []string{"a vida que eu não te dei"},
			want:  []string{"vida", "dei"},
		},
		{
			name:  "accent-stripped output",
			lines: []string{"coração coração canção"},
			want:  []string{"coracao", "cancao"},
		},
		{
			name: "capped at six",
			lines: []string{
				"mar ceu sol lua vento chuva estrela",
			},
			want: []string{"mar", "ceu", "sol", "lua", "vento", "chuva"},
		},
		{
			name:  "no content",
			lines: []string{"a o de", ""},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keywords(tt.lines)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords(%v) = %v, want %v", tt.lines, got, tt.want)
			}
		})
	}
}

func TestEmotionScore(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"positive words", []string{"amor e paz"}, 2},
		{"negative words", []string{"dor e medo"}, -2},
		{"mixed", []string{"amor e dor"}, 0},
		{"accented lexicon entries match", []string{"solidão e esperança"}, 0},
		{"neutral", []string{"o mar e o céu"}, 0},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmotionScore(tt.lines); got != tt.want {
				t.Errorf("EmotionScore(%v) = %d, want %d", tt.lines, got, tt.want)
			}
		})
	}
}

func TestAnalyzeDrift(t *testing.T) {
	secs := []sections.Section{
		{Name: "verso", Lines: []string{"praia sol areia verão"}},
		{Name: "verso", Lines: []string{"cidade trânsito pressa inverno"}},
	}
	profiles, drifts, shifts := Analyze(secs)
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if len(drifts) != 1 {
		t.Fatalf("drifts = %+v, want exactly one", drifts)
	}
	if drifts[0].Index != 0 || drifts[0].NextIndex != 1 {
		t.Errorf("drift indexes = %d,%d, want 0,1", drifts[0].Index, drifts[0].NextIndex)
	}
	if drifts[0].Similarity != 0 {
		t.Errorf("Similarity = %v, want 0 for disjoint vocabularies", drifts[0].Similarity)
	}
	if len(shifts) != 0 {
		t.Errorf("shifts = %+v, want none", shifts)
	}
}

func TestAnalyzeNoDriftOnSharedKeywords(t *testing.T) {
	secs := []sections.Section{
		{Name: "verso", Lines: []string{"amor saudade mar"}},
		{Name: "refrão", Lines: []string{"amor saudade céu"}},
	}
	_, drifts, _ := Analyze(secs)
	if len(drifts) != 0 {
		t.Errorf("drifts = %+v, want none (similarity 2/4)", drifts)
	}
}

func TestAnalyzeEmptySectionSuppressesDrift(t *testing.T) {
	secs := []sections.Section{
		{Name: "verso", Lines: []string{"praia sol areia"}},
		{Name: "verso", Lines: []string{"a o de que"}}, // stopwords only
	}
	_, drifts, _ := Analyze(secs)
	if len(drifts) != 0 {
		t.Errorf("drifts = %+v, want none when a side has no keywords", drifts)
	}
}

func TestAnalyzeEmotionShift(t *testing.T) {
	secs := []sections.Section{
		{Name: "verso", Lines: []string{"amor paz alegria sonho"}},
		{Name: "verso", Lines: []string{"berço flores festa"}},
	}
	_, _, shifts := Analyze(secs)
	if len(shifts) != 1 {
		t.Fatalf("shifts = %+v, want one (delta 4)", shifts)
	}
	if shifts[0].Delta != 4 {
		t.Errorf("Delta = %d, want 4", shifts[0].Delta)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b []string
		want float64
	}{
		{[]string{"a", "b"}, []string{"a", "b"}, 1},
		{[]string{"a", "b"}, []string{"c", "d"}, 0},
		{[]string{"a", "b", "c"}, []string{"b", "c", "d"}, 0.5},
		{nil, []string{"a"}, 1},
		{[]string{"a"}, nil, 1},
		{nil, nil, 1},
	}
	for _, tt := range tests {
		if got := jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
