package feedback

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(ts time.Time) RunRecord {
	return RunRecord{
		Timestamp:     ts,
		Scores:        Scores{Grammar: 92, Rhymes: 80, Musical: 100, Theme: 100, Total: 92.6},
		Genre:         "sertanejo",
		TimeSignature: "4/4",
		Issues:        IssueCounts{Grammar: 1, Rhymes: 2},
	}
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, Version, s.Version)
	assert.Zero(t, s.TotalRuns)
	assert.NotNil(t, s.RuleHits)
	assert.NotNil(t, s.DynamicWeights)
	assert.Empty(t, s.History)
}

func TestNormalizeRepairsFields(t *testing.T) {
	s := State{
		TotalRuns:      -3,
		DynamicWeights: map[string]float64{"rhyme_break": 0.9, "cacophony": -0.1},
	}
	s.Normalize()
	assert.Equal(t, Version, s.Version)
	assert.Zero(t, s.TotalRuns)
	assert.NotNil(t, s.RuleHits)
	assert.Equal(t, 0.3, s.DynamicWeights["rhyme_break"])
	assert.Equal(t, 0.0, s.DynamicWeights["cacophony"])
}

func TestRecordAccumulatesHits(t *testing.T) {
	s := NewState()
	s.Record(map[string]int{"rhyme_break": 3, "cacophony": 0}, sampleRecord(time.Now()))

	assert.Equal(t, 3, s.RuleHits["rhyme_break"])
	assert.NotContains(t, s.RuleHits, "cacophony")
	assert.Equal(t, 1, s.TotalRuns)
	require.Len(t, s.History, 1)
	assert.Equal(t, Version, s.History[0].Version)
	assert.Empty(t, s.DynamicWeights, "weights stay flat below the threshold")
}

func TestRecordWeightGrowthAndCap(t *testing.T) {
	s := NewState()
	// Below the threshold nothing moves.
	for i := 0; i < 19; i++ {
		s.Record(map[string]int{"rhyme_break": 1}, sampleRecord(time.Now()))
	}
	assert.Empty(t, s.DynamicWeights)

	// The 20th hit crosses the threshold, then each run adds one step.
	s.Record(map[string]int{"rhyme_break": 1}, sampleRecord(time.Now()))
	assert.InDelta(t, 0.05, s.DynamicWeights["rhyme_break"], 1e-9)

	prev := s.DynamicWeights["rhyme_break"]
	for i := 0; i < 10; i++ {
		s.Record(map[string]int{"rhyme_break": 1}, sampleRecord(time.Now()))
		w := s.DynamicWeights["rhyme_break"]
		assert.GreaterOrEqual(t, w, prev, "weights never decrease")
		assert.LessOrEqual(t, w, 0.3, "weights never exceed the cap")
		prev = w
	}
	assert.InDelta(t, 0.3, s.DynamicWeights["rhyme_break"], 1e-9)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	store := NewFileStore(path)

	s := NewState()
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	s.Record(map[string]int{"grammar_pra_mim_fazer": 2}, sampleRecord(ts))
	require.NoError(t, store.Save(s))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, s.TotalRuns, got.TotalRuns)
	assert.Equal(t, s.RuleHits, got.RuleHits)
	require.Len(t, got.History, 1)
	assert.True(t, got.History[0].Timestamp.Equal(ts))
	assert.Equal(t, "sertanejo", got.History[0].Genre)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, NewState(), got)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	got, err := NewFileStore(path).Load()
	assert.Error(t, err)
	assert.Equal(t, NewState(), got, "corrupt document falls back to a fresh state")
}

func TestMemStoreIsolation(t *testing.T) {
	store := NewMemStore()
	s := NewState()
	s.Record(map[string]int{"cacophony": 1}, sampleRecord(time.Now()))
	require.NoError(t, store.Save(s))

	got, err := store.Load()
	require.NoError(t, err)
	got.RuleHits["cacophony"] = 99

	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, again.RuleHits["cacophony"], "loads hand out copies")

	store.Reset()
	fresh, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, fresh.TotalRuns)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	defer store.Close()

	empty, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, NewState(), empty)

	s := NewState()
	ts := time.Date(2026, 3, 14, 15, 9, 26, 123456789, time.UTC)
	s.Record(map[string]int{"rhyme_break": 21}, sampleRecord(ts))
	s.Record(map[string]int{"theme_drift": 1}, sampleRecord(ts.Add(time.Hour)))
	require.NoError(t, store.Save(s))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, s.TotalRuns, got.TotalRuns)
	assert.Equal(t, s.RuleHits, got.RuleHits)
	assert.Equal(t, s.DynamicWeights, got.DynamicWeights)
	require.Len(t, got.History, 2)
	assert.True(t, got.History[0].Timestamp.Equal(ts))
	assert.Equal(t, "4/4", got.History[1].TimeSignature)
}
