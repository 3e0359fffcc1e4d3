// Package feedback persists the adaptive rule-weight state of the
// lyrics analysis engine across runs.
//
// The state is a small versioned document: cumulative rule hit counts,
// dynamic per-rule weights, and a history of past runs. Three stores
// are provided:
//
//   - FileStore: a JSON document on disk, written atomically.
//   - SQLiteStore: a SQLite database, wholesale-replaced in one
//     transaction per save.
//   - MemStore: in-memory, for tests and ephemeral runs.
//
// State mutation is single-writer by design: stores serialize their own
// Load/Save calls, but two processes interleaving load-modify-save on
// the same FileStore document still race (last writer wins). Use
// SQLiteStore where concurrent processes are expected.
//
// History grows unbounded, like the service it mirrors. Callers that
// care can truncate State.History before saving.
package feedback

import "time"

// Version is the current state document version.
const Version = "1.0.0"

const (
	// weightThreshold is the cumulative hit count at which a rule's
	// dynamic weight starts growing.
	weightThreshold = 20
	// weightStep is the per-run weight increment past the threshold.
	weightStep = 0.05
	// weightCap bounds every dynamic weight.
	weightCap = 0.3
)

// Scores are the category scores recorded for one run.
type Scores struct {
	Grammar float64 `json:"grammar"`
	Rhymes  float64 `json:"rhymes"`
	Musical float64 `json:"musical"`
	Theme   float64 `json:"theme"`
	Total   float64 `json:"total"`
}

// IssueCounts are the per-category issue totals recorded for one run.
type IssueCounts struct {
	Grammar int `json:"grammar"`
	Rhymes  int `json:"rhymes"`
	Musical int `json:"musical"`
	Theme   int `json:"theme"`
}

// RunRecord is one history entry.
type RunRecord struct {
	Timestamp     time.Time   `json:"timestamp"`
	Version       string      `json:"version"`
	Scores        Scores      `json:"scores"`
	Genre         string      `json:"genre,omitempty"`
	TimeSignature string      `json:"timeSignature"`
	Issues        IssueCounts `json:"issues"`
}

// State is the persisted feedback document.
type State struct {
	Version        string             `json:"version"`
	TotalRuns      int                `json:"totalRuns"`
	RuleHits       map[string]int     `json:"ruleHits"`
	DynamicWeights map[string]float64 `json:"dynamicWeights"`
	History        []RunRecord        `json:"history"`
}

// NewState returns an empty state at the current version.
func NewState() State {
	return State{
		Version:        Version,
		RuleHits:       map[string]int{},
		DynamicWeights: map[string]float64{},
	}
}

// Normalize reconstructs missing or invalid fields after loading an
// arbitrary document, field by field, rather than trusting its shape.
// Weights are clamped into [0, 0.3].
func (s *State) Normalize() {
	if s.Version == "" {
		s.Version = Version
	}
	if s.RuleHits == nil {
		s.RuleHits = map[string]int{}
	}
	if s.DynamicWeights == nil {
		s.DynamicWeights = map[string]float64{}
	}
	for rule, w := range s.DynamicWeights {
		if w < 0 {
			s.DynamicWeights[rule] = 0
		} else if w > weightCap {
			s.DynamicWeights[rule] = weightCap
		}
	}
	if s.TotalRuns < 0 {
		s.TotalRuns = 0
	}
}

// Record merges one run into the state: rule hits accumulate, every
// rule hit this run whose cumulative count has reached the threshold
// gains one weight step (capped, never lowered), totalRuns increments,
// and the run is appended to history.
func (s *State) Record(runHits map[string]int, rec RunRecord) {
	s.Normalize()
	for rule, count := range runHits {
		if count <= 0 {
			continue
		}
		s.RuleHits[rule] += count
		if s.RuleHits[rule] >= weightThreshold {
			w := s.DynamicWeights[rule] + weightStep
			if w > weightCap {
				w = weightCap
			}
			s.DynamicWeights[rule] = w
		}
	}
	s.TotalRuns++
	rec.Version = s.Version
	s.History = append(s.History, rec)
}

// clone deep-copies the state so stores can hand out copies safely.
func (s State) clone() State {
	out := s
	out.RuleHits = make(map[string]int, len(s.RuleHits))
	for k, v := range s.RuleHits {
		out.RuleHits[k] = v
	}
	out.DynamicWeights = make(map[string]float64, len(s.DynamicWeights))
	for k, v := range s.DynamicWeights {
		out.DynamicWeights[k] = v
	}
	out.History = append([]RunRecord(nil), s.History...)
	return out
}

// Store loads and saves feedback state. Implementations tolerate a
// missing document by returning a fresh state.
type Store interface {
	Load() (State, error)
	Save(State) error
}
