// Package genres provides cadence references for Brazilian music genres.
//
// A reference describes the expected per-line poetic syllable range and
// the time signatures a genre admits. References come from the built-in
// table or from an external YAML document:
//
//	genres:
//	  sertanejo:
//	    syllable_range: [6, 11]
//	    time_signatures: ["4/4", "3/4"]
//
// A missing or unreadable document falls back to the built-in table:
// analysis must always proceed.
package genres

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config describes the cadence expectations of one genre.
type Config struct {
	SyllableRange  []int    `json:"syllableRange" koanf:"syllable_range"`
	TimeSignatures []string `json:"timeSignatures" koanf:"time_signatures"`
}

// AllowsTimeSignature reports whether ts is in the genre's allowed set.
func (c *Config) AllowsTimeSignature(ts string) bool {
	for _, allowed := range c.TimeSignatures {
		if allowed == ts {
			return true
		}
	}
	return false
}

// Source looks up the cadence reference for a genre. Lookup returns nil
// for an unknown genre; callers then skip genre-specific cadence and
// time-signature checks.
type Source interface {
	Lookup(name string) *Config
}

// Static is an in-memory Source keyed by lowercased genre name.
type Static map[string]*Config

// Lookup matches name case-insensitively. A nil map knows no genres.
func (s Static) Lookup(name string) *Config {
	if s == nil {
		return nil
	}
	return s[strings.ToLower(strings.TrimSpace(name))]
}

// Default returns the built-in genre reference table.
func Default() Static {
	return Static{
		"sertanejo": {SyllableRange: []int{6, 11}, TimeSignatures: []string{"4/4", "3/4"}},
		"pagode":    {SyllableRange: []int{7, 12}, TimeSignatures: []string{"2/4", "4/4"}},
		"samba":     {SyllableRange: []int{7, 12}, TimeSignatures: []string{"2/4", "4/4"}},
		"funk":      {SyllableRange: []int{5, 10}, TimeSignatures: []string{"4/4"}},
		"mpb":       {SyllableRange: []int{6, 12}, TimeSignatures: []string{"4/4", "3/4", "6/8"}},
		"forró":     {SyllableRange: []int{6, 11}, TimeSignatures: []string{"2/4", "4/4"}},
		"gospel":    {SyllableRange: []int{6, 12}, TimeSignatures: []string{"4/4", "3/4", "6/8"}},
		"infantil":  {SyllableRange: []int{4, 9}, TimeSignatures: []string{"2/4", "4/4"}},
	}
}

// Load reads a genre reference YAML document (top-level "genres" map)
// into a Static source. On any load or parse failure the built-in table
// is returned together with the error, so callers can log and continue.
func Load(path string) (Static, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Default(), fmt.Errorf("genres: load %s: %w", path, err)
	}
	raw := map[string]*Config{}
	if err := k.Unmarshal("genres", &raw); err != nil {
		return Default(), fmt.Errorf("genres: parse %s: %w", path, err)
	}
	out := make(Static, len(raw))
	for name, cfg := range raw {
		if cfg == nil {
			continue
		}
		out[strings.ToLower(name)] = cfg
	}
	return out, nil
}
