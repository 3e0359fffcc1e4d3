// Package sections splits raw lyrics into named, ordered sections.
//
// Sections are opened by blank lines (default name "verso") or by marker
// lines ("Refrão:", "Ponte", ...). Marker lines are consumed, not stored
// as lyric lines. Empty sections are dropped; encounter order is
// preserved.
//
// All functions are safe for concurrent use by multiple goroutines.
package sections

import "strings"

// DefaultName names sections not introduced by a marker.
const DefaultName = "verso"

// markers are the section keywords recognized at the start of a line,
// checked in order. The first prefix match names the section.
var markers = []string{
	"refrão",
	"verso",
	"ponte",
	"pré-refrão",
	"pre-refrão",
	"intro",
	"outro",
}

// Section is a named, ordered group of lyric lines. Immutable after
// sectionization.
type Section struct {
	Name  string   `json:"name"`
	Lines []string `json:"lines"`
}

// Split breaks lyrics into sections. A blank line closes the current
// section and opens a default "verso"; a marker line closes the current
// section and opens one named after the matched keyword. Lines are
// stored trimmed. Returns nil for empty input.
func Split(lyrics string) []Section {
	var out []Section
	current := Section{Name: DefaultName}

	flush := func() {
		if len(current.Lines) > 0 {
			out = append(out, current)
		}
	}

	for _, raw := range strings.Split(lyrics, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			current = Section{Name: DefaultName}
			continue
		}
		if name := matchMarker(line); name != "" {
			flush()
			current = Section{Name: name}
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	flush()
	return out
}

// matchMarker returns the marker keyword the lowercased line starts
// with, or "" when the line is an ordinary lyric line.
func matchMarker(line string) string {
	lower := strings.ToLower(line)
	for _, m := range markers {
		if strings.HasPrefix(lower, m) {
			return m
		}
	}
	return ""
}
