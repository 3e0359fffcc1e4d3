// Command letracheck analyzes a song's lyrics and prints the quality
// report as JSON.
//
// The input is a JSON document {"title", "lyrics", "genre",
// "timeSignature"} read from -in or stdin:
//
//	letracheck -in song.json -genre sertanejo
//	cat song.json | letracheck -out report.json
//
// Flags can also be set through LETRACHECK_* environment variables
// (e.g. LETRACHECK_GENRE, LETRACHECK_STATE). Flags win over the
// environment. The adaptive feedback state is kept in the -state file
// across runs; point -state at a .db path to use SQLite instead of
// JSON.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/Maurilio21/cante-ganhe-backend/analysis"
	"github.com/Maurilio21/cante-ganhe-backend/feedback"
	"github.com/Maurilio21/cante-ganhe-backend/genres"
)

const envPrefix = "LETRACHECK_"

func main() {
	inPath := flag.String("in", "", "song JSON file (default stdin)")
	outPath := flag.String("out", "", "report output file (default stdout)")
	genre := flag.String("genre", "", "genre override")
	timeSig := flag.String("time", "", "time signature override")
	statePath := flag.String("state", "lyrics_feedback.json", "feedback state file (.db for SQLite)")
	genresPath := flag.String("genres", "", "genre reference YAML (default built-in table)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	applyEnv(map[string]*string{
		"in":     inPath,
		"out":    outPath,
		"genre":  genre,
		"time":   timeSig,
		"state":  statePath,
		"genres": genresPath,
	})

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	song, err := readSong(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "letracheck: %v\n", err)
		os.Exit(1)
	}
	if *genre != "" {
		song.Genre = *genre
	}
	if *timeSig != "" {
		song.TimeSignature = *timeSig
	}

	src := genres.Source(genres.Default())
	if *genresPath != "" {
		loaded, err := genres.Load(*genresPath)
		if err != nil {
			log.Warn().Err(err).Str("path", *genresPath).Msg("genre reference unreadable, using built-in table")
		}
		src = loaded
	}

	store, closeStore, err := openStore(*statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "letracheck: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	report, err := analysis.New(src, store, log).Analyze(song)
	if err != nil {
		fmt.Fprintf(os.Stderr, "letracheck: %v\n", err)
		os.Exit(1)
	}

	if err := writeReport(*outPath, report); err != nil {
		fmt.Fprintf(os.Stderr, "letracheck: %v\n", err)
		os.Exit(1)
	}
}

// applyEnv fills unset flags from LETRACHECK_* variables. Flags set on
// the command line keep their values.
func applyEnv(targets map[string]*string) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return
	}
	for name, target := range targets {
		if !set[name] && k.Exists(name) {
			*target = k.String(name)
		}
	}
}

// readSong decodes the input document from path or stdin.
func readSong(path string) (analysis.Song, error) {
	var raw []byte
	var err error
	if path == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return analysis.Song{}, fmt.Errorf("read song: %w", err)
	}

	var song analysis.Song
	if err := json.Unmarshal(raw, &song); err != nil {
		return analysis.Song{}, fmt.Errorf("parse song: %w", err)
	}
	return song, nil
}

// openStore picks the feedback backend by the state path extension.
func openStore(path string) (feedback.Store, func(), error) {
	if strings.HasSuffix(path, ".db") || strings.HasSuffix(path, ".sqlite") {
		store, err := feedback.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	return feedback.NewFileStore(path), func() {}, nil
}

// writeReport encodes the report to path or stdout.
func writeReport(path string, report *analysis.Report) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	raw = append(raw, '\n')
	if path == "" {
		_, err = os.Stdout.Write(raw)
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
