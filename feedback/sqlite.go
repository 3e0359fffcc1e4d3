package feedback

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS feedback_meta (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	version TEXT NOT NULL,
	total_runs INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS rule_hits (
	rule TEXT PRIMARY KEY,
	hits INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS dynamic_weights (
	rule TEXT PRIMARY KEY,
	weight REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	version TEXT NOT NULL,
	genre TEXT NOT NULL DEFAULT '',
	time_signature TEXT NOT NULL DEFAULT '',
	score_grammar REAL NOT NULL DEFAULT 0,
	score_rhymes REAL NOT NULL DEFAULT 0,
	score_musical REAL NOT NULL DEFAULT 0,
	score_theme REAL NOT NULL DEFAULT 0,
	score_total REAL NOT NULL DEFAULT 0,
	issues_grammar INTEGER NOT NULL DEFAULT 0,
	issues_rhymes INTEGER NOT NULL DEFAULT 0,
	issues_musical INTEGER NOT NULL DEFAULT 0,
	issues_theme INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteStore keeps feedback state in a SQLite database. Saves replace
// the whole document in one transaction, so a load observes either the
// previous state or the new one, never a mix.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and
// ensures the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open feedback db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init feedback schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the state. An empty database yields a fresh state.
func (s *SQLiteStore) Load() (State, error) {
	state := NewState()

	row := s.db.QueryRow(`SELECT version, total_runs FROM feedback_meta WHERE id = 1`)
	if err := row.Scan(&state.Version, &state.TotalRuns); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state, nil
		}
		return NewState(), fmt.Errorf("read feedback meta: %w", err)
	}

	rows, err := s.db.Query(`SELECT rule, hits FROM rule_hits`)
	if err != nil {
		return NewState(), fmt.Errorf("read rule hits: %w", err)
	}
	for rows.Next() {
		var rule string
		var hits int
		if err := rows.Scan(&rule, &hits); err != nil {
			rows.Close()
			return NewState(), fmt.Errorf("scan rule hits: %w", err)
		}
		state.RuleHits[rule] = hits
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return NewState(), fmt.Errorf("read rule hits: %w", err)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT rule, weight FROM dynamic_weights`)
	if err != nil {
		return NewState(), fmt.Errorf("read dynamic weights: %w", err)
	}
	for rows.Next() {
		var rule string
		var weight float64
		if err := rows.Scan(&rule, &weight); err != nil {
			rows.Close()
			return NewState(), fmt.Errorf("scan dynamic weights: %w", err)
		}
		state.DynamicWeights[rule] = weight
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return NewState(), fmt.Errorf("read dynamic weights: %w", err)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT timestamp, version, genre, time_signature,
		score_grammar, score_rhymes, score_musical, score_theme, score_total,
		issues_grammar, issues_rhymes, issues_musical, issues_theme
		FROM history ORDER BY id`)
	if err != nil {
		return NewState(), fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec RunRecord
		var ts string
		if err := rows.Scan(&ts, &rec.Version, &rec.Genre, &rec.TimeSignature,
			&rec.Scores.Grammar, &rec.Scores.Rhymes, &rec.Scores.Musical,
			&rec.Scores.Theme, &rec.Scores.Total,
			&rec.Issues.Grammar, &rec.Issues.Rhymes,
			&rec.Issues.Musical, &rec.Issues.Theme); err != nil {
			return NewState(), fmt.Errorf("scan history: %w", err)
		}
		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return NewState(), fmt.Errorf("parse history timestamp: %w", err)
		}
		state.History = append(state.History, rec)
	}
	if err := rows.Err(); err != nil {
		return NewState(), fmt.Errorf("read history: %w", err)
	}

	state.Normalize()
	return state, nil
}

// Save replaces the stored state with s in one transaction.
func (s *SQLiteStore) Save(state State) error {
	state.Normalize()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin feedback save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"feedback_meta", "rule_hits", "dynamic_weights", "history"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO feedback_meta (id, version, total_runs) VALUES (1, ?, ?)`,
		state.Version, state.TotalRuns); err != nil {
		return fmt.Errorf("write feedback meta: %w", err)
	}
	for rule, hits := range state.RuleHits {
		if _, err := tx.Exec(`INSERT INTO rule_hits (rule, hits) VALUES (?, ?)`, rule, hits); err != nil {
			return fmt.Errorf("write rule hits: %w", err)
		}
	}
	for rule, weight := range state.DynamicWeights {
		if _, err := tx.Exec(`INSERT INTO dynamic_weights (rule, weight) VALUES (?, ?)`, rule, weight); err != nil {
			return fmt.Errorf("write dynamic weights: %w", err)
		}
	}
	for _, rec := range state.History {
		if _, err := tx.Exec(`INSERT INTO history (timestamp, version, genre, time_signature,
			score_grammar, score_rhymes, score_musical, score_theme, score_total,
			issues_grammar, issues_rhymes, issues_musical, issues_theme)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Timestamp.Format(time.RFC3339Nano), rec.Version, rec.Genre, rec.TimeSignature,
			rec.Scores.Grammar, rec.Scores.Rhymes, rec.Scores.Musical,
			rec.Scores.Theme, rec.Scores.Total,
			rec.Issues.Grammar, rec.Issues.Rhymes,
			rec.Issues.Musical, rec.Issues.Theme); err != nil {
			return fmt.Errorf("write history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit feedback save: %w", err)
	}
	return nil
}
