// Package storage persists Blast results in SQLite through the pure-Go
// modernc.org/sqlite driver, so the binary builds without CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultLimit is the number of rows TopScores returns for a non-positive limit.
const DefaultLimit = 10

// Store is a handle on the scores database. One Store may be shared by
// every SSH session of a server.
type Store struct {
	db   *sql.DB
	path string
}

// ScoreRecord is a finished run to be saved.
type ScoreRecord struct {
	GameID    string
	RunID     string // Empty when the caller does not track runs
	Score     int
	Lines     int
	BestCombo int
}

// ScoreEntry is a saved run as read back from the database.
type ScoreEntry struct {
	ID        int64
	GameID    string
	RunID     string
	Score     int
	Lines     int
	BestCombo int
	CreatedAt time.Time
}

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id    TEXT    NOT NULL,
		run_id     TEXT    NOT NULL DEFAULT '',
		score      INTEGER NOT NULL,
		lines      INTEGER NOT NULL DEFAULT 0,
		best_combo INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	CREATE TABLE IF NOT EXISTS high_scores (
		game_id    TEXT PRIMARY KEY,
		score      INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
}

// Open opens the database at path, creating it and its directory as
// needed, and brings the schema up to date. A leading ~ means the home
// directory.
func Open(path string) (*Store, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s: %w", path, err)
	}
	// One connection serializes writers; busy_timeout covers other processes.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: %s: %w", path, err)
	}
	return s, nil
}

// ExpandHome replaces a leading ~ in path with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return path + "?" + q.Encode()
}

// migrate runs every migration newer than the stored schema version, each
// in its own transaction.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("cannot read schema version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
	}
	return nil
}

// Path returns the expanded database path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveScore stores a finished run and returns its row ID.
func (s *Store) SaveScore(rec ScoreRecord) (int64, error) {
	if rec.GameID == "" {
		return 0, errors.New("storage: cannot save score: empty game id")
	}

	res, err := s.db.Exec(
		"INSERT INTO scores (game_id, run_id, score, lines, best_combo) VALUES (?, ?, ?, ?, ?)",
		rec.GameID, rec.RunID, rec.Score, rec.Lines, rec.BestCombo,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return res.LastInsertId()
}

const scoreColumns = "id, game_id, run_id, score, lines, best_combo, created_at"

// TopScores returns up to limit runs of gameID, best first. Equal scores
// keep the order they were saved in.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(
		"SELECT "+scoreColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read scores: %w", err)
	}
	return entries, nil
}

func scanScore(rows *sql.Rows) (ScoreEntry, error) {
	var (
		e       ScoreEntry
		created any
	)
	if err := rows.Scan(&e.ID, &e.GameID, &e.RunID, &e.Score, &e.Lines, &e.BestCombo, &created); err != nil {
		return ScoreEntry{}, fmt.Errorf("storage: cannot scan score: %w", err)
	}
	e.CreatedAt = parseTime(created)
	return e, nil
}

// HighScore is the larger of the recorded high score and the best saved
// run of gameID, or 0 when there is neither.
func (s *Store) HighScore(gameID string) (int, error) {
	var score int64
	err := s.db.QueryRow(
		`SELECT MAX(
			COALESCE((SELECT score FROM high_scores WHERE game_id = ?), 0),
			COALESCE((SELECT MAX(score) FROM scores WHERE game_id = ?), 0))`,
		gameID, gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return int(score), nil
}

// UpdateHighScore records score for gameID when it beats the stored value.
// The stored value never goes down. It reports whether anything changed.
func (s *Store) UpdateHighScore(gameID string, score int) (bool, error) {
	res, err := s.db.Exec(
		`INSERT INTO high_scores (game_id, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > high_scores.score`,
		gameID, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update high score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot update high score: %w", err)
	}
	return n > 0, nil
}

// ClearScores removes every run and the high score of gameID.
func (s *Store) ClearScores(gameID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", gameID, err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"scores", "high_scores"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE game_id = ?", gameID); err != nil {
			return fmt.Errorf("storage: cannot clear %s from %s: %w", gameID, table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear %s: %w", gameID, err)
	}
	return nil
}

// GameStats aggregates the saved runs of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	BestCombo  int
	LastPlayed time.Time
}

const statsSelect = `SELECT game_id, COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
	COALESCE(SUM(lines), 0), COALESCE(MAX(best_combo), 0), MAX(created_at) FROM scores`

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(row scanner) (*GameStats, error) {
	var (
		gs         GameStats
		gameID     sql.NullString
		lastPlayed any
	)
	if err := row.Scan(&gameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore,
		&gs.TotalLines, &gs.BestCombo, &lastPlayed); err != nil {
		return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
	}
	gs.GameID = gameID.String
	gs.LastPlayed = parseTime(lastPlayed)
	return &gs, nil
}

// GetGameStats aggregates the runs of gameID. A game with no runs yields
// zero counts. HighScore also honors the recorded high score.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats, err := scanStats(s.db.QueryRow(statsSelect+" WHERE game_id = ?", gameID))
	if err != nil {
		return nil, err
	}
	stats.GameID = gameID

	if stats.HighScore, err = s.HighScore(gameID); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetAllGamesStats aggregates every game that has at least one saved run.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(statsSelect + " GROUP BY game_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*GameStats)
	for rows.Next() {
		gs, err := scanStats(rows)
		if err != nil {
			return nil, err
		}
		all[gs.GameID] = gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read stats: %w", err)
	}
	return all, nil
}

// parseTime accepts the datetime forms the driver returns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.DateTime, time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
