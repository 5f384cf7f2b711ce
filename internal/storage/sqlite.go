// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for game results.
type Store struct {
	db *sql.DB
}

// Outcome says how a recorded game ended.
type Outcome string

const (
	OutcomeLost      Outcome = "lost"      // No moves left
	OutcomeAbandoned Outcome = "abandoned" // Restarted or closed mid-game
)

// GameRecord is a single finished game.
type GameRecord struct {
	ID          string
	SessionID   string
	Player      string
	Variant     string
	MaxTile     int
	GoalReached int // Highest goal reached, 0 if none
	Moves       int
	Outcome     Outcome
	Duration    time.Duration
	CreatedAt   time.Time
}

// VariantStats aggregates the games played on one variant.
type VariantStats struct {
	Variant    string
	GamesCount int
	Wins       int // Games that reached at least one goal
	BestTile   int
	AvgTile    float64
	TotalMoves int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The path is used as given; see config.ExpandPath for ~ handling.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL DEFAULT '',
			player TEXT NOT NULL DEFAULT '',
			variant TEXT NOT NULL,
			max_tile INTEGER NOT NULL,
			goal_reached INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_variant ON games(variant);
		CREATE INDEX IF NOT EXISTS idx_games_top ON games(variant, max_tile DESC, moves ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game. A record without an ID gets a fresh
// UUID. Returns the stored ID.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.Variant == "" {
		return "", errors.New("storage: cannot save game without variant")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Outcome == "" {
		rec.Outcome = OutcomeLost
	}

	_, err := s.db.Exec(
		`INSERT INTO games (id, session_id, player, variant, max_tile, goal_reached, moves, outcome, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.Player, rec.Variant, rec.MaxTile, rec.GoalReached,
		rec.Moves, string(rec.Outcome), rec.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return rec.ID, nil
}

// TopGames retrieves the best N games for a variant, or across all variants
// when variant is empty. Higher tiles rank first; ties go to fewer moves.
func (s *Store) TopGames(variant string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, variant, max_tile, goal_reached, moves, outcome, duration_ms, created_at
		 FROM games
		 WHERE ? = '' OR variant = ?
		 ORDER BY max_tile DESC, moves ASC, created_at ASC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var records []GameRecord
	for rows.Next() {
		var (
			rec        GameRecord
			outcome    string
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Player, &rec.Variant, &rec.MaxTile,
			&rec.GoalReached, &rec.Moves, &outcome, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Outcome = Outcome(outcome)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BestTile returns the highest tile reached on a variant.
// Returns 0 if no games exist.
func (s *Store) BestTile(variant string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(max_tile) FROM games WHERE variant = ?",
		variant,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best tile: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return int(best.Int64), nil
}

// ClearGames deletes all games for a variant, or every game when variant is
// empty.
func (s *Store) ClearGames(variant string) error {
	_, err := s.db.Exec("DELETE FROM games WHERE ? = '' OR variant = ?", variant, variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// VariantStats retrieves aggregated statistics for a variant.
func (s *Store) VariantStats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(goal_reached > 0), 0), COALESCE(MAX(max_tile), 0),
		        COALESCE(AVG(max_tile), 0), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM games WHERE variant = ?`,
		variant,
	).Scan(&stats.GamesCount, &stats.Wins, &stats.BestTile, &stats.AvgTile, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllVariantStats retrieves statistics for every variant that has been
// played, keyed by variant ID.
func (s *Store) AllVariantStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), SUM(goal_reached > 0), MAX(max_tile), AVG(max_tile), SUM(moves), MAX(created_at)
		 FROM games
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.GamesCount, &vs.Wins, &vs.BestTile, &vs.AvgTile, &vs.TotalMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
