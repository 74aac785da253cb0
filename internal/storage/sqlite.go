// Package storage provides SQLite-based persistence for run scores.
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

// ErrDuplicateRun is returned when a run ID has already been recorded.
var ErrDuplicateRun = errors.New("storage: run already recorded")

// DefaultPageSize is the scoreboard page size used when none is given.
const DefaultPageSize = 5

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished run to record.
type Run struct {
	RunID   string // Generated when empty
	Name    string
	Ship    string
	Score   int
	Elapsed time.Duration
	Kills   int
	Bosses  int
}

// ScoreEntry represents a single recorded run.
type ScoreEntry struct {
	ID        int64
	RunID     string
	Name      string
	Ship      string
	Score     int
	Elapsed   time.Duration
	Kills     int
	Bosses    int
	Rank      int // Position within the listing it was read from
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer; the score server serializes through the pool.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			ship TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			bosses INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, id ASC);
		CREATE INDEX IF NOT EXISTS idx_scores_ship ON scores(ship, score DESC);
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

// SaveRun records a finished run and returns the ID of the inserted record.
// Recording the same run ID twice returns ErrDuplicateRun.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	result, err := s.db.Exec(
		`INSERT INTO scores (run_id, name, ship, score, elapsed_ms, kills, bosses)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		r.RunID, r.Name, r.Ship, r.Score, r.Elapsed.Milliseconds(), r.Kills, r.Bosses,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateRun, r.RunID)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RankOf returns the 1-based board position of the record with the given ID
// and the number of recorded runs. Equal scores keep submission order.
func (s *Store) RankOf(id int64) (rank, total int, err error) {
	err = s.db.QueryRow(
		`SELECT
			(SELECT COUNT(*) FROM scores o
			 WHERE o.score > t.score OR (o.score = t.score AND o.id <= t.id)),
			(SELECT COUNT(*) FROM scores)
		 FROM scores t WHERE t.id = ?`,
		id,
	).Scan(&rank, &total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, fmt.Errorf("storage: no score with id %d", id)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot rank score: %w", err)
	}
	return rank, total, nil
}

// Percentile returns the share of runs ranked below rank, truncated to a
// whole percent.
func Percentile(rank, total int) int {
	if total <= 0 || rank <= 0 {
		return 0
	}
	return int(float64(total-rank) / float64(total) * 100)
}

// TopScores retrieves the top N runs, optionally for one ship.
// Results are ordered by score descending.
func (s *Store) TopScores(ship string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, name, ship, score, elapsed_ms, kills, bosses, created_at
		 FROM scores
		 WHERE ? = '' OR ship = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		ship, ship, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows, 0)
}

// Page returns one page of the global board and the number of pages.
// Pages start at 1; out-of-range values fall back to page 1 and
// DefaultPageSize.
func (s *Store) Page(page, limit int) ([]ScoreEntry, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM scores").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("storage: cannot count scores: %w", err)
	}
	pages := (total + limit - 1) / limit

	offset := (page - 1) * limit
	rows, err := s.db.Query(
		`SELECT id, run_id, name, ship, score, elapsed_ms, kills, bosses, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows, offset)
	if err != nil {
		return nil, 0, err
	}
	return entries, pages, nil
}

func scanEntries(rows *sql.Rows, rankBase int) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Name, &e.Ship, &e.Score, &elapsedMS, &e.Kills, &e.Bosses, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		e.CreatedAt = parseTimestamp(createdAt)
		e.Rank = rankBase + len(entries) + 1
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score, optionally for one ship.
// Returns 0 if no scores exist.
func (s *Store) HighScore(ship string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE ? = '' OR ship = ?",
		ship, ship,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores, or only those of one ship.
func (s *Store) ClearScores(ship string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE ? = '' OR ship = ?", ship, ship)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ShipStats contains aggregated statistics for one ship archetype.
type ShipStats struct {
	Ship       string
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalKills int64
	Bosses     int64
	Longest    time.Duration
	LastPlayed time.Time
}

// AllShipStats retrieves statistics for every ship that has been flown.
func (s *Store) AllShipStats() (map[string]*ShipStats, error) {
	rows, err := s.db.Query(
		`SELECT ship, COUNT(*), MAX(score), AVG(score), SUM(kills), SUM(bosses), MAX(elapsed_ms), MAX(created_at)
		 FROM scores
		 GROUP BY ship`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get ship stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ShipStats)
	for rows.Next() {
		var st ShipStats
		var longestMS int64
		var lastPlayed any
		if err := rows.Scan(&st.Ship, &st.Runs, &st.HighScore, &st.AvgScore, &st.TotalKills, &st.Bosses, &longestMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.Longest = time.Duration(longestMS) * time.Millisecond
		st.LastPlayed = parseTimestamp(lastPlayed)
		stats[st.Ship] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
