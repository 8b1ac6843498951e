package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"ced/internal/logging"
)

// Store provides persistence for runs in a SQLite database under .ced/.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// OpenStore opens or creates the history database at <dir>/.ced/history.db.
func OpenStore(dir string, logger *logging.Logger) (*Store, error) {
	cedDir := filepath.Join(dir, ".ced")
	if err := os.MkdirAll(cedDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create .ced directory: %w", err)
	}

	dbPath := filepath.Join(cedDir, "history.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{conn: conn, logger: logger, dbPath: dbPath}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			dir TEXT NOT NULL,
			edits INTEGER NOT NULL,
			applied INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			summary TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Record inserts a run into the ledger.
func (s *Store) Record(run *Run) error {
	_, err := s.conn.Exec(
		`INSERT INTO runs (id, started_at, dir, edits, applied, errors, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339), run.Dir,
		run.Edits, run.Applied, run.Errors, run.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	s.logger.Debug("recorded run", map[string]any{"id": run.ID})
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.conn.Query(
		`SELECT id, started_at, dir, edits, applied, errors, summary
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.Dir, &run.Edits, &run.Applied, &run.Errors, &run.Summary); err != nil {
			return nil, err
		}
		run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.conn.Close()
}
