package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists per-file extraction outcomes in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one extraction outcome.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO extractions (
            run_id, source_path, output_path, stream_index,
            language, status, error, duration_ms, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.SourcePath,
		entry.OutputPath,
		entry.StreamIndex,
		entry.Language,
		string(entry.Status),
		entry.Error,
		entry.Duration.Milliseconds(),
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record extraction: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first. A zero or negative
// limit defaults to 20. failedOnly restricts the listing to failures.
func (s *Store) Recent(ctx context.Context, limit int, failedOnly bool) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, run_id, source_path, output_path, stream_index,
                     language, status, error, duration_ms, created_at
              FROM extractions`
	args := make([]any, 0, 2)
	if failedOnly {
		query += ` WHERE status = ?`
		args = append(args, string(StatusFailed))
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var status string
		var durationMS int64
		var createdAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&entry.SourcePath,
			&entry.OutputPath,
			&entry.StreamIndex,
			&entry.Language,
			&status,
			&entry.Error,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan extraction: %w", err)
		}
		entry.Status = Status(status)
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate extractions: %w", err)
	}
	return entries, nil
}
