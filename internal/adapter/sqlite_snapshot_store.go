package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// SQLiteSnapshotStore keeps the snapshot in a SQLite database. Each save
// replaces both tables inside one transaction.
type SQLiteSnapshotStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteSnapshotStore opens, creating if needed, the database at path.
func NewSQLiteSnapshotStore(path m.Path) (*SQLiteSnapshotStore, error) {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", string(path)+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(snapshotDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteSnapshotStore{path: string(path), db: db}, nil
}

const snapshotDDL = `
CREATE TABLE IF NOT EXISTS snapshot_meta (
  id         INTEGER PRIMARY KEY CHECK (id = 1),
  version    INTEGER NOT NULL,
  saved_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_paths (
  position   INTEGER PRIMARY KEY,
  path       TEXT NOT NULL UNIQUE,
  inode      INTEGER NOT NULL DEFAULT 0,
  has_icon   BOOLEAN NOT NULL DEFAULT FALSE,
  priority   INTEGER,
  rule_index INTEGER,
  class_name TEXT,
  directory  BOOLEAN
);
`

// Close closes the underlying database connection.
func (s *SQLiteSnapshotStore) Close() error {
	return s.db.Close()
}

// Load implements SnapshotStore.
func (s *SQLiteSnapshotStore) Load(ctx context.Context) (m.Snapshot, error) {
	var snapshot m.Snapshot

	err := s.db.QueryRowContext(ctx, `SELECT version FROM snapshot_meta WHERE id = 1`).Scan(&snapshot.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return m.Snapshot{}, nil
	}

	if err != nil {
		return m.Snapshot{}, fmt.Errorf("load snapshot version: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT path, inode, has_icon, priority, rule_index, class_name, directory
FROM snapshot_paths ORDER BY position`)
	if err != nil {
		return m.Snapshot{}, fmt.Errorf("load snapshot paths: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry     m.SnapshotEntry
			path      string
			inode     int64
			hasIcon   bool
			priority  sql.NullInt64
			index     sql.NullInt64
			className sql.NullString
			directory sql.NullBool
		)

		if err := rows.Scan(&path, &inode, &hasIcon, &priority, &index, &className, &directory); err != nil {
			return m.Snapshot{}, fmt.Errorf("scan snapshot path: %w", err)
		}

		entry.Path = m.Path(path)
		entry.Inode = uint64(inode)

		if hasIcon {
			entry.Icon = &m.IconRef{
				Priority:  int(priority.Int64),
				Index:     int(index.Int64),
				ClassName: className.String,
				Directory: directory.Bool,
			}
		}

		snapshot.Paths = append(snapshot.Paths, entry)
	}

	if err := rows.Err(); err != nil {
		return m.Snapshot{}, fmt.Errorf("iterate snapshot paths: %w", err)
	}

	return snapshot, nil
}

// Save implements SnapshotStore.
func (s *SQLiteSnapshotStore) Save(ctx context.Context, snapshot m.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save snapshot: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_paths`); err != nil {
		return fmt.Errorf("save snapshot: clear paths: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshot_meta (id, version, saved_at) VALUES (1, ?, ?)`,
		snapshot.Version, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("save snapshot: version: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO snapshot_paths (position, path, inode, has_icon, priority, rule_index, class_name, directory)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save snapshot: prepare: %w", err)
	}
	defer stmt.Close()

	for i, entry := range snapshot.Paths {
		var (
			priority, index any
			className       any
			directory       any
		)

		if entry.Icon != nil {
			priority, index = entry.Icon.Priority, entry.Icon.Index
			className, directory = entry.Icon.ClassName, entry.Icon.Directory
		}

		if _, err := stmt.ExecContext(ctx, i, string(entry.Path), int64(entry.Inode), entry.Icon != nil,
			priority, index, className, directory); err != nil {
			return fmt.Errorf("save snapshot: path %q: %w", entry.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save snapshot: commit: %w", err)
	}

	return nil
}

// Clear implements SnapshotStore.
func (s *SQLiteSnapshotStore) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("clear snapshot: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, stmt := range []string{`DELETE FROM snapshot_paths`, `DELETE FROM snapshot_meta`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// Info implements SnapshotStore.
func (s *SQLiteSnapshotStore) Info(ctx context.Context) (SnapshotInfo, error) {
	info := SnapshotInfo{Backend: "sqlite", Location: s.path}

	for _, file := range []string{s.path, s.path + "-wal"} {
		if stat, err := os.Stat(file); err == nil {
			info.Size += stat.Size()
		}
	}

	var savedAt time.Time

	err := s.db.QueryRowContext(ctx, `SELECT version, saved_at FROM snapshot_meta WHERE id = 1`).Scan(&info.Version, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return info, nil
	}

	if err != nil {
		return info, fmt.Errorf("snapshot info: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshot_paths`).Scan(&info.Entries); err != nil {
		return info, fmt.Errorf("snapshot info: %w", err)
	}

	info.Exists = true
	info.Modified = savedAt

	return info, nil
}
