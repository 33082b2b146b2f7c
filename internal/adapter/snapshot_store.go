package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	m "fileicons.dev/pkg/fileicons/internal/model"
	"fileicons.dev/pkg/fileicons/pkg"
)

const workInProgressSuffix = ".wip"

// SnapshotInfo describes a stored snapshot.
type SnapshotInfo struct {
	Backend  string
	Location string
	Exists   bool
	Size     int64
	Entries  int
	Version  int
	Modified time.Time
}

// SnapshotStore persists the icon cache between runs.
type SnapshotStore interface {
	// Load returns the stored snapshot. A missing snapshot is not an error
	// and yields an empty one.
	Load(ctx context.Context) (m.Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot m.Snapshot) error
	// Clear removes the stored snapshot.
	Clear(ctx context.Context) error
	// Info describes the stored snapshot without loading it into a cache.
	Info(ctx context.Context) (SnapshotInfo, error)
}

// snapshotRecord is one item of the gob stream: the first record carries
// the version, every following one an entry.
type snapshotRecord struct {
	Version int
	Entry   *m.SnapshotEntry
}

// FileSnapshotStore keeps the snapshot in a gob stream on disk. Saves go to
// a work-in-progress file that replaces the previous snapshot on success.
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore creates a FileSnapshotStore at path.
func NewFileSnapshotStore(path m.Path) *FileSnapshotStore {
	return &FileSnapshotStore{path: string(path)}
}

// Load implements SnapshotStore.
func (s *FileSnapshotStore) Load(ctx context.Context) (m.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return m.Snapshot{}, err
	}

	spill, err := pkg.OpenFileSpill[snapshotRecord](s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.Snapshot{}, nil
		}

		slog.Error("failed to open cache snapshot", "path", s.path, "error", err)

		return m.Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}

	defer func() {
		_ = spill.Close()
	}()

	var snapshot m.Snapshot

	err = spill.Range(func(index uint64, record snapshotRecord) error {
		if index == 0 {
			snapshot.Version = record.Version
			return nil
		}

		if record.Entry != nil {
			snapshot.Paths = append(snapshot.Paths, *record.Entry)
		}

		return nil
	})
	if err != nil {
		return m.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	slog.Debug("loaded cache snapshot", "path", spill.Path(), "version", snapshot.Version, "entries", len(snapshot.Paths))

	return snapshot, nil
}

// Save implements SnapshotStore.
func (s *FileSnapshotStore) Save(ctx context.Context, snapshot m.Snapshot) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tempPath := s.path + workInProgressSuffix

	spill, err := pkg.CreateFileSpill[snapshotRecord](tempPath)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}

	defer func() {
		if err != nil {
			_ = spill.Close()
			_ = os.Remove(tempPath)
		}
	}()

	if err = spill.Append(snapshotRecord{Version: snapshot.Version}); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}

	for i := range snapshot.Paths {
		if err = spill.Append(snapshotRecord{Entry: &snapshot.Paths[i]}); err != nil {
			return fmt.Errorf("write snapshot entry: %w", err)
		}
	}

	if err = spill.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err = os.Rename(tempPath, s.path); err != nil {
		slog.Error("failed to replace cache snapshot", "path", s.path, "error", err)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.Debug("saved cache snapshot", "path", s.path, "entries", len(snapshot.Paths))

	return nil
}

// Clear implements SnapshotStore.
func (s *FileSnapshotStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, path := range []string{s.path, s.path + workInProgressSuffix} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove snapshot: %w", err)
		}
	}

	return nil
}

// Info implements SnapshotStore.
func (s *FileSnapshotStore) Info(ctx context.Context) (SnapshotInfo, error) {
	info := SnapshotInfo{Backend: "file", Location: s.path}

	stat, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return info, nil
	}

	if err != nil {
		return info, fmt.Errorf("stat snapshot: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return info, err
	}

	spill, err := pkg.OpenFileSpill[snapshotRecord](s.path)
	if err != nil {
		return info, fmt.Errorf("open snapshot: %w", err)
	}

	defer func() {
		_ = spill.Close()
	}()

	info.Exists = true
	info.Size = stat.Size()
	info.Modified = stat.ModTime()

	if spill.Len() == 0 {
		return info, nil
	}

	header, err := spill.Get(0)
	if err != nil {
		return info, fmt.Errorf("read snapshot header: %w", err)
	}

	info.Version = header.Version
	info.Entries = int(spill.Len() - 1)

	return info, nil
}
