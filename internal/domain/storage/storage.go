// Package storage holds the bounded cross-session cache of classification
// results.
package storage

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// Version tags snapshots. Snapshots carrying any other version are discarded.
const Version = 1

// DefaultCapacity is the number of paths kept when no capacity is configured.
const DefaultCapacity = 10000

// ErrLocked is returned by Reset while the cache is locked.
var ErrLocked = errors.New("cache is locked")

// Entry is what the cache remembers about one path.
type Entry struct {
	Icon  *m.IconRef
	Inode uint64
}

// tombstone reports whether the entry carries no data at all.
func (e Entry) tombstone() bool {
	return e.Icon == nil && e.Inode == 0
}

// Storage is a least-recently-used cache of path classifications. While
// locked every mutation is silently dropped so that a snapshot in progress
// observes a frozen state.
type Storage struct {
	mu       sync.Mutex
	capacity int
	entries  *simplelru.LRU[m.Path, Entry]
	locked   bool
}

// New creates an empty Storage holding at most capacity paths.
func New(capacity int) *Storage {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Storage{
		capacity: capacity,
		entries:  newEntries(capacity),
	}
}

// Get returns the entry for path and marks it as recently used.
func (s *Storage) Get(path m.Path) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries.Get(path)
}

// GetPathIcon returns the cached icon identity of path, or nil.
func (s *Storage) GetPathIcon(path m.Path) *m.IconRef {
	entry, ok := s.Get(path)
	if !ok {
		return nil
	}

	return entry.Icon
}

// SetPathIcon records the effective icon of path, keeping its inode.
func (s *Storage) SetPathIcon(path m.Path, icon *m.IconRef) {
	s.mutate(func() {
		entry, _ := s.entries.Peek(path)
		entry.Icon = icon
		s.store(path, entry)
	})
}

// DeletePathIcon forgets the icon of path but keeps its inode.
func (s *Storage) DeletePathIcon(path m.Path) {
	s.mutate(func() {
		entry, ok := s.entries.Peek(path)
		if !ok {
			return
		}

		entry.Icon = nil
		s.store(path, entry)
	})
}

// Delete drops every record of path.
func (s *Storage) Delete(path m.Path) {
	s.mutate(func() {
		s.entries.Remove(path)
	})
}

// SetInode records the inode of path. A different inode than the one on
// record means the path now names another file: the old entry is purged
// before the new inode is stored.
func (s *Storage) SetInode(path m.Path, inode uint64) {
	s.mutate(func() {
		entry, ok := s.entries.Peek(path)
		if ok && entry.Inode != 0 && entry.Inode != inode {
			slog.Debug("inode changed, purging cache entry", "path", path, "old", entry.Inode, "new", inode)
			s.entries.Remove(path)

			entry = Entry{}
		}

		entry.Inode = inode
		s.store(path, entry)
	})
}

// Move transfers the entry of from to to.
func (s *Storage) Move(from, to m.Path) {
	s.mutate(func() {
		entry, ok := s.entries.Peek(from)
		if !ok {
			return
		}

		s.entries.Remove(from)
		s.store(to, entry)
	})
}

// Len returns the number of cached paths.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.entries.Len()
}

// Capacity returns the maximum number of cached paths.
func (s *Storage) Capacity() int {
	return s.capacity
}

// Lock freezes the cache.
func (s *Storage) Lock() {
	s.mu.Lock()
	s.locked = true
	s.mu.Unlock()
}

// Unlock thaws the cache.
func (s *Storage) Unlock() {
	s.mu.Lock()
	s.locked = false
	s.mu.Unlock()
}

// Locked reports whether the cache is frozen.
func (s *Storage) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.locked
}

// Reset empties the cache.
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return ErrLocked
	}

	s.entries.Purge()

	return nil
}

// Clean drops tombstones and every entry lying outside all of roots. It
// returns the number of entries removed.
func (s *Storage) Clean(roots []m.Path) int {
	removed := 0

	s.mutate(func() {
		var stale []m.Path

		for _, path := range s.entries.Keys() {
			entry, _ := s.entries.Peek(path)
			if entry.tombstone() || !withinAny(path, roots) {
				stale = append(stale, path)
			}
		}

		for _, path := range stale {
			s.entries.Remove(path)
		}

		removed = len(stale)
	})

	if removed > 0 {
		slog.Debug("cleaned cache", "removed", removed)
	}

	return removed
}

// Snapshot returns the cache contents ordered from least to most recently used.
func (s *Storage) Snapshot() m.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := m.Snapshot{
		Version: Version,
		Paths:   make([]m.SnapshotEntry, 0, s.entries.Len()),
	}

	for _, path := range s.entries.Keys() {
		entry, _ := s.entries.Peek(path)
		snapshot.Paths = append(snapshot.Paths, m.SnapshotEntry{Path: path, Icon: entry.Icon, Inode: entry.Inode})
	}

	return snapshot
}

// Restore replaces the cache contents with snapshot. A snapshot written with
// another version leaves the cache empty. It returns the number of entries
// restored.
func (s *Storage) Restore(snapshot m.Snapshot) int {
	restored := 0

	s.mutate(func() {
		s.entries.Purge()

		if snapshot.Version != Version {
			slog.Warn("discarding cache snapshot", "version", snapshot.Version, "want", Version)
			return
		}

		for _, e := range snapshot.Paths {
			s.entries.Add(e.Path, Entry{Icon: e.Icon, Inode: e.Inode})
		}

		restored = s.entries.Len()
	})

	return restored
}

func (s *Storage) mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked {
		return
	}

	fn()
}

func (s *Storage) store(path m.Path, entry Entry) {
	if s.entries.Add(path, entry) {
		slog.Debug("evicted least recently used cache entry", "capacity", s.capacity)
	}
}

func withinAny(path m.Path, roots []m.Path) bool {
	for _, root := range roots {
		if path.Within(root) {
			return true
		}
	}

	return false
}

func newEntries(capacity int) *simplelru.LRU[m.Path, Entry] {
	entries, err := simplelru.NewLRU[m.Path, Entry](capacity, nil)
	if err != nil {
		// New never passes a non-positive capacity.
		panic(err)
	}

	return entries
}
