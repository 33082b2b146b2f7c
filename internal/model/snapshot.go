package model

// IconRef identifies a compiled icon across sessions.
type IconRef struct {
	Priority  int
	Index     int
	ClassName string
	Directory bool
}

// SnapshotEntry is one persisted cache record.
type SnapshotEntry struct {
	Path  Path
	Icon  *IconRef
	Inode uint64
}

// Snapshot is the serialized form of the persistent cache. Paths are ordered
// from least to most recently used.
type Snapshot struct {
	Version int
	Paths   []SnapshotEntry
}
