// Package model defines the data structures shared by the classification engine.
package model

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Path represents a file system path.
type Path string

// Base returns the last element of the path.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Dir returns all but the last element of the path.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// Within reports whether p is root itself or lies underneath it.
func (p Path) Within(root Path) bool {
	if root == "" {
		return false
	}

	rel, err := filepath.Rel(string(root), string(p))
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Stats holds the subset of file metadata the engine cares about.
type Stats struct {
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	Inode   uint64
}

// IsDir reports whether the stats describe a directory.
func (s *Stats) IsDir() bool {
	return s != nil && s.Mode.IsDir()
}

// IsSymlink reports whether the stats describe a symbolic link.
func (s *Stats) IsSymlink() bool {
	return s != nil && s.Mode&os.ModeSymlink != 0
}

// VCSStatus is the version-control state reported by the host for a resource.
type VCSStatus int

// Known VCS states.
const (
	VCSUnknown VCSStatus = iota
	VCSClean
	VCSModified
	VCSAdded
	VCSIgnored
)
