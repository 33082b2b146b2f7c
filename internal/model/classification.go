package model

import "time"

// Classification is what one resource shows, as reported to the user.
type Classification struct {
	Path      Path
	Directory bool
	Symlink   bool
	Icon      *Icon
	// Priority is the slot the icon came from, or -1 without an icon.
	Priority int
	// Strategy names the strategy that wrote the slot.
	Strategy string
	Classes  []string
}

// RuleMatch is an icon rule returned by a rule search.
type RuleMatch struct {
	Icon  *Icon
	Score int
}

// CacheInfo describes the stored cache snapshot.
type CacheInfo struct {
	Backend  string
	Location string
	Exists   bool
	Size     int64
	Entries  int
	Version  int
	Modified time.Time
	Capacity int
}
