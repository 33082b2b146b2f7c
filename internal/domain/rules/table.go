package rules

import (
	"sync"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

type lookupKind int

const (
	lookupName lookupKind = iota
	lookupPath
	lookupAlias
	lookupInterpreter
	lookupScope
	lookupSignature
	lookupKinds
)

type memoKey struct {
	directory bool
	input     string
}

// iconSet is one primary sequence plus the secondary indexes derived from it.
// Every index keeps the relative order of the primary sequence.
type iconSet struct {
	all          []*m.Icon
	interpreters []*m.Icon
	aliases      []*m.Icon
	paths        []*m.Icon
	scopes       []*m.Icon
	signatures   []*m.Icon
}

func (s *iconSet) add(icon *m.Icon) {
	s.all = append(s.all, icon)

	if icon.Interpreter != nil {
		s.interpreters = append(s.interpreters, icon)
	}

	if icon.Alias != nil {
		s.aliases = append(s.aliases, icon)
	}

	if icon.MatchPath && icon.Match != nil {
		s.paths = append(s.paths, icon)
	}

	if icon.Scope != nil {
		s.scopes = append(s.scopes, icon)
	}

	if icon.Signature != nil {
		s.signatures = append(s.signatures, icon)
	}
}

// Table indexes compiled icons for every kind of lookup. It never changes
// after Load, so lookups memoize their results for the table's lifetime.
type Table struct {
	files       iconSet
	directories iconSet
	memo        [lookupKinds]sync.Map
}

// Load partitions icons into the file and directory sequences and builds the
// secondary indexes. icons must already be sorted, as Compile returns them.
func Load(icons []*m.Icon) *Table {
	t := &Table{}

	for _, icon := range icons {
		if icon.Directory {
			t.directories.add(icon)
		} else {
			t.files.add(icon)
		}
	}

	return t
}

// Files returns the file sequence in priority order.
func (t *Table) Files() []*m.Icon {
	return t.files.all
}

// Directories returns the directory sequence in priority order.
func (t *Table) Directories() []*m.Icon {
	return t.directories.all
}

// ByIndex resolves an icon by its position in its sequence.
func (t *Table) ByIndex(index int, directory bool) *m.Icon {
	set := t.set(directory)
	if index < 0 || index >= len(set.all) {
		return nil
	}

	return set.all[index]
}

func (t *Table) set(directory bool) *iconSet {
	if directory {
		return &t.directories
	}

	return &t.files
}

// MatchByName returns the highest-priority icon whose pattern matches a basename.
func (t *Table) MatchByName(name string, directory bool) *m.Icon {
	return t.lookup(lookupName, memoKey{directory, name}, func() *m.Icon {
		for _, icon := range t.set(directory).all {
			if !icon.MatchPath && icon.Match.Match(name) {
				return icon
			}
		}

		return nil
	})
}

// MatchByPath returns the highest-priority path rule matching a full path.
func (t *Table) MatchByPath(path m.Path, directory bool) *m.Icon {
	return t.lookup(lookupPath, memoKey{directory, string(path)}, func() *m.Icon {
		return first(t.set(directory).paths, func(icon *m.Icon) bool {
			return icon.Match.Match(string(path))
		})
	})
}

// MatchByLanguageAlias returns the icon of a human-readable language name.
func (t *Table) MatchByLanguageAlias(name string) *m.Icon {
	if name == "" {
		return nil
	}

	return t.lookup(lookupAlias, memoKey{input: name}, func() *m.Icon {
		return first(t.files.aliases, func(icon *m.Icon) bool {
			return icon.Alias.Match(name)
		})
	})
}

// MatchByInterpreter returns the icon of an executable named in a hashbang.
func (t *Table) MatchByInterpreter(name string) *m.Icon {
	if name == "" {
		return nil
	}

	return t.lookup(lookupInterpreter, memoKey{input: name}, func() *m.Icon {
		return first(t.files.interpreters, func(icon *m.Icon) bool {
			return icon.Interpreter.Match(name)
		})
	})
}

// MatchByScope returns the icon of a grammar scope such as "source.js".
func (t *Table) MatchByScope(scope string) *m.Icon {
	if scope == "" {
		return nil
	}

	return t.lookup(lookupScope, memoKey{input: scope}, func() *m.Icon {
		return first(t.files.scopes, func(icon *m.Icon) bool {
			return icon.Scope.Match(scope)
		})
	})
}

// MatchBySignature returns the icon whose content heuristic matches a sample.
func (t *Table) MatchBySignature(sample string) *m.Icon {
	if sample == "" {
		return nil
	}

	return t.lookup(lookupSignature, memoKey{input: sample}, func() *m.Icon {
		return first(t.files.signatures, func(icon *m.Icon) bool {
			return icon.Signature.Match(sample)
		})
	})
}

func (t *Table) lookup(kind lookupKind, key memoKey, scan func() *m.Icon) *m.Icon {
	if cached, ok := t.memo[kind].Load(key); ok {
		return cached.(*m.Icon)
	}

	icon := scan()
	t.memo[kind].Store(key, icon)

	return icon
}

func first(icons []*m.Icon, match func(*m.Icon) bool) *m.Icon {
	for _, icon := range icons {
		if match(icon) {
			return icon
		}
	}

	return nil
}
