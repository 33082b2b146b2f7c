package rules

import (
	"cmp"
	"log/slog"
	"slices"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// draft is a rule variant whose patterns are still uncompiled. Variants of a
// group merge into a single draft when they are compatible.
type draft struct {
	group     string
	order     int
	icon      string
	colours   m.ColourPair
	priority  int
	directory bool
	matchPath bool

	match       []string
	matchFlags  m.PatternFlags
	hasMatch    bool
	interpreter patternSpec
	scope       patternSpec
	alias       patternSpec
	signature   patternSpec
}

// Compile turns a rule configuration into icons sorted by priority
// (descending), then rule-group name, then declaration order. The first
// malformed pattern aborts compilation with a *CompileError.
func Compile(cfg Config) ([]*m.Icon, error) {
	order := 0

	var icons []*m.Icon

	for _, section := range []struct {
		groups    Groups
		directory bool
	}{
		{cfg.Files, false},
		{cfg.Directories, true},
	} {
		for _, group := range section.groups {
			drafts, err := expandGroup(group, section.directory, &order)
			if err != nil {
				return nil, err
			}

			for _, d := range mergeDrafts(drafts) {
				icon, err := d.compile()
				if err != nil {
					return nil, err
				}

				icons = append(icons, icon)
			}
		}
	}

	sortIcons(icons)
	assignIndexes(icons)

	slog.Debug("compiled icon rules", "count", len(icons))

	return icons, nil
}

func sortIcons(icons []*m.Icon) {
	slices.SortStableFunc(icons, func(a, b *m.Icon) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}

		if c := cmp.Compare(a.Group, b.Group); c != 0 {
			return c
		}

		return cmp.Compare(a.Order, b.Order)
	})
}

// assignIndexes numbers icons by their position within the file or the
// directory sequence.
func assignIndexes(icons []*m.Icon) {
	var files, dirs int

	for _, icon := range icons {
		if icon.Directory {
			icon.Index = dirs
			dirs++

			continue
		}

		icon.Index = files
		files++
	}
}

func expandGroup(group Group, directory bool, order *int) ([]*draft, error) {
	var drafts []*draft

	for _, desc := range group.Descriptors {
		if desc.Icon == "" {
			return nil, &CompileError{Group: group.Name, Field: "icon", Err: ErrMissingIcon}
		}

		variants := desc.Match.Variants
		if len(variants) == 0 {
			variants = []Variant{{Pattern: desc.Match.Pattern}}
		}

		for _, v := range variants {
			d, err := newDraft(group.Name, desc, v, directory)
			if err != nil {
				return nil, err
			}

			d.order = *order
			*order++

			drafts = append(drafts, d)
		}
	}

	return drafts, nil
}

func newDraft(group string, desc Descriptor, v Variant, directory bool) (*draft, error) {
	icon := desc.Icon
	colour := desc.Colour
	priority := m.DefaultPriority
	alias, scope, interpreter, signature := desc.Alias, desc.Scope, desc.Interpreter, desc.Signature
	matchPath, noFuzz, noSuffix := desc.MatchPath, desc.NoFuzz, desc.NoSuffix

	if desc.Priority != nil {
		priority = *desc.Priority
	}

	if len(v.Colour) > 0 {
		colour = v.Colour
	}

	if o := v.Overrides; o != nil {
		if o.Icon != "" {
			icon = o.Icon
		}

		if len(o.Colour) > 0 {
			colour = o.Colour
		}

		if o.Priority != nil {
			priority = *o.Priority
		}

		alias = pick(o.Alias, alias)
		scope = pick(o.Scope, scope)
		interpreter = pick(o.Interpreter, interpreter)
		signature = pick(o.Signature, signature)
		matchPath = pickBool(o.MatchPath, matchPath)
		noFuzz = pickBool(o.NoFuzz, noFuzz)
		noSuffix = pickBool(o.NoSuffix, noSuffix)
	}

	d := &draft{
		group:     group,
		icon:      icon,
		colours:   colourPair(colour),
		priority:  priority,
		directory: directory,
		matchPath: matchPath,
	}

	if v.Pattern != "" {
		source, flags, regex := parseInput(v.Pattern)

		spec := patternSpec{source: source, flags: flags}
		if !regex {
			spec = literalMatch(source, noSuffix)
		}

		if matchPath {
			spec.source = normalizeSeparators(spec.source)
		}

		rewritten, err := forceNonCapturing(spec.source)
		if err != nil {
			return nil, &CompileError{Group: group, Field: "match", Source: v.Pattern, Err: err}
		}

		d.match = []string{rewritten}
		d.matchFlags = spec.flags
		d.hasMatch = true
	}

	d.interpreter = secondary(interpreter, interpreterName, noFuzz)
	d.scope = secondary(scope, scopeName, noFuzz)
	d.signature = secondary(signature, signatureBytes, true)
	d.alias = secondary(alias, aliasName, noFuzz)

	if !directory && !desc.Generic {
		if err := foldGroupName(d, group, noFuzz); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// foldGroupName adds the group's own name to its alias pattern, unless the
// alias already recognises it.
func foldGroupName(d *draft, group string, noFuzz bool) error {
	if !d.alias.empty() {
		source, err := forceNonCapturing(d.alias.source)
		if err != nil {
			return &CompileError{Group: group, Field: "alias", Source: d.alias.source, Err: err}
		}

		current, err := m.CompilePattern(source, d.alias.flags)
		if err != nil {
			return &CompileError{Group: group, Field: "alias", Source: d.alias.source, Err: err}
		}

		if current.Match(group) {
			return nil
		}
	}

	name := secondary([]string{group}, aliasName, noFuzz)
	if d.alias.empty() {
		d.alias = name
		return nil
	}

	d.alias = patternSpec{
		source: alternate([]string{d.alias.source, name.source}),
		flags:  d.alias.flags | name.flags,
	}

	return nil
}

func pick(override, base Patterns) Patterns {
	if len(override) > 0 {
		return override
	}

	return base
}

func pickBool(override *bool, base bool) bool {
	if override != nil {
		return *override
	}

	return base
}

// mergeDrafts folds compatible variants of one group together, keeping the
// position of the first variant of each merged rule.
func mergeDrafts(drafts []*draft) []*draft {
	var merged []*draft

	for _, d := range drafts {
		target := slices.IndexFunc(merged, func(candidate *draft) bool {
			return candidate.mergeable(d)
		})
		if target < 0 {
			merged = append(merged, d)
			continue
		}

		merged[target].absorb(d)
	}

	return merged
}

func (d *draft) mergeable(other *draft) bool {
	if d.icon != other.icon || d.colours != other.colours || d.priority != other.priority {
		return false
	}

	if d.matchPath != other.matchPath || d.directory != other.directory {
		return false
	}

	if d.hasMatch != other.hasMatch || d.matchFlags != other.matchFlags {
		return false
	}

	return compatible(d.interpreter, other.interpreter) &&
		compatible(d.scope, other.scope) &&
		compatible(d.alias, other.alias) &&
		compatible(d.signature, other.signature)
}

func compatible(a, b patternSpec) bool {
	return a.empty() || b.empty() || a == b
}

func (d *draft) absorb(other *draft) {
	d.match = append(d.match, other.match...)

	for _, pair := range []struct{ dst, src *patternSpec }{
		{&d.interpreter, &other.interpreter},
		{&d.scope, &other.scope},
		{&d.alias, &other.alias},
		{&d.signature, &other.signature},
	} {
		if pair.dst.empty() {
			*pair.dst = *pair.src
		}
	}
}

func (d *draft) compile() (*m.Icon, error) {
	icon := &m.Icon{
		ClassName: d.icon,
		Colours:   d.colours,
		Priority:  d.priority,
		Directory: d.directory,
		MatchPath: d.matchPath,
		Group:     d.group,
		Order:     d.order,
	}

	var err error

	if d.hasMatch {
		spec := patternSpec{source: alternate(d.match), flags: d.matchFlags}
		if icon.Match, err = d.compileSpec("match", spec, false); err != nil {
			return nil, err
		}
	}

	if icon.Interpreter, err = d.compileSpec("interpreter", d.interpreter, true); err != nil {
		return nil, err
	}

	if icon.Scope, err = d.compileSpec("scope", d.scope, true); err != nil {
		return nil, err
	}

	if icon.Alias, err = d.compileSpec("alias", d.alias, true); err != nil {
		return nil, err
	}

	if icon.Signature, err = d.compileSpec("signature", d.signature, true); err != nil {
		return nil, err
	}

	return icon, nil
}

func (d *draft) compileSpec(field string, spec patternSpec, rewrite bool) (*m.Pattern, error) {
	if spec.empty() {
		return nil, nil
	}

	source := spec.source
	if rewrite {
		var err error
		if source, err = forceNonCapturing(source); err != nil {
			return nil, &CompileError{Group: d.group, Field: field, Source: spec.source, Err: err}
		}
	}

	p, err := m.CompilePattern(source, spec.flags)
	if err != nil {
		return nil, &CompileError{Group: d.group, Field: field, Source: spec.source, Err: err}
	}

	return p, nil
}
