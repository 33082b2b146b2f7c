package model

import (
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultPriority is assigned to rules that do not declare one.
const DefaultPriority = 1

// DefaultIconClass is reported for files that no rule classified.
const DefaultIconClass = "default-icon"

// patternTimeout bounds a single match so a pathological rule cannot stall a lookup.
const patternTimeout = 100 * time.Millisecond

// PatternFlags mirror the regular-expression flags a rule may carry.
type PatternFlags uint8

// Supported pattern flags.
const (
	FlagIgnoreCase PatternFlags = 1 << iota
	FlagMultiline
	FlagDotAll
)

func (f PatternFlags) String() string {
	out := ""
	if f&FlagIgnoreCase != 0 {
		out += "i"
	}

	if f&FlagMultiline != 0 {
		out += "m"
	}

	if f&FlagDotAll != 0 {
		out += "s"
	}

	return out
}

func (f PatternFlags) options() regexp2.RegexOptions {
	opts := regexp2.None
	if f&FlagIgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}

	if f&FlagMultiline != 0 {
		opts |= regexp2.Multiline
	}

	if f&FlagDotAll != 0 {
		opts |= regexp2.Singleline
	}

	return opts
}

// Pattern is a compiled regular expression together with its source.
type Pattern struct {
	source string
	flags  PatternFlags
	re     *regexp2.Regexp
}

// CompilePattern compiles source with the given flags.
func CompilePattern(source string, flags PatternFlags) (*Pattern, error) {
	re, err := regexp2.Compile(source, flags.options())
	if err != nil {
		return nil, err
	}

	re.MatchTimeout = patternTimeout

	return &Pattern{source: source, flags: flags, re: re}, nil
}

// Source returns the pattern source without delimiters.
func (p *Pattern) Source() string {
	if p == nil {
		return ""
	}

	return p.source
}

// Flags returns the flags the pattern was compiled with.
func (p *Pattern) Flags() PatternFlags {
	if p == nil {
		return 0
	}

	return p.flags
}

// Match reports whether s matches. Engine errors count as no match.
func (p *Pattern) Match(s string) bool {
	if p == nil {
		return false
	}

	ok, err := p.re.MatchString(s)

	return err == nil && ok
}

func (p *Pattern) String() string {
	if p == nil {
		return ""
	}

	return "/" + p.source + "/" + p.flags.String()
}

// ColourPair holds the colour tokens used on dark and light backgrounds.
type ColourPair struct {
	Dark  string
	Light string
}

// IsZero reports whether neither token is set.
func (c ColourPair) IsZero() bool {
	return c.Dark == "" && c.Light == ""
}

// ColourMode selects which colour token, if any, accompanies an icon class.
type ColourMode int

// Colour modes.
const (
	ColourNone ColourMode = iota
	ColourDark
	ColourLight
)

// ParseColourMode maps a configuration value to a ColourMode.
func ParseColourMode(value string) ColourMode {
	switch value {
	case "dark":
		return ColourDark
	case "light":
		return ColourLight
	}

	return ColourNone
}

// Icon is a compiled rule. Icons are built once by the rule compiler and
// shared by pointer; two icons are "the same" only when the pointers are
// equal, which the icon delegate relies on when removing slots.
type Icon struct {
	Index     int
	ClassName string
	Colours   ColourPair
	Priority  int
	Directory bool
	MatchPath bool

	Match       *Pattern
	Interpreter *Pattern
	Scope       *Pattern
	Alias       *Pattern
	Signature   *Pattern

	Group string
	Order int
}

// Classes returns the class tokens for the icon in the given colour mode.
func (i *Icon) Classes(mode ColourMode) []string {
	if i == nil {
		return nil
	}

	classes := []string{i.ClassName}

	var colour string

	switch mode {
	case ColourDark:
		colour = i.Colours.Dark
	case ColourLight:
		colour = i.Colours.Light
	case ColourNone:
	}

	if colour != "" {
		classes = append(classes, colour)
	}

	return classes
}

// Ref returns the identity of the icon as stored in the persistent cache.
func (i *Icon) Ref(priority int) *IconRef {
	if i == nil {
		return nil
	}

	return &IconRef{
		Priority:  priority,
		Index:     i.Index,
		ClassName: i.ClassName,
		Directory: i.Directory,
	}
}
