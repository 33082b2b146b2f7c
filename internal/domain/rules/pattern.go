package rules

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// wordGap is inserted between the words of a fuzzy literal.
const wordGap = `[-_ .]?`

// patternSpec is an uncompiled pattern: a source and the flags it needs.
type patternSpec struct {
	source string
	flags  m.PatternFlags
}

func (p patternSpec) empty() bool {
	return p.source == ""
}

// parseInput splits a `/source/flags` literal. Any other string is a plain
// literal and reported with regex=false.
func parseInput(input string) (source string, flags m.PatternFlags, regex bool) {
	if len(input) < 2 || input[0] != '/' {
		return input, 0, false
	}

	end := strings.LastIndexByte(input, '/')
	if end == 0 {
		return input, 0, false
	}

	for _, r := range input[end+1:] {
		switch r {
		case 'i':
			flags |= m.FlagIgnoreCase
		case 'm':
			flags |= m.FlagMultiline
		case 's':
			flags |= m.FlagDotAll
		default:
			return input, 0, false
		}
	}

	return input[1:end], flags, true
}

// forceNonCapturing rewrites every capturing group of source, including named
// groups, into a non-capturing one. Lookarounds and other `(?` constructs are
// kept. Back-references cannot survive the rewrite and are rejected.
func forceNonCapturing(source string) (string, error) {
	var b strings.Builder

	b.Grow(len(source) + 8)

	inClass := false

	for i := 0; i < len(source); i++ {
		c := source[i]

		switch {
		case c == '\\':
			if i+1 >= len(source) {
				return "", ErrTrailingBackslash
			}

			next := source[i+1]
			if !inClass && (next >= '1' && next <= '9' || next == 'k') {
				return "", ErrBackReference
			}

			b.WriteByte(c)
			b.WriteByte(next)
			i++
		case inClass:
			b.WriteByte(c)

			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true

			b.WriteByte(c)
			// A `]` right after the opening bracket (or its negation) is literal.
			if i+1 < len(source) && source[i+1] == '^' {
				b.WriteByte('^')
				i++
			}

			if i+1 < len(source) && source[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
		case c == '(':
			skip, named := namedGroupPrefix(source[i+1:])

			switch {
			case named:
				b.WriteString("(?:")
				i += skip
			case i+1 < len(source) && source[i+1] == '?':
				b.WriteString("(?")
				i++
			default:
				b.WriteString("(?:")
			}
		default:
			b.WriteByte(c)
		}
	}

	if inClass {
		return "", ErrUnterminatedClass
	}

	return b.String(), nil
}

// namedGroupPrefix reports whether rest (the text after an opening
// parenthesis) starts a named group, and how many bytes its prefix spans.
func namedGroupPrefix(rest string) (int, bool) {
	var closer byte

	var start int

	switch {
	case strings.HasPrefix(rest, "?P<"):
		closer, start = '>', 3
	case strings.HasPrefix(rest, "?<") && !strings.HasPrefix(rest, "?<=") && !strings.HasPrefix(rest, "?<!"):
		closer, start = '>', 2
	case strings.HasPrefix(rest, "?'"):
		closer, start = '\'', 2
	default:
		return 0, false
	}

	end := strings.IndexByte(rest[start:], closer)
	if end < 0 {
		return 0, false
	}

	return start + end + 1, true
}

// normalizeSeparators makes `/` in source match either path separator.
func normalizeSeparators(source string) string {
	var b strings.Builder

	inClass := false

	for i := 0; i < len(source); i++ {
		c := source[i]

		switch {
		case c == '\\' && i+1 < len(source):
			if source[i+1] == '/' {
				if inClass {
					b.WriteString(`/\\`)
				} else {
					b.WriteString(`[\\/]`)
				}

				i++

				continue
			}

			b.WriteByte(c)
			b.WriteByte(source[i+1])
			i++
		case c == '[' && !inClass:
			inClass = true

			b.WriteByte(c)
		case c == ']' && inClass:
			inClass = false

			b.WriteByte(c)
		case c == '/':
			if inClass {
				b.WriteString(`/\\`)
			} else {
				b.WriteString(`[\\/]`)
			}
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// fuzz turns a literal name into a pattern tolerant of case and of the
// punctuation used between words: "CoffeeScript" also matches "coffee-script".
func fuzz(literal string) string {
	words := splitWords(literal)
	for i, w := range words {
		words[i] = regexp2.Escape(w)
	}

	return strings.Join(words, wordGap)
}

func splitWords(s string) []string {
	var (
		words []string
		word  []rune
		prev  rune
	)

	flush := func() {
		if len(word) > 0 {
			words = append(words, string(word))
			word = word[:0]
		}
	}

	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()

			word = append(word, r)
		default:
			word = append(word, r)
		}

		prev = r
	}

	flush()

	return words
}

// literalMatch compiles a plain match string: escaped, case-insensitive and,
// unless noSuffix, anchored to the end of the input.
func literalMatch(literal string, noSuffix bool) patternSpec {
	source := regexp2.Escape(literal)
	if !noSuffix {
		source += "$"
	}

	return patternSpec{source: source, flags: m.FlagIgnoreCase}
}

type nameKind int

const (
	aliasName nameKind = iota
	interpreterName
	scopeName
	signatureBytes
)

// secondary builds one secondary pattern from a list of inputs. Regex inputs
// are used verbatim; literals are escaped, fuzzed unless noFuzz, and anchored
// according to kind.
func secondary(inputs []string, kind nameKind, noFuzz bool) patternSpec {
	var (
		parts []string
		flags m.PatternFlags
	)

	literalFlags := m.FlagIgnoreCase
	if kind == signatureBytes {
		literalFlags = 0
	}

	for _, input := range inputs {
		source, f, regex := parseInput(input)
		if regex {
			parts = append(parts, source)
			flags |= f

			continue
		}

		flags |= literalFlags

		var body string
		if noFuzz || kind == signatureBytes {
			body = regexp2.Escape(source)
		} else {
			body = fuzz(source)
		}

		switch kind {
		case aliasName:
			parts = append(parts, "^"+body+"$")
		case interpreterName:
			parts = append(parts, "^"+body+`[\d.]*$`)
		case scopeName:
			parts = append(parts, `\.`+body+"$")
		case signatureBytes:
			parts = append(parts, body)
		}
	}

	return patternSpec{source: alternate(parts), flags: flags}
}

// alternate joins sources with alternation, wrapping each so that their
// anchors stay local.
func alternate(sources []string) string {
	switch len(sources) {
	case 0:
		return ""
	case 1:
		return sources[0]
	}

	wrapped := make([]string, len(sources))
	for i, s := range sources {
		wrapped[i] = "(?:" + s + ")"
	}

	return strings.Join(wrapped, "|")
}

// darkVariant derives the light-theme token of a colour: light and medium
// shades become dark ones.
func darkVariant(colour string) string {
	for _, prefix := range []string{"light-", "medium-"} {
		if strings.HasPrefix(colour, prefix) {
			return "dark-" + strings.TrimPrefix(colour, prefix)
		}
	}

	return colour
}

func colourPair(c Colour) m.ColourPair {
	switch len(c) {
	case 0:
		return m.ColourPair{}
	case 1:
		return m.ColourPair{Dark: c[0], Light: darkVariant(c[0])}
	default:
		return m.ColourPair{Dark: c[0], Light: c[1]}
	}
}
