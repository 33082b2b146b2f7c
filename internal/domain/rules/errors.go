package rules

import (
	"errors"
	"fmt"
)

// ErrBackReference is reported for patterns that refer back to a group.
// Groups are rewritten to non-capturing form, so such references cannot hold.
var ErrBackReference = errors.New("back-references are not supported")

// ErrUnterminatedClass is reported for a character class missing its closing bracket.
var ErrUnterminatedClass = errors.New("unterminated character class")

// ErrTrailingBackslash is reported for a pattern ending in a lone backslash.
var ErrTrailingBackslash = errors.New("trailing backslash")

// ErrMissingIcon is reported for a descriptor without an icon class.
var ErrMissingIcon = errors.New("missing icon class")

// CompileError identifies the rule group and pattern that failed to compile.
type CompileError struct {
	Group  string
	Field  string
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("rule group %q: %s: %v", e.Group, e.Field, e.Err)
	}

	return fmt.Sprintf("rule group %q: %s pattern %q: %v", e.Group, e.Field, e.Source, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
