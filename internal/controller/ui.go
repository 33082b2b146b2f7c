// Package controller renders classification results for the command line.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// UI defines how workflow results are shown to the user.
// Implementations can use different output methods (plain text, coloured tables).
type UI interface {
	DisplayClassifications(ctx context.Context, classifications []m.Classification) error
	DisplayChange(ctx context.Context, classification m.Classification)
	DisplayRules(ctx context.Context, rules []m.RuleMatch, mode m.ColourMode) error
	DisplayCacheInfo(ctx context.Context, info m.CacheInfo) error
	DisplayCacheCleared(ctx context.Context, info m.CacheInfo)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
