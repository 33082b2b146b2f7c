// Package strategies holds the concrete classifiers run by the pipeline.
package strategies

import (
	"github.com/spf13/viper"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/scheduler"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// Strategy names, as used by the strategies.<name> configuration toggles.
const (
	NamePath      = "path"
	NameSignature = "signature"
	NameHashbang  = "hashbang"
	NameModeline  = "modeline"
	NameUserTypes = "usertypes"
	NameLinguist  = "linguist"
	NameGrammar   = "grammar"
)

// Strategy priorities. Each one is also the delegate slot the strategy writes.
const (
	PriorityPath = iota
	PrioritySignature
	PriorityHashbang
	PriorityModeline
	PriorityUserTypes
	PriorityLinguist
	PriorityGrammar
)

// DefaultMinSize is the smallest file whose header is sampled.
const DefaultMinSize = 6

// Names lists every strategy name in ascending priority.
var Names = []string{
	NamePath, NameSignature, NameHashbang, NameModeline, NameUserTypes, NameLinguist, NameGrammar,
}

// Deps carries what the strategies need from the rest of the engine.
type Deps struct {
	Table     *rules.Table
	Scheduler *scheduler.Scheduler
	FS        adapter.ProbeFSAdapter
	// Config supplies the user_types mapping. Nil disables user types.
	Config *viper.Viper
	// Roots are the project directories whose .gitattributes are read.
	Roots []m.Path
	// NewWatcher creates the watcher for attribute sources. Nil disables
	// watching; sources are then read once when the strategy starts.
	NewWatcher func() (adapter.FileWatcher, error)
	// MinSize is the smallest known file size eligible for sampling.
	MinSize int64
}

// New builds all seven strategies.
func New(deps Deps) []*domain.Strategy {
	minSize := deps.MinSize
	if minSize <= 0 {
		minSize = DefaultMinSize
	}

	headers := func(name string, priority int, match headerMatcher) *domain.Strategy {
		return domain.NewStrategy(
			domain.StrategyOptions{Name: name, Priority: priority, Files: true},
			newHeader(deps.Scheduler, minSize, match),
		)
	}

	return []*domain.Strategy{
		NewPath(deps.Table),
		headers(NameSignature, PrioritySignature, signatureMatcher(deps.Table)),
		headers(NameHashbang, PriorityHashbang, hashbangMatcher(deps.Table)),
		headers(NameModeline, PriorityModeline, modelineMatcher(deps.Table)),
		NewUserTypes(deps.Table, deps.Config),
		NewLinguist(deps.Table, deps.FS, deps.Roots, deps.NewWatcher),
		NewGrammar(deps.Table),
	}
}
