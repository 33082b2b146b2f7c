package domain

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

// ErrDuplicatePriority is returned when two strategies share a priority.
var ErrDuplicatePriority = errors.New("duplicate strategy priority")

// Pipeline holds the strategies in priority order, one list for files and
// one for directories.
type Pipeline struct {
	mu          sync.Mutex
	files       []*Strategy
	directories []*Strategy
	byName      map[string]*Strategy
	all         []*Strategy
}

// NewPipeline orders strategies by descending priority.
func NewPipeline(strategies ...*Strategy) (*Pipeline, error) {
	p := &Pipeline{byName: make(map[string]*Strategy, len(strategies))}
	priorities := make(map[int]string, len(strategies))

	for _, s := range strategies {
		if s.Priority() < 0 {
			return nil, fmt.Errorf("strategy %s: negative priority %d", s.Name(), s.Priority())
		}

		if other, ok := priorities[s.Priority()]; ok {
			return nil, fmt.Errorf("strategies %s and %s: %w", other, s.Name(), ErrDuplicatePriority)
		}

		if _, ok := p.byName[s.Name()]; ok {
			return nil, fmt.Errorf("strategy %s registered twice", s.Name())
		}

		priorities[s.Priority()] = s.Name()
		p.byName[s.Name()] = s
		p.all = append(p.all, s)

		if s.opts.Files {
			p.files = append(p.files, s)
		}

		if s.opts.Directories {
			p.directories = append(p.directories, s)
		}
	}

	byPriority := func(a, b *Strategy) int {
		return cmp.Compare(b.Priority(), a.Priority())
	}

	slices.SortFunc(p.all, byPriority)
	slices.SortFunc(p.files, byPriority)
	slices.SortFunc(p.directories, byPriority)

	return p, nil
}

// SetSource tells every strategy where to find the resources that are
// already live when it gets enabled.
func (p *Pipeline) SetSource(live func() []*Resource) {
	for _, s := range p.all {
		s.setSource(live)
	}
}

// Strategies returns every strategy, highest priority first.
func (p *Pipeline) Strategies() []*Strategy {
	return slices.Clone(p.all)
}

// Strategy looks a strategy up by name.
func (p *Pipeline) Strategy(name string) (*Strategy, bool) {
	s, ok := p.byName[name]
	return s, ok
}

// StrategyAt returns the strategy writing the given slot.
func (p *Pipeline) StrategyAt(priority int) *Strategy {
	for _, s := range p.all {
		if s.Priority() == priority {
			return s
		}
	}

	return nil
}

func (p *Pipeline) applicable(r *Resource) []*Strategy {
	if r.IsDirectory() {
		return p.directories
	}

	return p.files
}

// Classify returns the icon of the highest-priority enabled strategy that
// matches r, without touching its delegate.
func (p *Pipeline) Classify(r *Resource) *m.Icon {
	for _, s := range p.applicable(r) {
		if !s.Enabled() || !s.AppliesTo(r) {
			continue
		}

		if icon := s.classifier.MatchIcon(r); icon != nil {
			return icon
		}
	}

	return nil
}

// Register hands r to every enabled strategy that applies to it.
func (p *Pipeline) Register(r *Resource) {
	for _, s := range p.applicable(r) {
		s.RegisterResource(r)
	}
}

// Unregister removes r from every strategy.
func (p *Pipeline) Unregister(r *Resource) {
	for _, s := range p.applicable(r) {
		s.UnregisterResource(r)
	}
}

// Enable turns the named strategy on.
func (p *Pipeline) Enable(ctx context.Context, name string) error {
	s, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("enable %q: %w", name, ErrUnknownStrategy)
	}

	return s.Enable(ctx)
}

// Disable turns the named strategy off.
func (p *Pipeline) Disable(name string) error {
	s, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("disable %q: %w", name, ErrUnknownStrategy)
	}

	s.Disable()

	return nil
}

// Configure applies boolean toggles keyed by strategy name. Strategies
// missing from toggles are enabled. Unknown names are reported together.
func (p *Pipeline) Configure(ctx context.Context, toggles map[string]bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error

	for name := range toggles {
		if _, ok := p.byName[name]; !ok {
			errs = append(errs, fmt.Errorf("configure %q: %w", name, ErrUnknownStrategy))
		}
	}

	for _, s := range p.all {
		enabled, ok := toggles[s.Name()]
		if ok && !enabled {
			s.Disable()
			continue
		}

		if err := s.Enable(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// DisableAll turns every strategy off.
func (p *Pipeline) DisableAll() {
	for _, s := range p.all {
		s.Disable()
	}
}
