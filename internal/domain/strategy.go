package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// Classifier is the pure part of a strategy: it maps a resource to an icon
// or to nil. It may start loading data it lacks and return nil meanwhile;
// the strategy is rechecked once that data arrives.
type Classifier interface {
	MatchIcon(r *Resource) *m.Icon
}

// Watcher is implemented by classifiers whose result depends on resource
// events beyond a move. recheck re-runs the classifier for r.
type Watcher interface {
	Watch(r *Resource, recheck func()) Subscription
}

// Lifecycle is implemented by classifiers that own process-wide state, such
// as a watched attribute source, for as long as their strategy is enabled.
type Lifecycle interface {
	Start(ctx context.Context, s *Strategy) error
	Stop()
}

// StrategyOptions configure a Strategy.
type StrategyOptions struct {
	Name        string
	Priority    int
	Files       bool
	Directories bool
	// Virtual allows the strategy to run on resources without a backing file.
	Virtual bool
}

type tracking struct {
	icon     *m.Icon
	subs     Subscriptions
	dirty    bool
	running  bool
	disposed bool
}

// Strategy runs one Classifier over every registered resource and keeps the
// resource's delegate slot for its priority up to date.
type Strategy struct {
	opts       StrategyOptions
	classifier Classifier

	mu      sync.Mutex
	enabled bool
	tracked map[*Resource]*tracking
	live    func() []*Resource
}

// NewStrategy wraps classifier into a strategy.
func NewStrategy(opts StrategyOptions, classifier Classifier) *Strategy {
	return &Strategy{opts: opts, classifier: classifier}
}

// Name returns the configuration name of the strategy.
func (s *Strategy) Name() string {
	return s.opts.Name
}

// Priority returns the delegate slot the strategy writes to.
func (s *Strategy) Priority() int {
	return s.opts.Priority
}

// Classifier returns the wrapped classifier.
func (s *Strategy) Classifier() Classifier {
	return s.classifier
}

// Enabled reports whether the strategy is running.
func (s *Strategy) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enabled
}

// AppliesTo reports whether the strategy classifies r at all.
func (s *Strategy) AppliesTo(r *Resource) bool {
	if r.IsVirtual() && !s.opts.Virtual {
		return false
	}

	if r.IsDirectory() {
		return s.opts.Directories
	}

	return s.opts.Files
}

func (s *Strategy) setSource(live func() []*Resource) {
	s.mu.Lock()
	s.live = live
	s.mu.Unlock()
}

// Enable starts the strategy and classifies every resource already known.
func (s *Strategy) Enable(ctx context.Context) error {
	s.mu.Lock()
	if s.enabled {
		s.mu.Unlock()
		return nil
	}

	s.enabled = true
	s.tracked = make(map[*Resource]*tracking)
	live := s.live
	s.mu.Unlock()

	if lc, ok := s.classifier.(Lifecycle); ok {
		if err := lc.Start(ctx, s); err != nil {
			s.mu.Lock()
			s.enabled = false
			s.tracked = nil
			s.mu.Unlock()

			slog.Error("failed to start strategy", "strategy", s.Name(), "error", err)

			return fmt.Errorf("start strategy %s: %w", s.Name(), err)
		}
	}

	slog.Debug("enabled strategy", "strategy", s.Name(), "priority", s.Priority())

	if live != nil {
		for _, r := range live() {
			s.RegisterResource(r)
		}
	}

	return nil
}

// Disable stops the strategy and clears its slot on every resource it
// classified, revealing whatever lower strategies found.
func (s *Strategy) Disable() {
	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}

	s.enabled = false
	tracked := s.tracked
	s.tracked = nil

	icons := make(map[*Resource]*m.Icon, len(tracked))
	for r, t := range tracked {
		t.disposed = true
		icons[r] = t.icon
	}
	s.mu.Unlock()

	if lc, ok := s.classifier.(Lifecycle); ok {
		lc.Stop()
	}

	for r, t := range tracked {
		t.subs.Dispose()

		if icon := icons[r]; icon != nil {
			r.Icon().Remove(icon, s.Priority())
		}
	}

	slog.Debug("disabled strategy", "strategy", s.Name(), "resources", len(tracked))
}

// RegisterResource subscribes to r and classifies it. Registering the same
// resource twice has no effect.
func (s *Strategy) RegisterResource(r *Resource) {
	if !s.AppliesTo(r) || r.Destroyed() {
		return
	}

	s.mu.Lock()
	if !s.enabled {
		s.mu.Unlock()
		return
	}

	if _, ok := s.tracked[r]; ok {
		s.mu.Unlock()
		return
	}

	t := &tracking{}
	s.tracked[r] = t
	s.mu.Unlock()

	subs := Subscriptions{
		r.OnDidDestroy(s.UnregisterResource),
		r.OnDidMove(func(MoveEvent) { s.Recheck(r) }),
	}

	if w, ok := s.classifier.(Watcher); ok {
		subs = append(subs, w.Watch(r, func() { s.Recheck(r) }))
	}

	s.mu.Lock()
	if t.disposed {
		s.mu.Unlock()
		subs.Dispose()

		return
	}

	t.subs = subs
	s.mu.Unlock()

	s.Recheck(r)
}

// UnregisterResource drops r and clears the strategy's slot on it.
func (s *Strategy) UnregisterResource(r *Resource) {
	s.mu.Lock()

	t, ok := s.tracked[r]
	if !ok {
		s.mu.Unlock()
		return
	}

	delete(s.tracked, r)
	t.disposed = true
	icon := t.icon
	subs := t.subs
	s.mu.Unlock()

	subs.Dispose()

	if icon != nil {
		r.Icon().Remove(icon, s.Priority())
	}
}

// Tracked returns the resources the strategy currently classifies.
func (s *Strategy) Tracked() []*Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Resource, 0, len(s.tracked))
	for r := range s.tracked {
		out = append(out, r)
	}

	return out
}

// Recheck re-runs the classifier for each resource and updates its slot.
// Calls made while a resource is already being rechecked, for instance from
// an event fired by the classifier itself, fold into one more pass.
func (s *Strategy) Recheck(resources ...*Resource) {
	for _, r := range resources {
		s.recheck(r)
	}
}

func (s *Strategy) recheck(r *Resource) {
	s.mu.Lock()

	t, ok := s.tracked[r]
	if !ok {
		s.mu.Unlock()
		return
	}

	t.dirty = true
	if t.running {
		s.mu.Unlock()
		return
	}

	t.running = true
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if !t.dirty || t.disposed {
			t.running = false
			s.mu.Unlock()

			return
		}

		t.dirty = false
		s.mu.Unlock()

		icon := s.classifier.MatchIcon(r)

		s.mu.Lock()
		previous := t.icon
		t.icon = icon
		disposed := t.disposed
		s.mu.Unlock()

		if previous == icon {
			continue
		}

		if icon == nil || disposed {
			r.Icon().Remove(previous, s.Priority())
			continue
		}

		// Add overwrites the slot, so previous needs no separate removal.
		r.Icon().Add(icon, s.Priority())

		s.mu.Lock()
		disposed = t.disposed
		s.mu.Unlock()

		if disposed {
			r.Icon().Remove(icon, s.Priority())
		}
	}
}
