package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/scheduler"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// SymlinkSource is reported by Describe for resources following a target.
const SymlinkSource = "symlink"

// CacheSource is reported by Describe for icons restored from the cache that
// no strategy has confirmed yet.
const CacheSource = "cache"

// Service runs the classification engine over the resources of a Registry.
// It restores the cache before strategies start and saves it on shutdown.
type Service struct {
	table     *rules.Table
	cache     *storage.Storage
	store     adapter.SnapshotStore
	scheduler *scheduler.Scheduler
	registry  *Registry
	pipeline  *Pipeline

	mu   sync.Mutex
	subs Subscriptions
}

// NewService creates a Service. store may be nil, in which case the cache
// lives for the process only.
func NewService(
	table *rules.Table,
	cache *storage.Storage,
	store adapter.SnapshotStore,
	sched *scheduler.Scheduler,
	registry *Registry,
	pipeline *Pipeline,
) *Service {
	return &Service{
		table:     table,
		cache:     cache,
		store:     store,
		scheduler: sched,
		registry:  registry,
		pipeline:  pipeline,
	}
}

// Table returns the classification table.
func (s *Service) Table() *rules.Table { return s.table }

// Cache returns the persistent cache.
func (s *Service) Cache() *storage.Storage { return s.cache }

// Store returns the snapshot store, if any.
func (s *Service) Store() adapter.SnapshotStore { return s.store }

// Registry returns the resource registry.
func (s *Service) Registry() *Registry { return s.registry }

// Pipeline returns the strategy pipeline.
func (s *Service) Pipeline() *Pipeline { return s.pipeline }

// Scheduler returns the probe scheduler.
func (s *Service) Scheduler() *scheduler.Scheduler { return s.scheduler }

// Initialize restores the cache, drops entries outside roots, subscribes to
// the registry and enables strategies according to toggles. A snapshot that
// cannot be loaded is logged and ignored.
func (s *Service) Initialize(ctx context.Context, roots []m.Path, toggles map[string]bool) error {
	if s.store != nil && s.cache != nil {
		snapshot, err := s.store.Load(ctx)
		if err != nil {
			slog.Warn("failed to load cache snapshot", "error", err)
		} else {
			restored := s.cache.Restore(snapshot)
			removed := s.cache.Clean(roots)

			slog.Debug("restored cache", "entries", restored, "removed", removed)
		}
	}

	subs := Subscriptions{
		s.registry.OnDidCreate(s.track),
		s.registry.OnDidDestroy(s.pipeline.Unregister),
	}

	s.mu.Lock()
	s.subs = append(s.subs, subs...)
	s.mu.Unlock()

	s.pipeline.SetSource(s.classifiable)

	if err := s.pipeline.Configure(ctx, toggles); err != nil {
		slog.Error("failed to configure strategies", "error", err)
		return fmt.Errorf("configure strategies: %w", err)
	}

	for _, r := range s.registry.Resources() {
		s.track(r)
	}

	return nil
}

// classifiable lists the live resources strategies run on. Symlinks follow
// their target instead.
func (s *Service) classifiable() []*Resource {
	all := s.registry.Resources()
	out := all[:0]

	for _, r := range all {
		if !r.IsSymlink() {
			out = append(out, r)
		}
	}

	return out
}

func (s *Service) track(r *Resource) {
	if r.IsSymlink() {
		s.follow(r)
		return
	}

	s.pipeline.Register(r)
}

// follow resolves a symlink and makes its delegate defer to the target's.
func (s *Service) follow(link *Resource) {
	s.scheduler.Request(m.ProbeRealpath, link.Path()).Then(func(result m.ProbeResult, err error) {
		if err == nil {
			err = result.Err(m.ProbeRealpath)
		}

		if err != nil || result.Realpath == "" {
			slog.Debug("unresolved symlink", "path", link.Path(), "error", err)
			return
		}

		if link.Destroyed() {
			return
		}

		target := result.Realpath

		s.scheduler.Request(m.ProbeStat, target).Then(func(result m.ProbeResult, err error) {
			if err == nil {
				err = result.Err(m.ProbeStat)
			}

			if err != nil {
				slog.Debug("symlink target vanished", "path", link.Path(), "target", target, "error", err)
				return
			}

			if link.Destroyed() {
				return
			}

			r, _ := s.registry.Create(target, ResourceOptions{Stats: result.Stats})

			if err := link.Icon().SetMaster(r.Icon()); err != nil {
				slog.Warn("cannot follow symlink", "path", link.Path(), "target", target, "error", err)
			}
		})
	})
}

// Refresh reloads the header sample and stats of r after its content changed.
// Strategies rerun only when the first line differs from the last sample.
func (s *Service) Refresh(r *Resource) {
	if r.IsDirectory() || r.IsVirtual() || r.IsSymlink() || r.Destroyed() {
		return
	}

	path := r.Path()

	s.scheduler.Request(m.ProbeStat, path).Then(func(result m.ProbeResult, err error) {
		if err == nil {
			err = result.Err(m.ProbeStat)
		}

		if err != nil {
			slog.Debug("failed to refresh stats", "path", path, "error", err)
			return
		}

		r.SetStats(result.Stats)
	})

	s.scheduler.Request(m.ProbeSample, path).Then(func(result m.ProbeResult, err error) {
		if err == nil {
			err = result.Err(m.ProbeSample)
		}

		if err != nil {
			slog.Debug("failed to refresh sample", "path", path, "error", err)
			r.MarkUnreadable()

			return
		}

		r.SetSample(result.Sample)
	})
}

// Classify returns the icon the highest enabled strategy finds for r,
// without changing its delegate.
func (s *Service) Classify(r *Resource) *m.Icon {
	return s.pipeline.Classify(r)
}

// Settle blocks until every pending probe has been delivered.
func (s *Service) Settle(ctx context.Context) error {
	if err := s.scheduler.WaitIdle(ctx); err != nil {
		return fmt.Errorf("settle: %w", err)
	}

	return nil
}

// ClearCache empties the cache and the stored snapshot. It fails with
// storage.ErrLocked while a snapshot is being taken.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache != nil {
		if err := s.cache.Reset(); err != nil {
			return fmt.Errorf("reset cache: %w", err)
		}
	}

	if s.store != nil {
		if err := s.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}

	return nil
}

// Shutdown saves the cache and stops every strategy. The cache stays locked
// while strategies clear their slots, so the saved state is what was shown.
func (s *Service) Shutdown(ctx context.Context) error {
	var saveErr error

	if s.cache != nil {
		s.cache.Lock()
		defer s.cache.Unlock()

		if s.store != nil {
			if err := s.store.Save(ctx, s.cache.Snapshot()); err != nil {
				slog.Error("failed to save cache snapshot", "error", err)
				saveErr = fmt.Errorf("save cache snapshot: %w", err)
			}
		}
	}

	s.Close()

	return saveErr
}

// Close stops every strategy and the scheduler without saving the cache.
func (s *Service) Close() {
	s.pipeline.DisableAll()
	s.scheduler.Close()

	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	subs.Dispose()
}

// Describe reports what r currently shows and which strategy it came from.
func (s *Service) Describe(r *Resource, mode m.ColourMode) m.Classification {
	d := r.Icon()
	icon, priority := d.effective()

	c := m.Classification{
		Path:      r.Path(),
		Directory: r.IsDirectory(),
		Symlink:   r.IsSymlink(),
		Icon:      icon,
		Priority:  priority,
		Classes:   d.Classes(mode),
	}

	switch {
	case d.Master() != nil:
		c.Strategy = SymlinkSource
	case d.FromCache():
		c.Strategy = CacheSource
	case icon != nil:
		if strategy := s.pipeline.StrategyAt(priority); strategy != nil {
			c.Strategy = strategy.Name()
		}
	}

	return c
}
