package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/errgroup"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	"fileicons.dev/pkg/fileicons/internal/controller"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// walkParallel bounds how many roots are walked at once.
const walkParallel = 4

// ErrWatchUnsupported is returned by Classify in watch mode when no watcher
// factory was configured.
var ErrWatchUnsupported = errors.New("watching is not available")

// ClassifyArgs contains the arguments for classifying directory trees.
type ClassifyArgs struct {
	Paths   []m.Path
	Exclude []string
	// Strategies toggles strategies by name. Missing names stay enabled.
	Strategies map[string]bool
	Mode       m.ColourMode
	Watch      bool
}

// RulesArgs contains the arguments for listing icon rules.
type RulesArgs struct {
	Query       string
	Directories bool
	Mode        m.ColourMode
}

// Workflow defines the operations offered by the command line.
type Workflow interface {
	Classify(ctx context.Context, args ClassifyArgs) error
	Rules(ctx context.Context, args RulesArgs) error
	CacheInfo(ctx context.Context) error
	ClearCache(ctx context.Context) error
}

// EngineFactory builds a Service whose strategies serve roots.
type EngineFactory func(roots []m.Path) (*Service, error)

type workflow struct {
	adapter.ProbeFSAdapter
	adapter.SnapshotStore
	controller.UI

	table      *rules.Table
	newEngine  EngineFactory
	newWatcher func() (adapter.FileWatcher, error)
	capacity   int
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
// newWatcher may be nil, which disables watch mode.
func NewWorkflow(
	fsAdapter adapter.ProbeFSAdapter,
	store adapter.SnapshotStore,
	ui controller.UI,
	table *rules.Table,
	newEngine EngineFactory,
	newWatcher func() (adapter.FileWatcher, error),
	capacity int,
) Workflow {
	return &workflow{
		ProbeFSAdapter: fsAdapter,
		SnapshotStore:  store,
		UI:             ui,
		table:          table,
		newEngine:      newEngine,
		newWatcher:     newWatcher,
		capacity:       capacity,
	}
}

// Classify walks every path, classifies what it finds and prints the result.
// In watch mode it then keeps the classification current until ctx ends.
func (w *workflow) Classify(ctx context.Context, args ClassifyArgs) (err error) {
	roots, err := w.resolveRoots(ctx, args.Paths)
	if err != nil {
		return err
	}

	exclude, err := compileExcludes(args.Exclude)
	if err != nil {
		return err
	}

	engine, err := w.newEngine(roots)
	if err != nil {
		slog.Error("Failed to create engine", "error", err)
		return fmt.Errorf("create engine: %w", err)
	}

	if err := engine.Initialize(ctx, roots, args.Strategies); err != nil {
		engine.Close()
		return err
	}

	defer func() {
		if shutdownErr := engine.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
	}()

	walked, err := w.walk(ctx, engine.Registry(), roots, exclude)
	if err != nil {
		slog.Error("Failed to walk paths", "error", err)
		return err
	}

	if err := engine.Settle(ctx); err != nil {
		return err
	}

	classifications := make([]m.Classification, 0, len(walked))
	for _, r := range walked {
		classifications = append(classifications, engine.Describe(r, args.Mode))
	}

	if err := w.DisplayClassifications(ctx, classifications); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	if !args.Watch {
		return nil
	}

	return w.watch(ctx, engine, walked, exclude, args.Mode)
}

// resolveRoots turns command line paths into absolute, existing roots. A
// trailing "/..." is accepted and ignored since walks are always recursive.
func (w *workflow) resolveRoots(ctx context.Context, paths []m.Path) ([]m.Path, error) {
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	roots := make([]m.Path, 0, len(paths))

	for _, p := range paths {
		trimmed := strings.TrimSuffix(string(p), "/...")
		if trimmed == "" {
			trimmed = "."
		}

		abs, err := filepath.Abs(trimmed)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}

		root := m.Path(abs)
		if _, err := w.Stat(ctx, root); err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}

	return roots, nil
}

func compileExcludes(sources []string) ([]*m.Pattern, error) {
	patterns := make([]*m.Pattern, 0, len(sources))

	for _, source := range sources {
		if strings.TrimSpace(source) == "" {
			continue
		}

		pattern, err := m.CompilePattern(source, 0)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", source, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

func excluded(path m.Path, patterns []*m.Pattern) bool {
	for _, p := range patterns {
		if p.Match(string(path)) {
			return true
		}
	}

	return false
}

// walk creates a resource for every path under roots, in path order.
func (w *workflow) walk(ctx context.Context, registry *Registry, roots []m.Path, exclude []*m.Pattern) ([]*Resource, error) {
	var (
		mu     sync.Mutex
		walked = make(map[m.Path]*Resource)
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(walkParallel)

	for _, root := range roots {
		group.Go(func() error {
			err := w.Walk(groupCtx, root, func(path m.Path, stats *m.Stats, err error) error {
				if err != nil {
					if ctxErr := groupCtx.Err(); ctxErr != nil {
						return ctxErr
					}

					slog.Warn("failed to read path", "path", path, "error", err)

					return nil
				}

				if path != root && excluded(path, exclude) {
					if stats.IsDir() {
						return adapter.ErrSkipDir
					}

					return nil
				}

				r, _ := registry.Create(path, ResourceOptions{Stats: stats})

				mu.Lock()
				walked[path] = r
				mu.Unlock()

				return nil
			})
			if err != nil {
				return fmt.Errorf("walk %s: %w", root, err)
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Resource, 0, len(walked))
	for _, r := range walked {
		out = append(out, r)
	}

	slices.SortFunc(out, func(a, b *Resource) int {
		return strings.Compare(string(a.Path()), string(b.Path()))
	})

	return out, nil
}

// watch follows filesystem changes under the walked directories and prints
// every classification that changes, until ctx is done.
func (w *workflow) watch(ctx context.Context, engine *Service, walked []*Resource, exclude []*m.Pattern, mode m.ColourMode) error {
	if w.newWatcher == nil {
		return ErrWatchUnsupported
	}

	watcher, err := w.newWatcher()
	if err != nil {
		slog.Error("Failed to create watcher", "error", err)
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Warn("failed to close watcher", "error", err)
		}
	}()

	for _, r := range walked {
		if r.IsDirectory() {
			if err := watcher.WatchDir(r.Path()); err != nil {
				slog.Warn("failed to watch directory", "path", r.Path(), "error", err)
			}
		}
	}

	var (
		mu   sync.Mutex
		subs Subscriptions
	)

	follow := func(r *Resource) {
		sub := r.Icon().OnDidChangeIcon(func(*m.Icon) {
			w.DisplayChange(ctx, engine.Describe(r, mode))
		})

		mu.Lock()
		subs = append(subs, sub)
		mu.Unlock()
	}

	for _, r := range walked {
		follow(r)
	}

	created := engine.Registry().OnDidCreate(follow)

	defer func() {
		created.Dispose()

		mu.Lock()
		defer mu.Unlock()

		subs.Dispose()
	}()

	slog.Info("watching for changes", "resources", len(walked))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}

			slog.Warn("watch error", "error", err)
		case evt, ok := <-watcher.Events():
			if !ok {
				return nil
			}

			w.apply(ctx, engine, watcher, evt, exclude, mode)
		}
	}
}

// apply mirrors one filesystem event into the registry.
func (w *workflow) apply(
	ctx context.Context,
	engine *Service,
	watcher adapter.FileWatcher,
	evt adapter.FileEvent,
	exclude []*m.Pattern,
	mode m.ColourMode,
) {
	if excluded(evt.Path, exclude) {
		return
	}

	registry := engine.Registry()

	switch {
	case evt.Op.Has(adapter.FileRemoved | adapter.FileRenamed):
		if r, ok := registry.Get(evt.Path); ok && r.IsDirectory() {
			if err := watcher.Unwatch(evt.Path); err != nil {
				slog.Debug("failed to unwatch directory", "path", evt.Path, "error", err)
			}
		}

		for _, r := range registry.Resources() {
			if r.Path().Within(evt.Path) {
				registry.Destroy(r.Path())
			}
		}
	case evt.Op.Has(adapter.FileCreated):
		stats, err := w.Stat(ctx, evt.Path)
		if err != nil {
			slog.Debug("created path vanished", "path", evt.Path, "error", err)
			return
		}

		r, created := registry.Create(evt.Path, ResourceOptions{Stats: stats})
		if !created {
			engine.Refresh(r)
			return
		}

		if r.IsDirectory() {
			if err := watcher.WatchDir(evt.Path); err != nil {
				slog.Warn("failed to watch directory", "path", evt.Path, "error", err)
			}
		}

		w.DisplayChange(ctx, engine.Describe(r, mode))
	case evt.Op.Has(adapter.FileWritten):
		if r, ok := registry.Get(evt.Path); ok {
			engine.Refresh(r)
		}
	}
}

// Rules lists icon rules, optionally narrowed by a fuzzy query.
func (w *workflow) Rules(ctx context.Context, args RulesArgs) error {
	icons := w.table.Files()
	if args.Directories {
		icons = w.table.Directories()
	}

	if err := w.DisplayRules(ctx, searchRules(icons, args.Query), args.Mode); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// searchRules ranks icons against query by rule-group and class name. An
// empty query returns every icon in table order.
func searchRules(icons []*m.Icon, query string) []m.RuleMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]m.RuleMatch, 0, len(icons))
		for _, icon := range icons {
			out = append(out, m.RuleMatch{Icon: icon})
		}

		return out
	}

	targets := make([]string, 0, len(icons))
	for _, icon := range icons {
		targets = append(targets, icon.Group+" "+icon.ClassName)
	}

	ranks := fuzzy.Find(query, targets)
	sort.Stable(ranks)

	out := make([]m.RuleMatch, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, m.RuleMatch{Icon: icons[r.Index], Score: r.Score})
	}

	return out
}

// CacheInfo prints what the snapshot store currently holds.
func (w *workflow) CacheInfo(ctx context.Context) error {
	info, err := w.Info(ctx)
	if err != nil {
		slog.Error("Failed to read cache info", "error", err)
		return fmt.Errorf("read cache info: %w", err)
	}

	if err := w.DisplayCacheInfo(ctx, w.cacheInfo(info)); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}

// ClearCache empties the cache and removes its stored snapshot.
func (w *workflow) ClearCache(ctx context.Context) error {
	engine, err := w.newEngine(nil)
	if err != nil {
		slog.Error("Failed to create engine", "error", err)
		return fmt.Errorf("create engine: %w", err)
	}
	defer engine.Close()

	if err := engine.ClearCache(ctx); err != nil {
		slog.Error("Failed to clear cache", "error", err)
		return err
	}

	info, err := w.Info(ctx)
	if err != nil {
		return fmt.Errorf("read cache info: %w", err)
	}

	w.DisplayCacheCleared(ctx, w.cacheInfo(info))

	return nil
}

func (w *workflow) cacheInfo(info adapter.SnapshotInfo) m.CacheInfo {
	return m.CacheInfo{
		Backend:  info.Backend,
		Location: info.Location,
		Exists:   info.Exists,
		Size:     info.Size,
		Entries:  info.Entries,
		Version:  info.Version,
		Modified: info.Modified,
		Capacity: w.capacity,
	}
}
