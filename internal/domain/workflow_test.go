package domain_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	adaptermocks "fileicons.dev/pkg/fileicons/internal/adapter/mocks"
	controllermocks "fileicons.dev/pkg/fileicons/internal/controller/mocks"
	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/scheduler"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	"fileicons.dev/pkg/fileicons/internal/domain/strategies"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func engineFactory(table *rules.Table, fs adapter.ProbeFSAdapter, store adapter.SnapshotStore) domain.EngineFactory {
	return func(roots []m.Path) (*domain.Service, error) {
		cache := storage.New(100)
		sched := scheduler.New(fs, scheduler.Options{Debounce: time.Millisecond})
		registry := domain.NewRegistry(cache, table)

		pipeline, err := domain.NewPipeline(strategies.New(strategies.Deps{
			Table:     table,
			Scheduler: sched,
			FS:        fs,
			Roots:     roots,
		})...)
		if err != nil {
			return nil, err
		}

		return domain.NewService(table, cache, store, sched, registry, pipeline), nil
	}
}

func byBase(classifications []m.Classification) map[string]m.Classification {
	out := make(map[string]m.Classification, len(classifications))
	for _, c := range classifications {
		out[c.Path.Base()] = c
	}

	return out
}

func TestWorkflow_Classify(t *testing.T) {
	ctx := context.Background()

	table, err := rules.Default()
	require.NoError(t, err)

	fs := adapter.NewLocalProbeFSAdapter(0)

	newTree := func(t *testing.T) string {
		t.Helper()

		root := t.TempDir()
		writeFile(t, filepath.Join(root, "main.go"), "package main\n")
		writeFile(t, filepath.Join(root, "Makefile"), "all:\n\tgo build\n")
		writeFile(t, filepath.Join(root, "notes.txt"), "hello world\n")
		writeFile(t, filepath.Join(root, "sub", "README.md"), "# Title\n")
		writeFile(t, filepath.Join(root, "node_modules", "pkg", "index.js"), "module.exports = 1\n")

		return root
	}

	t.Run("classifies the tree and saves the cache", func(t *testing.T) {
		root := newTree(t)
		store := adapter.NewFileSnapshotStore(m.Path(filepath.Join(t.TempDir(), "cache.gob")))
		ui := controllermocks.NewMockUI(t)

		var got []m.Classification

		ui.EXPECT().DisplayClassifications(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, c []m.Classification) error {
				got = c
				return nil
			})

		wf := domain.NewWorkflow(fs, store, ui, table, engineFactory(table, fs, store), nil, 100)

		require.NoError(t, wf.Classify(ctx, domain.ClassifyArgs{
			Paths:   []m.Path{m.Path(root + "/...")},
			Exclude: []string{"node_modules"},
			Mode:    m.ColourNone,
		}))

		seen := byBase(got)
		assert.Len(t, got, 6)
		assert.NotContains(t, seen, "index.js")
		assert.NotContains(t, seen, "node_modules")

		assert.Equal(t, []string{"go-icon"}, seen["main.go"].Classes)
		assert.Equal(t, strategies.NamePath, seen["main.go"].Strategy)
		assert.Equal(t, []string{"gnu-icon"}, seen["Makefile"].Classes)
		assert.Equal(t, []string{"markdown-icon"}, seen["README.md"].Classes)
		assert.True(t, seen["sub"].Directory)
		assert.Nil(t, seen["sub"].Icon)

		info, err := store.Info(ctx)
		require.NoError(t, err)
		assert.True(t, info.Exists)
		assert.GreaterOrEqual(t, info.Entries, 4)
	})

	t.Run("disabled strategies leave files unmatched", func(t *testing.T) {
		root := newTree(t)
		ui := controllermocks.NewMockUI(t)

		var got []m.Classification

		ui.EXPECT().DisplayClassifications(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, c []m.Classification) error {
				got = c
				return nil
			})

		wf := domain.NewWorkflow(fs, nil, ui, table, engineFactory(table, fs, nil), nil, 100)

		require.NoError(t, wf.Classify(ctx, domain.ClassifyArgs{
			Paths:      []m.Path{m.Path(root)},
			Exclude:    []string{"node_modules"},
			Strategies: map[string]bool{strategies.NamePath: false},
		}))

		seen := byBase(got)
		assert.Nil(t, seen["notes.txt"].Icon)
		assert.Equal(t, []string{m.DefaultIconClass}, seen["notes.txt"].Classes)
		assert.Empty(t, seen["notes.txt"].Strategy)
	})

	t.Run("missing root", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		wf := domain.NewWorkflow(fs, nil, ui, table, engineFactory(table, fs, nil), nil, 100)

		err := wf.Classify(ctx, domain.ClassifyArgs{Paths: []m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("invalid exclude pattern", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		wf := domain.NewWorkflow(fs, nil, ui, table, engineFactory(table, fs, nil), nil, 100)

		err := wf.Classify(ctx, domain.ClassifyArgs{Paths: []m.Path{m.Path(t.TempDir())}, Exclude: []string{"("}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "exclude pattern")
	})

	t.Run("engine failure", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		failing := func([]m.Path) (*domain.Service, error) { return nil, errors.New("no engine") }
		wf := domain.NewWorkflow(fs, nil, ui, table, failing, nil, 100)

		err := wf.Classify(ctx, domain.ClassifyArgs{Paths: []m.Path{m.Path(t.TempDir())}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "create engine")
	})

	t.Run("watch needs a watcher", func(t *testing.T) {
		ui := controllermocks.NewMockUI(t)
		ui.EXPECT().DisplayClassifications(mock.Anything, mock.Anything).Return(nil)

		wf := domain.NewWorkflow(fs, nil, ui, table, engineFactory(table, fs, nil), nil, 100)

		err := wf.Classify(ctx, domain.ClassifyArgs{Paths: []m.Path{m.Path(t.TempDir())}, Watch: true})

		require.ErrorIs(t, err, domain.ErrWatchUnsupported)
	})
}

func TestWorkflow_ClassifyWatch(t *testing.T) {
	table, err := rules.Default()
	require.NoError(t, err)

	fs := adapter.NewLocalProbeFSAdapter(0)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan m.Classification, 16)

	ui := controllermocks.NewMockUI(t)
	ui.EXPECT().DisplayClassifications(mock.Anything, mock.Anything).Return(nil)
	ui.EXPECT().DisplayChange(mock.Anything, mock.Anything).Run(func(_ context.Context, c m.Classification) {
		select {
		case changes <- c:
		default:
		}
	}).Maybe()

	newWatcher := func() (adapter.FileWatcher, error) { return adapter.NewFSNotifyWatcher() }
	wf := domain.NewWorkflow(fs, nil, ui, table, engineFactory(table, fs, nil), newWatcher, 100)

	done := make(chan error, 1)

	go func() {
		done <- wf.Classify(ctx, domain.ClassifyArgs{Paths: []m.Path{m.Path(root)}, Watch: true})
	}()

	attempt := 0

	require.Eventually(t, func() bool {
		attempt++
		writeFile(t, filepath.Join(root, fmt.Sprintf("lib%d.rs", attempt)), "fn main() {}\n")

		for {
			select {
			case c := <-changes:
				if c.Icon != nil && c.Icon.ClassName == "rust-icon" {
					return true
				}
			case <-time.After(50 * time.Millisecond):
				return false
			}
		}
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWorkflow_Rules(t *testing.T) {
	ctx := context.Background()

	table, err := rules.Default()
	require.NoError(t, err)

	capture := func(t *testing.T, args domain.RulesArgs) []m.RuleMatch {
		t.Helper()

		ui := controllermocks.NewMockUI(t)

		var got []m.RuleMatch

		ui.EXPECT().DisplayRules(mock.Anything, mock.Anything, args.Mode).
			RunAndReturn(func(_ context.Context, r []m.RuleMatch, _ m.ColourMode) error {
				got = r
				return nil
			})

		wf := domain.NewWorkflow(nil, nil, ui, table, nil, nil, 0)
		require.NoError(t, wf.Rules(ctx, args))

		return got
	}

	t.Run("empty query lists every file rule", func(t *testing.T) {
		got := capture(t, domain.RulesArgs{Mode: m.ColourDark})

		require.Len(t, got, len(table.Files()))
		assert.Same(t, table.Files()[0], got[0].Icon)
	})

	t.Run("directory rules", func(t *testing.T) {
		got := capture(t, domain.RulesArgs{Directories: true})

		require.Len(t, got, len(table.Directories()))

		for _, r := range got {
			assert.True(t, r.Icon.Directory)
		}
	})

	t.Run("fuzzy query ranks the best match first", func(t *testing.T) {
		got := capture(t, domain.RulesArgs{Query: "rust"})

		require.NotEmpty(t, got)
		assert.Equal(t, "Rust", got[0].Icon.Group)
	})

	t.Run("no match", func(t *testing.T) {
		got := capture(t, domain.RulesArgs{Query: "zzzzqqq"})

		assert.Empty(t, got)
	})
}

func TestWorkflow_Cache(t *testing.T) {
	ctx := context.Background()

	table, err := rules.Default()
	require.NoError(t, err)

	saved := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	info := adapter.SnapshotInfo{
		Backend:  "file",
		Location: "/tmp/cache.gob",
		Exists:   true,
		Size:     2048,
		Entries:  12,
		Version:  storage.Version,
		Modified: saved,
	}

	t.Run("info", func(t *testing.T) {
		store := adaptermocks.NewMockSnapshotStore(t)
		ui := controllermocks.NewMockUI(t)

		store.EXPECT().Info(mock.Anything).Return(info, nil)
		ui.EXPECT().DisplayCacheInfo(mock.Anything, m.CacheInfo{
			Backend:  "file",
			Location: "/tmp/cache.gob",
			Exists:   true,
			Size:     2048,
			Entries:  12,
			Version:  storage.Version,
			Modified: saved,
			Capacity: 500,
		}).Return(nil)

		wf := domain.NewWorkflow(nil, store, ui, table, nil, nil, 500)
		require.NoError(t, wf.CacheInfo(ctx))
	})

	t.Run("info failure", func(t *testing.T) {
		store := adaptermocks.NewMockSnapshotStore(t)
		ui := controllermocks.NewMockUI(t)

		store.EXPECT().Info(mock.Anything).Return(adapter.SnapshotInfo{}, errors.New("permission denied"))

		wf := domain.NewWorkflow(nil, store, ui, table, nil, nil, 500)

		err := wf.CacheInfo(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read cache info")
	})

	t.Run("clear", func(t *testing.T) {
		store := adaptermocks.NewMockSnapshotStore(t)
		ui := controllermocks.NewMockUI(t)
		fs := adapter.NewLocalProbeFSAdapter(0)

		cleared := info
		cleared.Exists = false

		store.EXPECT().Clear(mock.Anything).Return(nil)
		store.EXPECT().Info(mock.Anything).Return(cleared, nil)
		ui.EXPECT().DisplayCacheCleared(mock.Anything, mock.MatchedBy(func(c m.CacheInfo) bool {
			return c.Backend == "file" && !c.Exists
		})).Return()

		wf := domain.NewWorkflow(fs, store, ui, table, engineFactory(table, fs, store), nil, 500)
		require.NoError(t, wf.ClearCache(ctx))
	})
}
