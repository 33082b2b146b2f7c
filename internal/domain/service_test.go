package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	"fileicons.dev/pkg/fileicons/internal/adapter/mocks"
	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/scheduler"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	"fileicons.dev/pkg/fileicons/internal/domain/strategies"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

type serviceFixture struct {
	table    *rules.Table
	cache    *storage.Storage
	store    *mocks.MockSnapshotStore
	registry *domain.Registry
	service  *domain.Service
	goIcon   *m.Icon
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	table, err := rules.Default()
	require.NoError(t, err)

	cache := storage.New(100)
	store := mocks.NewMockSnapshotStore(t)
	sched := scheduler.New(adapter.NewLocalProbeFSAdapter(0), scheduler.Options{Debounce: time.Millisecond})
	registry := domain.NewRegistry(cache, table)

	pipeline, err := domain.NewPipeline(strategies.New(strategies.Deps{
		Table:     table,
		Scheduler: sched,
		FS:        adapter.NewLocalProbeFSAdapter(0),
	})...)
	require.NoError(t, err)

	goIcon := table.MatchByName("main.go", false)
	require.NotNil(t, goIcon)

	return &serviceFixture{
		table:    table,
		cache:    cache,
		store:    store,
		registry: registry,
		service:  domain.NewService(table, cache, store, sched, registry, pipeline),
		goIcon:   goIcon,
	}
}

func TestService_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("restores the snapshot within the roots", func(t *testing.T) {
		f := newServiceFixture(t)
		defer f.service.Close()

		f.store.EXPECT().Load(mock.Anything).Return(m.Snapshot{
			Version: storage.Version,
			Paths: []m.SnapshotEntry{
				{Path: "/repo/main.go", Icon: f.goIcon.Ref(0)},
				{Path: "/elsewhere/main.go", Icon: f.goIcon.Ref(0)},
			},
		}, nil)

		require.NoError(t, f.service.Initialize(ctx, []m.Path{"/repo"}, map[string]bool{
			strategies.NamePath: false,
		}))

		assert.Equal(t, 1, f.cache.Len())

		r, _ := f.registry.Create("/repo/main.go", domain.ResourceOptions{})
		assert.Same(t, f.goIcon, r.Icon().CurrentIcon())
		assert.Equal(t, domain.CacheSource, f.service.Describe(r, m.ColourNone).Strategy)
	})

	t.Run("unreadable snapshot is ignored", func(t *testing.T) {
		f := newServiceFixture(t)
		defer f.service.Close()

		f.store.EXPECT().Load(mock.Anything).Return(m.Snapshot{}, errors.New("corrupt"))

		require.NoError(t, f.service.Initialize(ctx, []m.Path{"/repo"}, nil))
		assert.Zero(t, f.cache.Len())
	})

	t.Run("unknown strategy names fail", func(t *testing.T) {
		f := newServiceFixture(t)
		defer f.service.Close()

		f.store.EXPECT().Load(mock.Anything).Return(m.Snapshot{}, nil)

		err := f.service.Initialize(ctx, nil, map[string]bool{"colour": true})
		require.ErrorIs(t, err, domain.ErrUnknownStrategy)
	})

	t.Run("resources created before start are classified", func(t *testing.T) {
		f := newServiceFixture(t)
		defer f.service.Close()

		f.store.EXPECT().Load(mock.Anything).Return(m.Snapshot{}, nil)

		r, _ := f.registry.Create("/repo/Makefile", domain.ResourceOptions{Stats: &m.Stats{}})

		require.NoError(t, f.service.Initialize(ctx, []m.Path{"/repo"}, nil))

		icon := r.Icon().CurrentIcon()
		require.NotNil(t, icon)
		assert.Equal(t, "gnu-icon", icon.ClassName)

		c := f.service.Describe(r, m.ColourNone)
		assert.Equal(t, strategies.NamePath, c.Strategy)
		assert.Equal(t, []string{"gnu-icon"}, c.Classes)
	})
}

func TestService_Shutdown(t *testing.T) {
	ctx := context.Background()

	t.Run("saves what was shown while strategies stop", func(t *testing.T) {
		f := newServiceFixture(t)

		f.store.EXPECT().Load(mock.Anything).Return(m.Snapshot{}, nil)
		require.NoError(t, f.service.Initialize(ctx, []m.Path{"/repo"}, nil))

		r, _ := f.registry.Create("/repo/main.go", domain.ResourceOptions{Stats: &m.Stats{}})
		require.Same(t, f.goIcon, r.Icon().CurrentIcon())

		f.store.EXPECT().Save(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, snapshot m.Snapshot) error {
			assert.True(t, f.cache.Locked())
			require.Len(t, snapshot.Paths, 1)
			assert.Equal(t, m.Path("/repo/main.go"), snapshot.Paths[0].Path)
			assert.Equal(t, f.goIcon.ClassName, snapshot.Paths[0].Icon.ClassName)

			return nil
		})

		require.NoError(t, f.service.Shutdown(ctx))

		assert.False(t, f.cache.Locked())
		assert.Nil(t, r.Icon().CurrentIcon(), "strategies cleared their slots")
		assert.NotNil(t, f.cache.GetPathIcon("/repo/main.go"), "the cache kept the shown icon")
	})

	t.Run("save failure is reported", func(t *testing.T) {
		f := newServiceFixture(t)

		f.store.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full"))

		err := f.service.Shutdown(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save cache snapshot")
		assert.False(t, f.cache.Locked())
	})
}

func TestService_ClearCache(t *testing.T) {
	ctx := context.Background()

	t.Run("empties cache and store", func(t *testing.T) {
		f := newServiceFixture(t)
		defer f.service.Close()

		f.cache.SetPathIcon("/repo/main.go", f.goIcon.Ref(0))
		f.store.EXPECT().Clear(mock.Anything).Return(nil)

		require.NoError(t, f.service.ClearCache(ctx))
		assert.Zero(t, f.cache.Len())
	})

	t.Run("refused while locked", func(t *testing.T) {
		f := newServiceFixture(t)
		defer f.service.Close()

		f.cache.Lock()
		defer f.cache.Unlock()

		require.ErrorIs(t, f.service.ClearCache(ctx), storage.ErrLocked)
	})
}

func TestService_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.go")
	link := filepath.Join(dir, "entry")

	require.NoError(t, os.WriteFile(target, []byte("package main\n"), 0o600))
	require.NoError(t, os.Symlink(target, link))

	f := newServiceFixture(t)

	f.store.EXPECT().Load(mock.Anything).Return(m.Snapshot{}, nil)
	require.NoError(t, f.service.Initialize(context.Background(), []m.Path{m.Path(dir)}, nil))

	defer f.service.Close()

	r, _ := f.registry.Create(m.Path(link), domain.ResourceOptions{Symlink: true})

	assert.Eventually(t, func() bool {
		icon := r.Icon().CurrentIcon()
		return icon != nil && icon.ClassName == f.goIcon.ClassName
	}, 5*time.Second, 10*time.Millisecond)

	c := f.service.Describe(r, m.ColourNone)
	assert.Equal(t, domain.SymlinkSource, c.Strategy)
	assert.True(t, c.Symlink)
	assert.Equal(t, 2, f.registry.Len(), "the target is registered too")
}

func TestService_Refresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run")

	require.NoError(t, os.WriteFile(path, []byte("#!/usr/bin/env python3\nprint(1)\n"), 0o600))

	f := newServiceFixture(t)

	f.store.EXPECT().Load(mock.Anything).Return(m.Snapshot{}, nil)
	require.NoError(t, f.service.Initialize(context.Background(), []m.Path{m.Path(dir)}, nil))

	defer f.service.Close()

	r, _ := f.registry.Create(m.Path(path), domain.ResourceOptions{})

	assert.Eventually(t, func() bool {
		icon := r.Icon().CurrentIcon()
		return icon != nil && icon.ClassName == "python-icon"
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho 1\n"), 0o600))
	f.service.Refresh(r)

	assert.Eventually(t, func() bool {
		icon := r.Icon().CurrentIcon()
		return icon != nil && icon.ClassName == "terminal-icon"
	}, 5*time.Second, 10*time.Millisecond)
}
