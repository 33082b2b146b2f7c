package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fileicons.dev/pkg/fileicons/internal/domain"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

func TestRegistry(t *testing.T) {
	t.Run("create is idempotent per path", func(t *testing.T) {
		reg := domain.NewRegistry(nil, nil)
		created := 0

		reg.OnDidCreate(func(*domain.Resource) { created++ })

		a, isNew := reg.Create("/repo/a", domain.ResourceOptions{})
		require.True(t, isNew)

		again, isNew := reg.Create("/repo/a", domain.ResourceOptions{})
		assert.False(t, isNew)
		assert.Same(t, a, again)
		assert.Equal(t, 1, created)
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("resources are ordered by path", func(t *testing.T) {
		reg := domain.NewRegistry(nil, nil)

		for _, p := range []m.Path{"/repo/c", "/repo/a", "/repo/b"} {
			reg.Create(p, domain.ResourceOptions{})
		}

		var paths []m.Path
		for _, r := range reg.Resources() {
			paths = append(paths, r.Path())
		}

		assert.Equal(t, []m.Path{"/repo/a", "/repo/b", "/repo/c"}, paths)
	})

	t.Run("move re-keys the resource and the cache entry", func(t *testing.T) {
		cache := storage.New(10)
		reg := domain.NewRegistry(cache, nil)

		r, _ := reg.Create("/repo/a", domain.ResourceOptions{})
		r.Icon().Add(iconNamed("x"), 1)
		reg.Create("/repo/taken", domain.ResourceOptions{})

		assert.False(t, reg.Move("/repo/a", "/repo/taken"))
		assert.False(t, reg.Move("/repo/missing", "/repo/b"))
		require.True(t, reg.Move("/repo/a", "/repo/b"))

		got, ok := reg.Get("/repo/b")
		require.True(t, ok)
		assert.Same(t, r, got)
		assert.Equal(t, m.Path("/repo/b"), r.Path())

		_, ok = reg.Get("/repo/a")
		assert.False(t, ok)
		assert.Nil(t, cache.GetPathIcon("/repo/a"))
		assert.NotNil(t, cache.GetPathIcon("/repo/b"))
	})

	t.Run("destroy", func(t *testing.T) {
		reg := domain.NewRegistry(nil, nil)

		var destroyed []m.Path

		reg.OnDidDestroy(func(r *domain.Resource) { destroyed = append(destroyed, r.Path()) })

		a, _ := reg.Create("/repo/a", domain.ResourceOptions{})
		reg.Create("/repo/b", domain.ResourceOptions{})

		assert.True(t, reg.Destroy("/repo/a"))
		assert.False(t, reg.Destroy("/repo/a"))
		assert.True(t, a.Destroyed())

		reg.DestroyAll()

		assert.Equal(t, []m.Path{"/repo/a", "/repo/b"}, destroyed)
		assert.Zero(t, reg.Len())
	})
}
