package pkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string
	Count int
	Tags  []string
}

func writeSpill[T any](t *testing.T, path string, items ...T) {
	t.Helper()

	spill, err := CreateFileSpill[T](path)
	require.NoError(t, err)

	for _, item := range items {
		require.NoError(t, spill.Append(item))
	}

	require.Equal(t, uint64(len(items)), spill.Len())
	require.NoError(t, spill.Close())
}

func TestCreateFileSpill(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "cache.gob")

		spill, err := CreateFileSpill[string](path)
		require.NoError(t, err)
		assert.Equal(t, path, spill.Path())
		require.NoError(t, spill.Close())

		_, err = os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("truncates an existing spill", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.gob")

		writeSpill(t, path, 1, 2, 3)
		writeSpill(t, path, 9)

		opened, err := OpenFileSpill[int](path)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), opened.Len())

		v, err := opened.Get(0)
		require.NoError(t, err)
		assert.Equal(t, 9, v)
	})

	t.Run("parent is a file", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))

		_, err := CreateFileSpill[int](filepath.Join(blocker, "cache.gob"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create spill directory")
	})
}

func TestOpenFileSpill(t *testing.T) {
	t.Run("counts items", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.gob")
		writeSpill(t, path, "a", "b", "c")

		opened, err := OpenFileSpill[string](path)
		require.NoError(t, err)
		defer opened.Close()

		assert.Equal(t, uint64(3), opened.Len())
		assert.Equal(t, path, opened.Path())
	})

	t.Run("empty spill", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.gob")
		writeSpill[string](t, path)

		opened, err := OpenFileSpill[string](path)
		require.NoError(t, err)
		assert.Zero(t, opened.Len())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := OpenFileSpill[int](filepath.Join(t.TempDir(), "missing.gob"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("corrupt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.gob")
		require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o600))

		_, err := OpenFileSpill[int](path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode item at index 0")
	})

	t.Run("read only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache.gob")
		writeSpill(t, path, 1)

		opened, err := OpenFileSpill[int](path)
		require.NoError(t, err)

		require.ErrorIs(t, opened.Append(2), ErrReadOnly)
		assert.Equal(t, uint64(1), opened.Len())
	})
}

func TestFileSpill_Get(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.gob")
	writeSpill(t, path,
		record{Name: "first", Count: 1, Tags: []string{"x"}},
		record{Name: "second"},
		record{Name: "third", Count: 3},
	)

	opened, err := OpenFileSpill[record](path)
	require.NoError(t, err)

	got, err := opened.Get(0)
	require.NoError(t, err)
	assert.Equal(t, record{Name: "first", Count: 1, Tags: []string{"x"}}, got)

	got, err = opened.Get(1)
	require.NoError(t, err)
	assert.Equal(t, record{Name: "second"}, got, "fields missing from the stream stay zero")

	_, err = opened.Get(3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")
}

func TestFileSpill_Range(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.gob")
	writeSpill(t, path,
		record{Name: "a", Count: 1, Tags: []string{"t"}},
		record{Name: "b"},
		record{Name: "c", Count: 3},
	)

	opened, err := OpenFileSpill[record](path)
	require.NoError(t, err)

	t.Run("in order", func(t *testing.T) {
		var indexes []uint64

		var items []record

		require.NoError(t, opened.Range(func(index uint64, item record) error {
			indexes = append(indexes, index)
			items = append(items, item)

			return nil
		}))

		assert.Equal(t, []uint64{0, 1, 2}, indexes)
		assert.Equal(t, []record{
			{Name: "a", Count: 1, Tags: []string{"t"}},
			{Name: "b"},
			{Name: "c", Count: 3},
		}, items)
	})

	t.Run("callback error stops", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0

		err := opened.Range(func(uint64, record) error {
			calls++
			return stop
		})

		require.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})

	t.Run("file removed", func(t *testing.T) {
		require.NoError(t, os.Remove(path))

		err := opened.Range(func(uint64, record) error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open file")
	})
}
