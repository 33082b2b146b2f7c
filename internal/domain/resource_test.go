package domain_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"fileicons.dev/pkg/fileicons/internal/domain"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

func TestResource_Sample(t *testing.T) {
	t.Run("first line without terminator", func(t *testing.T) {
		r := newFile("/repo/script")
		r.SetSample([]byte("#!/bin/sh\r\necho hi\n"))

		_, state := r.Sample()
		assert.Equal(t, domain.SampleLoaded, state)
		assert.Equal(t, "#!/bin/sh", r.FirstLine())
	})

	t.Run("NUL byte marks the resource unreadable", func(t *testing.T) {
		r := newFile("/repo/blob")
		r.SetSample([]byte("PK\x03\x04\x00\x00"))

		sample, state := r.Sample()
		assert.Equal(t, domain.SampleUnreadable, state)
		assert.Nil(t, sample)
		assert.Empty(t, r.FirstLine())
	})

	t.Run("only the first request wins", func(t *testing.T) {
		r := newFile("/repo/x")

		assert.True(t, r.MarkSampleRequested())
		assert.False(t, r.MarkSampleRequested())

		r.ResetSample()
		assert.True(t, r.MarkSampleRequested())
	})

	t.Run("identical sample is not announced twice", func(t *testing.T) {
		r := newFile("/repo/x")
		calls := 0

		r.OnDidChangeSample(func(*domain.Resource) { calls++ })
		r.SetSample([]byte("a\n"))
		r.SetSample([]byte("a\n"))
		r.SetSample([]byte("b\n"))

		assert.Equal(t, 2, calls)
	})
}

func TestResource_Events(t *testing.T) {
	r := newFile("/repo/a.txt")

	var (
		moves    []domain.MoveEvent
		grammars []string
		editing  []bool
		statuses []m.VCSStatus
		loaded   int
	)

	r.OnDidMove(func(e domain.MoveEvent) { moves = append(moves, e) })
	r.OnDidChangeGrammar(func(r *domain.Resource) { grammars = append(grammars, r.Grammar()) })
	r.OnDidChangeEditing(func(r *domain.Resource) { editing = append(editing, r.Editing()) })
	r.OnDidChangeVCSStatus(func(r *domain.Resource) { statuses = append(statuses, r.VCSStatus()) })
	r.OnDidLoadStats(func(*domain.Resource) { loaded++ })

	r.Move("/repo/b.txt")
	r.Move("/repo/b.txt")
	r.SetGrammar("source.go")
	r.SetGrammar("source.go")
	r.SetEditing(true)
	r.SetVCSStatus(m.VCSStatus(1))
	r.SetStats(&m.Stats{Size: 10})

	assert.Equal(t, []domain.MoveEvent{{From: "/repo/a.txt", To: "/repo/b.txt"}}, moves)
	assert.Equal(t, "b.txt", r.Name())
	assert.Equal(t, []string{"source.go"}, grammars)
	assert.Equal(t, []bool{true}, editing)
	assert.Len(t, statuses, 1)
	assert.Equal(t, 1, loaded)
	assert.Equal(t, int64(10), r.Stats().Size)
}

func TestResource_Destroy(t *testing.T) {
	r := newFile("/repo/a.txt")
	destroyed := 0

	r.OnDidDestroy(func(*domain.Resource) { destroyed++ })
	r.OnDidChangeSample(func(*domain.Resource) { t.Fatal("event after destroy") })

	r.Destroy()
	r.Destroy()
	r.SetSample([]byte("late"))

	assert.Equal(t, 1, destroyed)
	assert.True(t, r.Destroyed())
	assert.False(t, r.MarkSampleRequested())
}

func TestResource_KindFromStats(t *testing.T) {
	dir := domain.NewResource("/repo/dir", domain.ResourceOptions{Stats: &m.Stats{Mode: fs.ModeDir}}, nil, nil)
	link := domain.NewResource("/repo/link", domain.ResourceOptions{Stats: &m.Stats{Mode: fs.ModeSymlink}}, nil, nil)
	virtual := domain.NewResource("/repo/a.zip/x", domain.ResourceOptions{Virtual: true}, nil, nil)

	assert.True(t, dir.IsDirectory())
	assert.False(t, dir.IsSymlink())
	assert.True(t, link.IsSymlink())
	assert.True(t, virtual.IsVirtual())
	assert.False(t, virtual.IsDirectory())
}
