// Package adapter contains the filesystem, persistence and watch adapters the
// classification engine runs on.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// DefaultSampleSize is the number of leading bytes read by a sample probe.
const DefaultSampleSize = 256

// ErrSkipDir may be returned by a WalkFunc to skip the directory it was called for.
var ErrSkipDir = filepath.SkipDir

// WalkFunc receives every path visited by Walk together with its stats.
type WalkFunc func(path m.Path, stats *m.Stats, err error) error

// ProbeFSAdapter abstracts the filesystem reads performed on behalf of the
// classification engine, so the scheduler and strategies can be tested without
// touching the disk.
type ProbeFSAdapter interface {
	// Walk traverses root depth-first without following symlinks.
	Walk(ctx context.Context, root m.Path, fn WalkFunc) error

	// Probe performs every read in kinds against path in a single operation.
	// Failures of individual kinds are reported in ProbeResult.Errors; the
	// returned error is only set when the probe as a whole could not run.
	Probe(ctx context.Context, path m.Path, kinds m.ProbeKind) (m.ProbeResult, error)

	// Stat returns metadata for path without following a final symlink.
	Stat(ctx context.Context, path m.Path) (*m.Stats, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)
}

// LocalProbeFSAdapter is the os-backed ProbeFSAdapter.
type LocalProbeFSAdapter struct {
	sampleSize int
}

// NewLocalProbeFSAdapter constructs a LocalProbeFSAdapter reading samples of
// sampleSize bytes.
func NewLocalProbeFSAdapter(sampleSize int) *LocalProbeFSAdapter {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	return &LocalProbeFSAdapter{sampleSize: sampleSize}
}

// Walk iterates over root and everything beneath it.
func (a *LocalProbeFSAdapter) Walk(ctx context.Context, root m.Path, fn WalkFunc) error {
	return filepath.WalkDir(string(root), func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return fn(m.Path(path), nil, err)
		}

		info, err := d.Info()
		if err != nil {
			return fn(m.Path(path), nil, err)
		}

		return fn(m.Path(path), statsFromInfo(info), nil)
	})
}

// Probe reads the sample, stats and canonical path of path as requested.
func (a *LocalProbeFSAdapter) Probe(ctx context.Context, path m.Path, kinds m.ProbeKind) (m.ProbeResult, error) {
	if err := ctx.Err(); err != nil {
		return m.ProbeResult{}, err
	}

	result := m.ProbeResult{}
	fail := func(kind m.ProbeKind, err error) {
		if result.Errors == nil {
			result.Errors = make(map[m.ProbeKind]error)
		}

		result.Errors[kind] = err
	}

	if kinds.Has(m.ProbeStat) {
		stats, err := a.Stat(ctx, path)
		if err != nil {
			fail(m.ProbeStat, err)
		} else {
			result.Stats = stats
		}
	}

	if kinds.Has(m.ProbeSample) {
		sample, err := a.sample(path)
		if err != nil {
			fail(m.ProbeSample, err)
		} else {
			result.Sample = sample
		}
	}

	if kinds.Has(m.ProbeRealpath) {
		resolved, err := filepath.EvalSymlinks(string(path))
		if err != nil {
			fail(m.ProbeRealpath, err)
		} else {
			result.Realpath = m.Path(resolved)
		}
	}

	return result, nil
}

func (a *LocalProbeFSAdapter) sample(path m.Path) ([]byte, error) {
	// #nosec G304 - probing user files is the purpose of this adapter
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, a.sampleSize)

	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read sample: %w", err)
	}

	return buf[:n], nil
}

// Stat returns Lstat metadata for path.
func (a *LocalProbeFSAdapter) Stat(ctx context.Context, path m.Path) (*m.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Lstat(string(path))
	if err != nil {
		return nil, err
	}

	return statsFromInfo(info), nil
}

// ReadFile loads file contents from disk.
func (a *LocalProbeFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

func statsFromInfo(info os.FileInfo) *m.Stats {
	return &m.Stats{
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		Inode:   inode(info),
	}
}
