// Package scheduler batches the filesystem probes requested by the
// classification strategies.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"fileicons.dev/pkg/fileicons/internal/adapter"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// DefaultDebounce is how long requests accumulate before they are flushed.
const DefaultDebounce = 10 * time.Millisecond

// DefaultParallel bounds the probes a single flush runs at once.
const DefaultParallel = 8

type requestKey struct {
	path m.Path
	kind m.ProbeKind
}

// batch is the merged work for one path.
type batch struct {
	path    m.Path
	mask    m.ProbeKind
	handles []*Handle
}

// Options tune a Scheduler.
type Options struct {
	Debounce time.Duration
	Parallel int
}

// Scheduler deduplicates probe requests and runs them in debounced batches.
// Requests for the same path made within one window share a single probe.
type Scheduler struct {
	fs       adapter.ProbeFSAdapter
	debounce time.Duration
	parallel int

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	pending    map[requestKey]*Handle
	order      []requestKey
	inflight   map[requestKey]*Handle
	delivering int
	timer      *time.Timer
	progress   chan struct{}
	closed     bool

	probes atomic.Int64
}

// New creates a Scheduler probing through fs.
func New(fs adapter.ProbeFSAdapter, opts Options) *Scheduler {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	if opts.Parallel <= 0 {
		opts.Parallel = DefaultParallel
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		fs:       fs,
		debounce: opts.Debounce,
		parallel: opts.Parallel,
		ctx:      ctx,
		cancel:   cancel,
		pending:  make(map[requestKey]*Handle),
		inflight: make(map[requestKey]*Handle),
		progress: make(chan struct{}),
	}
}

// Request asks for one kind of probe on path. An outstanding request for the
// same pair is returned instead of a new one.
func (s *Scheduler) Request(kind m.ProbeKind, path m.Path) *Handle {
	key := requestKey{path: path, kind: kind}

	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()

		h := newHandle(kind, path)
		h.settle(m.ProbeResult{}, ErrClosed)

		return h
	}

	if h, ok := s.pending[key]; ok {
		s.mu.Unlock()
		return h
	}

	if h, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		return h
	}

	h := newHandle(kind, path)
	s.pending[key] = h
	s.order = append(s.order, key)

	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, s.Flush)
	}

	s.mu.Unlock()

	return h
}

// Flush dispatches every pending request now instead of waiting for the
// debounce window to close.
func (s *Scheduler) Flush() {
	s.mu.Lock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}

	batches := s.takePendingLocked()
	s.mu.Unlock()

	slog.Debug("flushing probe requests", "paths", len(batches))

	go s.run(batches)
}

func (s *Scheduler) takePendingLocked() []*batch {
	byPath := make(map[m.Path]*batch)

	var batches []*batch

	for _, key := range s.order {
		h := s.pending[key]

		b, ok := byPath[key.path]
		if !ok {
			b = &batch{path: key.path}
			byPath[key.path] = b
			batches = append(batches, b)
		}

		b.mask |= key.kind
		b.handles = append(b.handles, h)
		s.inflight[key] = h
	}

	s.pending = make(map[requestKey]*Handle)
	s.order = nil

	return batches
}

func (s *Scheduler) run(batches []*batch) {
	g := new(errgroup.Group)
	g.SetLimit(s.parallel)

	for _, b := range batches {
		g.Go(func() error {
			result, err := s.probe(b)
			s.deliver(b, result, err)

			return nil
		})
	}

	_ = g.Wait()
}

// probe runs one merged operation. A panicking adapter is turned into an error.
func (s *Scheduler) probe(b *batch) (result m.ProbeResult, err error) {
	s.probes.Add(1)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("probe panicked", "path", b.path, "kinds", b.mask, "panic", r)
			err = fmt.Errorf("probe panicked: %v", r)
		}
	}()

	return s.fs.Probe(s.ctx, b.path, b.mask)
}

func (s *Scheduler) deliver(b *batch, result m.ProbeResult, err error) {
	s.mu.Lock()
	for _, h := range b.handles {
		delete(s.inflight, requestKey{path: b.path, kind: h.Kind})
	}

	s.delivering++
	s.mu.Unlock()

	for _, h := range b.handles {
		switch {
		case err != nil:
			h.settle(m.ProbeResult{}, &ProbeError{Path: b.path, Kind: h.Kind, Err: err})
		case result.Err(h.Kind) != nil:
			slog.Debug("probe failed", "path", b.path, "kind", h.Kind, "error", result.Err(h.Kind))
			h.settle(m.ProbeResult{}, &ProbeError{Path: b.path, Kind: h.Kind, Err: result.Err(h.Kind)})
		default:
			h.settle(result, nil)
		}
	}

	s.mu.Lock()
	s.delivering--
	s.notifyLocked()
	s.mu.Unlock()
}

// notifyLocked wakes every WaitIdle caller so it can re-examine the state.
func (s *Scheduler) notifyLocked() {
	close(s.progress)
	s.progress = make(chan struct{})
}

func (s *Scheduler) busyLocked() bool {
	return len(s.pending) > 0 || len(s.inflight) > 0 || s.delivering > 0
}

// WaitIdle flushes outstanding requests and blocks until every result,
// including those of requests made by result callbacks, has been delivered.
func (s *Scheduler) WaitIdle(ctx context.Context) error {
	for {
		s.mu.Lock()
		busy := s.busyLocked()
		progress := s.progress
		s.mu.Unlock()

		if !busy {
			return nil
		}

		s.Flush()

		select {
		case <-progress:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Probes returns how many merged probes have been run.
func (s *Scheduler) Probes() int64 {
	return s.probes.Load()
}

// Close cancels in-flight probes and settles pending requests with ErrClosed.
func (s *Scheduler) Close() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	s.closed = true

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	pending := make([]*Handle, 0, len(s.order))
	for _, key := range s.order {
		pending = append(pending, s.pending[key])
	}

	s.pending = make(map[requestKey]*Handle)
	s.order = nil
	s.notifyLocked()
	s.mu.Unlock()

	s.cancel()

	for _, h := range pending {
		h.settle(m.ProbeResult{}, ErrClosed)
	}
}
