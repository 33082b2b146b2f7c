package scheduler

import (
	"context"
	"sync"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// Handle is the pending result of one (kind, path) request. Every caller that
// asks for the same pair while it is outstanding receives the same Handle.
type Handle struct {
	Path m.Path
	Kind m.ProbeKind

	done chan struct{}

	mu        sync.Mutex
	settled   bool
	result    m.ProbeResult
	err       error
	callbacks []func(m.ProbeResult, error)
}

func newHandle(kind m.ProbeKind, path m.Path) *Handle {
	return &Handle{
		Path: path,
		Kind: kind,
		done: make(chan struct{}),
	}
}

// Done is closed once the handle has a result.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the handle settles or ctx ends.
func (h *Handle) Wait(ctx context.Context) (m.ProbeResult, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()

		return h.result, h.err
	case <-ctx.Done():
		return m.ProbeResult{}, ctx.Err()
	}
}

// Then registers fn to run with the result. fn runs immediately, on the
// calling goroutine, when the handle has already settled.
func (h *Handle) Then(fn func(m.ProbeResult, error)) {
	h.mu.Lock()
	if !h.settled {
		h.callbacks = append(h.callbacks, fn)
		h.mu.Unlock()

		return
	}

	result, err := h.result, h.err
	h.mu.Unlock()

	fn(result, err)
}

func (h *Handle) settle(result m.ProbeResult, err error) {
	h.mu.Lock()
	if h.settled {
		h.mu.Unlock()
		return
	}

	h.settled = true
	h.result = result
	h.err = err
	callbacks := h.callbacks
	h.callbacks = nil
	close(h.done)
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn(result, err)
	}
}
