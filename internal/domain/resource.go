package domain

import (
	"bytes"
	"sync"

	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// SampleState tracks the content sample of a resource.
type SampleState int

// Sample states.
const (
	SampleNone SampleState = iota
	SampleRequested
	SampleLoaded
	SampleUnreadable
)

// ResourceOptions describe a resource at creation.
type ResourceOptions struct {
	Directory bool
	Symlink   bool
	Virtual   bool
	Stats     *m.Stats
}

// MoveEvent is emitted when a resource changes path.
type MoveEvent struct {
	From m.Path
	To   m.Path
}

// Resource is a classifiable entry: a file, a directory, a symlink or a
// virtual entry such as a member of an archive. It owns one IconDelegate.
type Resource struct {
	mu sync.RWMutex

	path        m.Path
	directory   bool
	symlink     bool
	virtual     bool
	stats       *m.Stats
	sample      []byte
	sampleState SampleState
	grammar     string
	editing     bool
	vcs         m.VCSStatus
	destroyed   bool

	icon *IconDelegate

	onDidMove            Emitter[MoveEvent]
	onDidChangeSample    Emitter[*Resource]
	onDidChangeGrammar   Emitter[*Resource]
	onDidChangeEditing   Emitter[*Resource]
	onDidLoadStats       Emitter[*Resource]
	onDidChangeVCSStatus Emitter[*Resource]
	onDidDestroy         Emitter[*Resource]
}

// NewResource creates a resource and its delegate. The delegate reads its
// initial state from cache and validates it against table; both may be nil.
func NewResource(path m.Path, opts ResourceOptions, cache *storage.Storage, table *rules.Table) *Resource {
	r := &Resource{
		path:      path,
		directory: opts.Directory || opts.Stats.IsDir(),
		symlink:   opts.Symlink || opts.Stats.IsSymlink(),
		virtual:   opts.Virtual,
		stats:     opts.Stats,
	}

	r.icon = newIconDelegate(r, cache, table)

	return r
}

// Path returns the current path.
func (r *Resource) Path() m.Path {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.path
}

// Name returns the basename of the current path.
func (r *Resource) Name() string {
	return r.Path().Base()
}

// IsDirectory reports whether the resource is a directory.
func (r *Resource) IsDirectory() bool {
	return r.directory
}

// IsSymlink reports whether the resource is a symbolic link.
func (r *Resource) IsSymlink() bool {
	return r.symlink
}

// IsVirtual reports whether the resource has no backing file of its own.
func (r *Resource) IsVirtual() bool {
	return r.virtual
}

// Stats returns the metadata loaded so far, or nil.
func (r *Resource) Stats() *m.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.stats
}

// Sample returns the content sample and its state.
func (r *Resource) Sample() ([]byte, SampleState) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sample, r.sampleState
}

// FirstLine returns the first line of the sample without its terminator.
func (r *Resource) FirstLine() string {
	sample, _ := r.Sample()

	return firstLine(sample)
}

func firstLine(sample []byte) string {
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		sample = sample[:i]
	}

	return string(bytes.TrimSuffix(sample, []byte("\r")))
}

// Grammar returns the grammar scope explicitly assigned by an editor.
func (r *Resource) Grammar() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.grammar
}

// Editing reports whether the resource is open in an editor.
func (r *Resource) Editing() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.editing
}

// VCSStatus returns the version-control state reported for the resource.
func (r *Resource) VCSStatus() m.VCSStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.vcs
}

// Destroyed reports whether Destroy has been called.
func (r *Resource) Destroyed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.destroyed
}

// Icon returns the resource's delegate.
func (r *Resource) Icon() *IconDelegate {
	return r.icon
}

// Move changes the path of the resource.
func (r *Resource) Move(to m.Path) {
	r.mu.Lock()
	if r.destroyed || r.path == to {
		r.mu.Unlock()
		return
	}

	from := r.path
	r.path = to
	r.mu.Unlock()

	r.icon.moved(from, to)
	r.onDidMove.Emit(MoveEvent{From: from, To: to})
}

// MarkSampleRequested moves the sample from SampleNone to SampleRequested and
// reports whether it did. Only the caller that wins should issue the probe.
func (r *Resource) MarkSampleRequested() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || r.sampleState != SampleNone {
		return false
	}

	r.sampleState = SampleRequested

	return true
}

// SetSample stores a content sample. A sample holding a NUL byte is
// recorded as unreadable and dropped.
func (r *Resource) SetSample(sample []byte) {
	state := SampleLoaded
	if bytes.IndexByte(sample, 0) >= 0 {
		state = SampleUnreadable
		sample = nil
	}

	r.setSample(sample, state)
}

// MarkUnreadable records that no sample can be read.
func (r *Resource) MarkUnreadable() {
	r.setSample(nil, SampleUnreadable)
}

// ResetSample forgets the sample, for instance after the content changed on disk.
func (r *Resource) ResetSample() {
	r.setSample(nil, SampleNone)
}

func (r *Resource) setSample(sample []byte, state SampleState) {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}

	unchanged := r.sampleState == state && bytes.Equal(r.sample, sample)
	r.sample = sample
	r.sampleState = state
	r.mu.Unlock()

	if !unchanged {
		r.onDidChangeSample.Emit(r)
	}
}

// SetStats stores freshly loaded metadata.
func (r *Resource) SetStats(stats *m.Stats) {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}

	r.stats = stats
	r.mu.Unlock()

	r.icon.statsLoaded(stats)
	r.onDidLoadStats.Emit(r)
}

// SetGrammar assigns an explicit grammar scope; an empty scope clears it.
func (r *Resource) SetGrammar(scope string) {
	r.mu.Lock()
	if r.destroyed || r.grammar == scope {
		r.mu.Unlock()
		return
	}

	r.grammar = scope
	r.mu.Unlock()

	r.onDidChangeGrammar.Emit(r)
}

// SetEditing records whether the resource is open in an editor.
func (r *Resource) SetEditing(editing bool) {
	r.mu.Lock()
	if r.destroyed || r.editing == editing {
		r.mu.Unlock()
		return
	}

	r.editing = editing
	r.mu.Unlock()

	r.onDidChangeEditing.Emit(r)
}

// SetVCSStatus records the version-control state.
func (r *Resource) SetVCSStatus(status m.VCSStatus) {
	r.mu.Lock()
	if r.destroyed || r.vcs == status {
		r.mu.Unlock()
		return
	}

	r.vcs = status
	r.mu.Unlock()

	r.onDidChangeVCSStatus.Emit(r)
}

// Destroy retires the resource. Subscribers are notified once and then
// dropped; later probe results for the resource are discarded.
func (r *Resource) Destroy() {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}

	r.destroyed = true
	r.mu.Unlock()

	r.onDidDestroy.Emit(r)
	r.icon.Destroy()

	r.onDidMove.Clear()
	r.onDidChangeSample.Clear()
	r.onDidChangeGrammar.Clear()
	r.onDidChangeEditing.Clear()
	r.onDidLoadStats.Clear()
	r.onDidChangeVCSStatus.Clear()
	r.onDidDestroy.Clear()
}

// OnDidMove registers fn for path changes.
func (r *Resource) OnDidMove(fn func(MoveEvent)) Subscription {
	return r.onDidMove.On(fn)
}

// OnDidChangeSample registers fn for content sample changes.
func (r *Resource) OnDidChangeSample(fn func(*Resource)) Subscription {
	return r.onDidChangeSample.On(fn)
}

// OnDidChangeGrammar registers fn for grammar override changes.
func (r *Resource) OnDidChangeGrammar(fn func(*Resource)) Subscription {
	return r.onDidChangeGrammar.On(fn)
}

// OnDidChangeEditing registers fn for editor open and close.
func (r *Resource) OnDidChangeEditing(fn func(*Resource)) Subscription {
	return r.onDidChangeEditing.On(fn)
}

// OnDidLoadStats registers fn for metadata loads.
func (r *Resource) OnDidLoadStats(fn func(*Resource)) Subscription {
	return r.onDidLoadStats.On(fn)
}

// OnDidChangeVCSStatus registers fn for version-control state changes.
func (r *Resource) OnDidChangeVCSStatus(fn func(*Resource)) Subscription {
	return r.onDidChangeVCSStatus.On(fn)
}

// OnDidDestroy registers fn for destruction.
func (r *Resource) OnDidDestroy(fn func(*Resource)) Subscription {
	return r.onDidDestroy.On(fn)
}
