package domain

import (
	"slices"
	"strings"
	"sync"

	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// Registry tracks the live resources by path and announces their creation
// and destruction. It stands in for the host's own resource bookkeeping.
type Registry struct {
	cache *storage.Storage
	table *rules.Table

	mu        sync.Mutex
	resources map[m.Path]*Resource

	onDidCreate  Emitter[*Resource]
	onDidDestroy Emitter[*Resource]
}

// NewRegistry creates a Registry whose resources read from cache and table.
func NewRegistry(cache *storage.Storage, table *rules.Table) *Registry {
	return &Registry{
		cache:     cache,
		table:     table,
		resources: make(map[m.Path]*Resource),
	}
}

// Create returns the resource for path, creating it when needed. The bool
// reports whether a new resource was created.
func (reg *Registry) Create(path m.Path, opts ResourceOptions) (*Resource, bool) {
	reg.mu.Lock()
	if r, ok := reg.resources[path]; ok {
		reg.mu.Unlock()
		return r, false
	}

	r := NewResource(path, opts, reg.cache, reg.table)
	reg.resources[path] = r
	reg.mu.Unlock()

	reg.onDidCreate.Emit(r)

	return r, true
}

// Get returns the resource registered at path.
func (reg *Registry) Get(path m.Path) (*Resource, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	r, ok := reg.resources[path]

	return r, ok
}

// Resources returns every live resource ordered by path.
func (reg *Registry) Resources() []*Resource {
	reg.mu.Lock()
	out := make([]*Resource, 0, len(reg.resources))

	for _, r := range reg.resources {
		out = append(out, r)
	}
	reg.mu.Unlock()

	slices.SortFunc(out, func(a, b *Resource) int {
		return strings.Compare(string(a.Path()), string(b.Path()))
	})

	return out
}

// Len returns the number of live resources.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.resources)
}

// Move re-registers the resource at from under to.
func (reg *Registry) Move(from, to m.Path) bool {
	reg.mu.Lock()

	r, ok := reg.resources[from]
	if !ok {
		reg.mu.Unlock()
		return false
	}

	if _, taken := reg.resources[to]; taken {
		reg.mu.Unlock()
		return false
	}

	delete(reg.resources, from)
	reg.resources[to] = r
	reg.mu.Unlock()

	r.Move(to)

	return true
}

// Destroy retires the resource at path.
func (reg *Registry) Destroy(path m.Path) bool {
	reg.mu.Lock()

	r, ok := reg.resources[path]
	if ok {
		delete(reg.resources, path)
	}
	reg.mu.Unlock()

	if !ok {
		return false
	}

	reg.onDidDestroy.Emit(r)
	r.Destroy()

	return true
}

// DestroyAll retires every resource.
func (reg *Registry) DestroyAll() {
	for _, r := range reg.Resources() {
		reg.Destroy(r.Path())
	}
}

// OnDidCreate registers fn for new resources.
func (reg *Registry) OnDidCreate(fn func(*Resource)) Subscription {
	return reg.onDidCreate.On(fn)
}

// OnDidDestroy registers fn for retired resources.
func (reg *Registry) OnDidDestroy(fn func(*Resource)) Subscription {
	return reg.onDidDestroy.On(fn)
}
