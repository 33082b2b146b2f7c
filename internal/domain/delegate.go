package domain

import (
	"errors"
	"log/slog"
	"sync"

	"fileicons.dev/pkg/fileicons/internal/domain/rules"
	"fileicons.dev/pkg/fileicons/internal/domain/storage"
	m "fileicons.dev/pkg/fileicons/internal/model"
)

// ErrDelegateCycle is returned by SetMaster when the assignment would make a
// delegate defer to itself.
var ErrDelegateCycle = errors.New("delegate master cycle")

// IconDelegate resolves which strategy result a resource shows. Each strategy
// writes into the slot numbered by its priority and the highest populated
// slot wins, so the outcome does not depend on the order results arrive in.
//
// Icons are compared by identity: a slot is only cleared by Remove when it
// still holds the very *model.Icon being removed.
//
// A delegate with a master ignores its own slots and reports the master's
// effective icon, recursively. This is how a symlink follows its target.
type IconDelegate struct {
	resource *Resource
	cache    *storage.Storage

	mu              sync.Mutex
	slots           []*m.Icon
	current         *m.Icon
	currentPriority int
	master          *IconDelegate
	masterSub       Subscription
	cached          *m.Icon
	fromCache       bool
	destroyed       bool

	onDidChangeIcon Emitter[*m.Icon]
	onDidDestroy    Emitter[struct{}]
}

func newIconDelegate(r *Resource, cache *storage.Storage, table *rules.Table) *IconDelegate {
	d := &IconDelegate{
		resource:        r,
		cache:           cache,
		currentPriority: -1,
	}

	if cache == nil {
		return d
	}

	path := r.Path()

	if stats := r.Stats(); stats != nil {
		cache.SetInode(path, stats.Inode)
	}

	ref := cache.GetPathIcon(path)
	if ref == nil {
		return d
	}

	var icon *m.Icon
	if table != nil && ref.Directory == r.IsDirectory() {
		icon = table.ByIndex(ref.Index, ref.Directory)
	}

	if icon == nil || icon.ClassName != ref.ClassName {
		slog.Debug("discarding stale cached icon", "path", path, "index", ref.Index, "class", ref.ClassName)
		cache.DeletePathIcon(path)

		return d
	}

	d.slots = []*m.Icon{icon}
	d.current = icon
	d.currentPriority = 0
	d.cached = icon
	d.fromCache = true

	return d
}

// Add stores icon in the slot for priority. It becomes the effective icon
// unless a higher slot is populated.
func (d *IconDelegate) Add(icon *m.Icon, priority int) {
	if icon == nil || priority < 0 {
		return
	}

	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return
	}

	for len(d.slots) <= priority {
		d.slots = append(d.slots, nil)
	}

	d.slots[priority] = icon

	if priority == 0 {
		d.fromCache = false
	}

	if priority < d.currentPriority || (icon == d.current && priority == d.currentPriority) {
		d.mu.Unlock()
		return
	}

	previous := d.current
	d.current = icon
	d.currentPriority = priority
	own := d.master == nil
	d.mu.Unlock()

	if own {
		d.effectiveChanged(previous, icon, priority)
	}
}

// Remove clears the slot for priority if it still holds icon.
func (d *IconDelegate) Remove(icon *m.Icon, priority int) {
	if icon == nil {
		return
	}

	d.mu.Lock()
	if d.destroyed || priority < 0 || priority >= len(d.slots) || d.slots[priority] != icon {
		d.mu.Unlock()
		return
	}

	d.slots[priority] = nil

	if priority != d.currentPriority {
		d.mu.Unlock()
		return
	}

	previous := d.current
	d.current, d.currentPriority = d.resolveLocked()
	current, currentPriority := d.current, d.currentPriority
	own := d.master == nil
	d.mu.Unlock()

	if own {
		d.effectiveChanged(previous, current, currentPriority)
	}
}

func (d *IconDelegate) resolveLocked() (*m.Icon, int) {
	for i := len(d.slots) - 1; i >= 0; i-- {
		if d.slots[i] != nil {
			return d.slots[i], i
		}
	}

	return nil, -1
}

// CurrentIcon returns the effective icon, or nil when no slot is populated.
func (d *IconDelegate) CurrentIcon() *m.Icon {
	icon, _ := d.effective()
	return icon
}

// CurrentPriority returns the slot the effective icon came from, or -1.
func (d *IconDelegate) CurrentPriority() int {
	_, priority := d.effective()
	return priority
}

func (d *IconDelegate) effective() (*m.Icon, int) {
	d.mu.Lock()

	if master := d.master; master != nil {
		d.mu.Unlock()
		return master.effective()
	}

	if d.current == nil {
		d.current, d.currentPriority = d.resolveLocked()
	}

	icon, priority := d.current, d.currentPriority
	d.mu.Unlock()

	return icon, priority
}

// FromCache reports whether the effective icon is still the one restored
// from the cache, with no strategy having written the lowest slot since.
func (d *IconDelegate) FromCache() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.fromCache && d.master == nil && d.currentPriority == 0 && len(d.slots) > 0 && d.slots[0] != nil
}

// Slot returns the icon a strategy wrote at priority.
func (d *IconDelegate) Slot(priority int) *m.Icon {
	d.mu.Lock()
	defer d.mu.Unlock()

	if priority < 0 || priority >= len(d.slots) {
		return nil
	}

	return d.slots[priority]
}

// Classes returns the class tokens of the effective icon. Files without an
// icon fall back to the default class; directories get nothing.
func (d *IconDelegate) Classes(mode m.ColourMode) []string {
	icon := d.CurrentIcon()
	if icon == nil {
		if d.resource.IsDirectory() {
			return nil
		}

		return []string{m.DefaultIconClass}
	}

	return icon.Classes(mode)
}

// Master returns the delegate this one defers to, if any.
func (d *IconDelegate) Master() *IconDelegate {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.master
}

// SetMaster makes d report master's effective icon from now on and follow
// its changes. A master can be replaced but not removed; nil is ignored.
func (d *IconDelegate) SetMaster(master *IconDelegate) error {
	if master == nil {
		return nil
	}

	for x := master; x != nil; x = x.Master() {
		if x == d {
			return ErrDelegateCycle
		}
	}

	previous := d.CurrentIcon()

	sub := Subscriptions{
		master.OnDidChangeIcon(func(icon *m.Icon) {
			if d.Master() != master {
				return
			}

			d.persist(icon, master.CurrentPriority())
			d.onDidChangeIcon.Emit(icon)
		}),
		master.OnDidDestroy(func() {
			d.mu.Lock()
			if d.master != master {
				d.mu.Unlock()
				return
			}

			sub := d.masterSub
			d.masterSub = nil
			d.mu.Unlock()

			if sub != nil {
				sub.Dispose()
			}
		}),
	}

	d.mu.Lock()
	if d.destroyed || d.master == master {
		d.mu.Unlock()
		sub.Dispose()

		return nil
	}

	old := d.masterSub
	d.master = master
	d.masterSub = sub
	d.mu.Unlock()

	if old != nil {
		old.Dispose()
	}

	current, priority := master.effective()
	if current != previous {
		d.persist(current, priority)
		d.onDidChangeIcon.Emit(current)
	}

	return nil
}

// OnDidChangeIcon registers fn to receive every new effective icon.
func (d *IconDelegate) OnDidChangeIcon(fn func(*m.Icon)) Subscription {
	return d.onDidChangeIcon.On(fn)
}

// OnDidDestroy registers fn for destruction.
func (d *IconDelegate) OnDidDestroy(fn func()) Subscription {
	return d.onDidDestroy.On(func(struct{}) { fn() })
}

// Destroy detaches the delegate from its master and observers.
func (d *IconDelegate) Destroy() {
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return
	}

	d.destroyed = true
	sub := d.masterSub
	d.masterSub = nil
	d.mu.Unlock()

	if sub != nil {
		sub.Dispose()
	}

	d.onDidDestroy.Emit(struct{}{})
	d.onDidDestroy.Clear()
	d.onDidChangeIcon.Clear()
}

func (d *IconDelegate) effectiveChanged(previous, current *m.Icon, priority int) {
	d.persist(current, priority)

	if previous != current {
		d.onDidChangeIcon.Emit(current)
	}
}

func (d *IconDelegate) persist(icon *m.Icon, priority int) {
	if d.cache == nil {
		return
	}

	path := d.resource.Path()
	if icon == nil {
		d.cache.DeletePathIcon(path)
		return
	}

	d.cache.SetPathIcon(path, icon.Ref(priority))
}

// moved carries the cache entry over to the new path.
func (d *IconDelegate) moved(from, to m.Path) {
	if d.cache != nil {
		d.cache.Move(from, to)
	}
}

// statsLoaded records the inode of the resource. When the cache forgets the
// path because the inode changed, the icon restored from it is dropped too.
func (d *IconDelegate) statsLoaded(stats *m.Stats) {
	if d.cache == nil || stats == nil {
		return
	}

	path := d.resource.Path()
	d.cache.SetInode(path, stats.Inode)

	d.mu.Lock()
	cached := d.cached
	d.cached = nil
	d.mu.Unlock()

	if cached != nil && d.cache.GetPathIcon(path) == nil {
		d.Remove(cached, 0)
	}
}
