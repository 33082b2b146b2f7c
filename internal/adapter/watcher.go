package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	m "fileicons.dev/pkg/fileicons/internal/model"
)

// FileOp describes what happened to a watched path.
type FileOp uint8

// File operations reported by a FileWatcher.
const (
	FileCreated FileOp = 1 << iota
	FileWritten
	FileRemoved
	FileRenamed
)

// Has reports whether op includes other.
func (op FileOp) Has(other FileOp) bool {
	return op&other != 0
}

// FileEvent is a change to a watched path.
type FileEvent struct {
	Path m.Path
	Op   FileOp
}

// FileWatcher delivers change notifications for files and directories.
type FileWatcher interface {
	// WatchFile reports changes to a single file, including its creation.
	WatchFile(path m.Path) error
	// WatchDir reports changes to every direct entry of a directory.
	WatchDir(path m.Path) error
	// Unwatch stops reporting changes for a path added with WatchFile or WatchDir.
	Unwatch(path m.Path) error
	Events() <-chan FileEvent
	Errors() <-chan error
	Close() error
}

// FSNotifyWatcher implements FileWatcher on top of fsnotify. Files are
// watched through their parent directory so that creation and atomic
// replacement are both observed.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
	events  chan FileEvent
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup

	mu    sync.Mutex
	refs  map[string]int
	files map[string]struct{}
	dirs  map[string]struct{}
	once  sync.Once
}

// NewFSNotifyWatcher creates a watcher and starts delivering events.
func NewFSNotifyWatcher() (*FSNotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &FSNotifyWatcher{
		watcher: watcher,
		events:  make(chan FileEvent, 64),
		errs:    make(chan error, 8),
		done:    make(chan struct{}),
		refs:    make(map[string]int),
		files:   make(map[string]struct{}),
		dirs:    make(map[string]struct{}),
	}

	w.wg.Add(1)

	go w.run()

	return w, nil
}

// WatchFile implements FileWatcher.
func (w *FSNotifyWatcher) WatchFile(path m.Path) error {
	name := filepath.Clean(string(path))

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[name]; ok {
		return nil
	}

	if err := w.addLocked(filepath.Dir(name)); err != nil {
		return err
	}

	w.files[name] = struct{}{}

	return nil
}

// WatchDir implements FileWatcher.
func (w *FSNotifyWatcher) WatchDir(path m.Path) error {
	name := filepath.Clean(string(path))

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[name]; ok {
		return nil
	}

	if err := w.addLocked(name); err != nil {
		return err
	}

	w.dirs[name] = struct{}{}

	return nil
}

// Unwatch implements FileWatcher.
func (w *FSNotifyWatcher) Unwatch(path m.Path) error {
	name := filepath.Clean(string(path))

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[name]; ok {
		delete(w.files, name)
		return w.releaseLocked(filepath.Dir(name))
	}

	if _, ok := w.dirs[name]; ok {
		delete(w.dirs, name)
		return w.releaseLocked(name)
	}

	return nil
}

func (w *FSNotifyWatcher) addLocked(dir string) error {
	if w.refs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("add path to watcher: %w", err)
		}

		slog.Debug("watching directory", "path", dir)
	}

	w.refs[dir]++

	return nil
}

func (w *FSNotifyWatcher) releaseLocked(dir string) error {
	w.refs[dir]--
	if w.refs[dir] > 0 {
		return nil
	}

	delete(w.refs, dir)

	err := w.watcher.Remove(dir)
	if err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
		return fmt.Errorf("remove path from watcher: %w", err)
	}

	return nil
}

// Events implements FileWatcher.
func (w *FSNotifyWatcher) Events() <-chan FileEvent {
	return w.events
}

// Errors implements FileWatcher.
func (w *FSNotifyWatcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher. Events and Errors are closed once the delivery
// goroutine has exited.
func (w *FSNotifyWatcher) Close() error {
	var err error

	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.events)
		close(w.errs)
	})

	if err != nil {
		slog.Error("close watcher", "error", err)
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}

func (w *FSNotifyWatcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			op := translateOp(evt.Op)
			if op == 0 || !w.watched(evt.Name) {
				continue
			}

			select {
			case w.events <- FileEvent{Path: m.Path(evt.Name), Op: op}:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			slog.Warn("watcher error", "error", err)

			select {
			case w.errs <- err:
			case <-w.done:
				return
			default:
			}
		}
	}
}

func (w *FSNotifyWatcher) watched(name string) bool {
	name = filepath.Clean(name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[name]; ok {
		return true
	}

	_, ok := w.dirs[filepath.Dir(name)]

	return ok
}

// translateOp drops permission-only changes.
func translateOp(op fsnotify.Op) FileOp {
	var out FileOp

	if op.Has(fsnotify.Create) {
		out |= FileCreated
	}

	if op.Has(fsnotify.Write) {
		out |= FileWritten
	}

	if op.Has(fsnotify.Remove) {
		out |= FileRemoved
	}

	if op.Has(fsnotify.Rename) {
		out |= FileRenamed
	}

	return out
}
