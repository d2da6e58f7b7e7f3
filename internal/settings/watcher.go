package settings

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher closed")

// DefaultDebounce is the quiet period before a burst of file events is read.
const DefaultDebounce = 50 * time.Millisecond

// Watcher reports external changes of the enabled flag.
//
// The parent directory is watched rather than the file so editors that save
// by rename are still seen.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration

	changes chan bool
	errors  chan error

	mu      sync.Mutex
	last    bool
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce period.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching the store's file. The current value is the
// baseline; only differing values are reported.
func NewWatcher(store *Store, opts ...WatcherOption) (*Watcher, error) {
	last, err := store.VimModeEnabled()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(store.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		store:    store,
		watcher:  fsw,
		debounce: DefaultDebounce,
		changes:  make(chan bool, 8),
		errors:   make(chan error, 8),
		last:     last,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Changes delivers the new flag value after each external change.
func (w *Watcher) Changes() <-chan bool {
	return w.changes
}

// Errors delivers read and watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.changes)
	close(w.errors)
	return w.watcher.Close()
}

// Observe records a value written by this process so it is not reported
// back as an external change.
func (w *Watcher) Observe(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.last = enabled
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	target := filepath.Clean(w.store.Path())
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
				!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) reload() {
	enabled, err := w.store.VimModeEnabled()
	if err != nil {
		w.sendError(err)
		return
	}

	w.mu.Lock()
	changed := enabled != w.last
	w.last = enabled
	w.mu.Unlock()

	if !changed {
		return
	}
	select {
	case w.changes <- enabled:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// drop when nobody is reading
	}
}
