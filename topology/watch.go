package topology

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a watched file must stay quiet before it is reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Update carries a freshly decoded snapshot or the error that prevented decoding it.
type Update struct {
	Topology *Topology
	Err      error
}

// Watcher reloads a topology file whenever it changes on disk.
type Watcher interface {
	// Updates returns the channel snapshots are delivered on. It is closed by Close.
	//
	// Returns:
	//   - <-chan Update: the update stream
	Updates() <-chan Update

	// Close stops watching and closes the update channel.
	//
	// Returns:
	//   - error: an error from the underlying watcher
	Close() error
}

type watcherImpl struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	updates  chan Update

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

var _ Watcher = &watcherImpl{}

// WatcherBuilderOption is a functional option for configuring a Watcher.
type WatcherBuilderOption func(*watcherImpl)

// WithDebounce sets the quiet period before a change is reloaded.
//
// Parameters:
//   - d: the debounce interval
//
// Returns:
//   - WatcherBuilderOption: a function that sets the debounce interval
func WithDebounce(d time.Duration) WatcherBuilderOption {
	return func(w *watcherImpl) {
		w.debounce = d
	}
}

// Watch starts watching path. The containing directory is watched so editors that replace
// the file by rename are still seen.
//
// Parameters:
//   - path: the topology file
//   - options: builder options
//
// Returns:
//   - Watcher: the running watcher
//   - error: an error if the path cannot be watched
func Watch(path string, options ...WatcherBuilderOption) (Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
	}

	w := &watcherImpl{
		watcher:  fw,
		path:     abs,
		debounce: DefaultDebounce,
		updates:  make(chan Update, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *watcherImpl) Updates() <-chan Update {
	return w.updates
}

func (w *watcherImpl) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.stopTimer()
	close(w.done)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	close(w.updates)
	return err
}

func (w *watcherImpl) run() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Topology] watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *watcherImpl) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.stopTimer()
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.reload()
	})
}

// stopTimer cancels a pending reload. Callers hold mu.
func (w *watcherImpl) stopTimer() {
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.timer = nil
}

func (w *watcherImpl) reload() {
	t, err := Load(w.path)
	if err != nil {
		log.Printf("[Topology] reload failed: %v", err)
	}
	select {
	case w.updates <- Update{Topology: t, Err: err}:
	case <-w.done:
	}
}
