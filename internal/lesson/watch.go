package lesson

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/Iron-Ham/stepthrough/internal/logging"
	"github.com/Iron-Ham/stepthrough/internal/walkthrough"
	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit for one save.
const reloadDebounce = 100 * time.Millisecond

// Reload carries the result of re-reading a watched lesson. Exactly one of
// Content and Err is set.
type Reload struct {
	Content *walkthrough.Content
	Err     error
}

// Watcher re-parses a lesson file whenever it changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	opts     []Option
	onReload func(Reload)
	logger   *logging.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewWatcher creates a watcher for the lesson at path. onReload is called
// from the watcher's goroutine after each debounced change.
func NewWatcher(path string, logger *logging.Logger, onReload func(Reload), opts ...Option) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory; editors often replace the file rather than write it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch lesson directory: %w", err)
	}

	return &Watcher{
		watcher:  watcher,
		path:     path,
		opts:     opts,
		onReload: onReload,
		logger:   logger.WithLesson(path),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a new goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop ends the watch loop and waits for it to exit. It is safe to call
// more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
	<-w.doneCh
}

func (w *Watcher) watchLoop() {
	defer close(w.doneCh)

	target := filepath.Base(w.path)
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C

	for {
		select {
		case <-w.stopCh:
			debounceTimer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounceTimer.Reset(reloadDebounce)

		case <-debounceTimer.C:
			content, err := Load(w.path, w.opts...)
			if err != nil {
				w.logger.Warn("lesson reload failed", "error", err)
			} else {
				w.logger.Info("lesson reloaded", "trace_entries", len(content.Trace))
			}
			if w.onReload != nil {
				w.onReload(Reload{Content: content, Err: err})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("lesson watcher error", "error", err)
		}
	}
}
