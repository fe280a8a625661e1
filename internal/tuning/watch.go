package tuning

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches the tuning directory and its presets for YAML changes.
// On a change it invalidates the loader cache and calls onChange with the
// path that changed.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	loader   *Loader
	onChange func(path string)
	log      *zap.Logger
	debounce time.Duration
	pending  map[string]time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for the loader's config directory. A nil
// logger discards output.
func NewWatcher(loader *Loader, onChange func(path string), log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		watcher:  fw,
		loader:   loader,
		onChange: onChange,
		log:      log,
		debounce: DefaultDebounce,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet period; call it before Start.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Start adds the tuning and preset directories and runs the event loop in a
// goroutine. Directories that do not exist are skipped with a warning.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	paths := w.loader.Paths()
	for _, dir := range []string{paths.Dir(), paths.PresetDir()} {
		if err := w.watcher.Add(dir); err != nil {
			w.log.Warn("tuning watch skipped", zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.log.Info("watching tuning dir", zap.String("dir", dir))
	}

	go w.run(ctx)
	return nil
}

// Stop ends the event loop, waits for it and releases the OS watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		// never started: only the OS handle to release
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.log.Error("close tuning watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Error("tuning watcher", zap.Error(err))
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !isYAML(ev.Name) {
		return
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	w.log.Debug("tuning file event", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
	w.pending[ev.Name] = time.Now()
}

// flush reports every path that has been quiet for the debounce period.
func (w *Watcher) flush(now time.Time) {
	var ready []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounce {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	if len(ready) == 0 {
		return
	}
	w.loader.Invalidate()
	for _, path := range ready {
		w.log.Info("tuning changed", zap.String("path", path))
		if w.onChange != nil {
			w.onChange(path)
		}
	}
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
