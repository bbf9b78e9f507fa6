package session

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/serlab/serlog/internal/cliconfig"
)

// ConfigWatcher monitors the config file via fsnotify and applies the
// one field that is safe to change while a session is logging: the
// verbose echo flag. Everything else (port, baud, output) is fixed
// for the lifetime of a session.
type ConfigWatcher struct {
	path    string
	verbose *atomic.Bool

	mu       sync.Mutex
	debounce *time.Timer
}

// NewConfigWatcher creates a watcher for the config file at path that
// updates verbose on change.
func NewConfigWatcher(path string, verbose *atomic.Bool) *ConfigWatcher {
	return &ConfigWatcher{path: path, verbose: verbose}
}

// Run watches the config file's directory until ctx is cancelled.
// Watch setup failures are logged and disable live reload; they never
// end the session.
func (w *ConfigWatcher) Run(ctx context.Context) {
	if w.path == "" {
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn().Err(err).Msg("config watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		logger.Warn().Err(err).Str("path", w.path).Msg("config watcher: failed to watch")
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(100 * time.Millisecond)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("config watcher: error")
		}
	}
}

// debounceReload coalesces the event bursts editors produce on save.
func (w *ConfigWatcher) debounceReload(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(delay, w.reload)
}

func (w *ConfigWatcher) reload() {
	fc, err := cliconfig.LoadFileConfig(w.path)
	if err != nil {
		logger.Warn().Err(err).Str("path", w.path).Msg("config watcher: reload failed")
		return
	}
	if fc.Verbose != nil && *fc.Verbose != w.verbose.Load() {
		w.verbose.Store(*fc.Verbose)
		logger.Info().Bool("verbose", *fc.Verbose).Msg("config watcher: verbose updated")
	}
}
