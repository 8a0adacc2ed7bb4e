// File: envgrove/config/watch.go
package config

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// WatchCallback is invoked with the configuration after each successful
// reload.
type WatchCallback func(c *Config)

// WatchOptions configures file watching behavior.
type WatchOptions struct {
	// PollInterval for file stat checks (clamped to MinPollInterval).
	PollInterval time.Duration

	// Debounce duration to coalesce rapid file changes.
	Debounce time.Duration

	// OnError receives reload failures. Failures are also logged; they are
	// never raised to the caller.
	OnError func(error)
}

// DefaultWatchOptions returns sensible defaults for file watching.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval: DefaultPollInterval,
		Debounce:     DefaultDebounce,
	}
}

type fileState struct {
	modTime time.Time
	size    int64
	exists  bool
}

// watcher manages the single background poller for a root configuration.
type watcher struct {
	mu            sync.Mutex
	ctx           context.Context
	cancel        context.CancelFunc
	opts          WatchOptions
	cfg           *Config
	last          map[string]fileState
	callbacks     []WatchCallback
	watching      atomic.Bool
	reloading     atomic.Bool
	debounceTimer *time.Timer
}

// Watch starts the reload poller with default options. See WatchWithOptions.
func (c *Config) Watch(cb WatchCallback) error {
	return c.WatchWithOptions(cb, DefaultWatchOptions())
}

// WatchWithOptions registers a reload callback and starts the background
// poller if it is not already running; at most one poller exists per root.
// Only a root configuration built from file sources can be watched.
func (c *Config) WatchWithOptions(cb WatchCallback, opts WatchOptions) error {
	if len(c.files) == 0 {
		return fmt.Errorf("no file sources to watch")
	}

	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}

	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	if c.watcher == nil {
		ctx, cancel := context.WithCancel(context.Background())
		w := &watcher{
			ctx:    ctx,
			cancel: cancel,
			opts:   opts,
			cfg:    c,
			last:   make(map[string]fileState, len(c.files)),
		}
		for _, path := range c.files {
			w.last[path] = statFile(path)
		}
		c.watcher = w
		go w.watchLoop()
	}

	if cb != nil {
		c.watcher.mu.Lock()
		c.watcher.callbacks = append(c.watcher.callbacks, cb)
		c.watcher.mu.Unlock()
	}
	return nil
}

// Stop signals the poller to exit and waits for termination, bounded by
// ShutdownTimeout. Safe to call when no watcher is running.
func (c *Config) Stop() {
	c.watchMu.Lock()
	w := c.watcher
	c.watcher = nil
	c.watchMu.Unlock()

	if w != nil {
		w.stop()
	}
}

// Watching reports whether the background poller is running.
func (c *Config) Watching() bool {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()
	return c.watcher != nil && c.watcher.watching.Load()
}

func statFile(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{modTime: info.ModTime(), size: info.Size(), exists: true}
}

// watchLoop is the main file watching loop.
func (w *watcher) watchLoop() {
	if !w.watching.CompareAndSwap(false, true) {
		return // Already watching
	}
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkFiles()
		}
	}
}

// checkFiles compares the tracked modification state of every source file
// and schedules a reload when any changed.
func (w *watcher) checkFiles() {
	changed := false
	for _, path := range w.cfg.files {
		current := statFile(path)
		prev := w.last[path]
		if current.exists != prev.exists || !current.modTime.Equal(prev.modTime) || current.size != prev.size {
			w.last[path] = current
			changed = true
		}
	}
	if !changed {
		return
	}

	// Debounce rapid changes
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, w.performReload)
	w.mu.Unlock()
}

// performReload re-runs the full pipeline. On success the new snapshot set
// is already published; callbacks fire afterwards. On failure the prior
// state is retained and the error is reported, never raised.
func (w *watcher) performReload() {
	if !w.reloading.CompareAndSwap(false, true) {
		return
	}
	defer w.reloading.Store(false)

	if w.ctx.Err() != nil {
		return
	}

	if err := w.cfg.reload(); err != nil {
		w.cfg.logger.Error("config reload failed, keeping previous values",
			"files", w.cfg.files, "error", err)
		if w.opts.OnError != nil {
			w.opts.OnError(err)
		}
		return
	}

	w.mu.Lock()
	callbacks := make([]WatchCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(w.cfg)
	}
}

// stop terminates the watcher and waits for the loop to exit.
func (w *watcher) stop() {
	w.cancel()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}
