package repo

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"drover/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher rebuilds the registry whenever the configuration directory
// changes on disk. Because a Repo is immutable after load, reacting to a
// change means building a fresh Repo and handing it to the callback;
// the previous instance (and all its memoized views) is discarded.
type Watcher struct {
	mu sync.Mutex

	configPath       string
	debounceInterval time.Duration

	watcher *fsnotify.Watcher
	timer   *time.Timer
	running bool
	stopCh  chan struct{}
}

// NewWatcher creates a watcher for the given configuration directory.
func NewWatcher(configPath string, debounceInterval time.Duration) *Watcher {
	if debounceInterval == 0 {
		debounceInterval = 500 * time.Millisecond
	}
	return &Watcher{
		configPath:       configPath,
		debounceInterval: debounceInterval,
	}
}

// Start begins watching. On every relevant change (create, write, remove
// or rename of a YAML file), after debouncing, a fresh Repo is loaded
// and passed to onReload; load failures go to onError and leave the
// previous Repo in effect. Start returns immediately; watching stops
// when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context, onReload func(*Repo), onError func(error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range []string{
		w.configPath,
		filepath.Join(w.configPath, groupsDir),
		filepath.Join(w.configPath, nodesDir),
	} {
		if err := watcher.Add(dir); err != nil {
			logging.Warn("Watcher", "Not watching %s: %v", dir, err)
		}
	}

	w.watcher = watcher
	w.running = true
	w.stopCh = make(chan struct{})

	go w.processEvents(ctx, onReload, onError)

	logging.Info("Watcher", "Watching %s for configuration changes", w.configPath)
	return nil
}

// Stop terminates the watch loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.stopCh)
	w.watcher.Close()
	w.running = false
}

func (w *Watcher) processEvents(ctx context.Context, onReload func(*Repo), onError func(error)) {
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			logging.Debug("Watcher", "Change detected: %s %s", event.Op, event.Name)
			w.scheduleReload(reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("Watcher", "Watch error: %v", err)
		case <-reload:
			repo, err := Load(w.configPath)
			if err != nil {
				logging.Error("Watcher", err, "Reload of %s failed, keeping previous registry", w.configPath)
				if onError != nil {
					onError(err)
				}
				continue
			}
			onReload(repo)
		}
	}
}

// relevant filters out events that cannot affect the registry, such as
// editor temp files.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return isYAMLFile(event.Name)
}

func (w *Watcher) scheduleReload(reload chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceInterval, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
}
