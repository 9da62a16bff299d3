package log

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// CfgWatchCallback is invoked after the watched configuration file changed
// and was reloaded. cfg is nil when reloading failed, with err explaining
// why; the previous configuration stays in effect in that case.
type CfgWatchCallback func(cfg *LogCfg, err error)

// CfgWatcher watches one configuration file and reloads it on change, with
// debouncing so editor save sequences trigger a single reload. The usual
// callback applies the reloaded level to a live logger via SetLevel,
// enabling verbosity changes without restarting a long simulation run.
type CfgWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	callback CfgWatchCallback
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer

	done     chan struct{}
	stopOnce sync.Once
}

// WatchCfgFile starts watching path. The containing directory is watched
// rather than the file itself so the usual rename-into-place save pattern is
// observed. Stop must be called to release the watcher.
func WatchCfgFile(path string, callback CfgWatchCallback) (*CfgWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	cw := &CfgWatcher{
		path:     abs,
		watcher:  fsWatcher,
		callback: callback,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

func (cw *CfgWatcher) run() {
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cw.scheduleReload()
		case _, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			// Watcher errors are transient; keep watching.
		case <-cw.done:
			return
		}
	}
}

// scheduleReload resets the debounce timer so a burst of events produces one
// reload after things settle.
func (cw *CfgWatcher) scheduleReload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, cw.reload)
}

func (cw *CfgWatcher) reload() {
	select {
	case <-cw.done:
		return
	default:
	}
	cfg, err := LoadCfgFile(cw.path)
	if err != nil {
		cw.callback(nil, err)
		return
	}
	cw.callback(cfg, nil)
}

// Stop ends watching and releases resources. Safe to call more than once; a
// reload already in flight may still invoke the callback once.
func (cw *CfgWatcher) Stop() {
	cw.stopOnce.Do(func() {
		close(cw.done)
		cw.mu.Lock()
		if cw.timer != nil {
			cw.timer.Stop()
		}
		cw.mu.Unlock()
		_ = cw.watcher.Close()
	})
}
