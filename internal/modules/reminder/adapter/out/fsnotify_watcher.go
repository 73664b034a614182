package out

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	reminderout "jadwal/internal/modules/reminder/port/out"
	"jadwal/internal/platform/logging"
)

const defaultDebounce = 500 * time.Millisecond

// FSNotifyWatcher signals when a markdown note under the courses
// directory is created, written, renamed or removed. Bursts of events
// collapse into one signal after the debounce window.
type FSNotifyWatcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
}

func NewFSNotifyWatcher(dir string, debounce time.Duration, logger *slog.Logger) reminderout.CatalogWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &FSNotifyWatcher{dir: dir, debounce: debounce, logger: logger}
}

func (w *FSNotifyWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir courses dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("catalog watcher error", "dir", w.dir, "error", err)
			case <-fire:
				fire = nil
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

func relevant(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), ".md") {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
