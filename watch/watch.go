package watch

import (
	"context"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler processes the watched file after its content changed.
type Handler func(ctx context.Context, path string) error

// Watcher reruns a handler whenever the content of one file changes.
// Bursts of events are merged, and events that leave the content
// unchanged are ignored.
type Watcher struct {
	log              *slog.Logger
	path             string
	mergeEventsDelay time.Duration
	handle           Handler

	mu      sync.Mutex
	synced  bool
	lastCrc uint32
}

func New(log *slog.Logger, path string, mergeEventsDelay time.Duration, handle Handler) *Watcher {
	if log == nil {
		log = slog.Default()
	}

	return &Watcher{
		log:              log,
		path:             filepath.Clean(path),
		mergeEventsDelay: mergeEventsDelay,
		handle:           handle,
	}
}

// Sync runs the handler if the file differs from the last handled
// version. It reports whether the handler ran.
func (w *Watcher) Sync(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf, err := os.ReadFile(w.path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", w.path, err)
	}

	crc := crc32.Checksum(buf, crc32.IEEETable)
	if w.synced && crc == w.lastCrc {
		w.log.Debug("file unchanged", "path", w.path)
		return false, nil
	}

	err = w.handle(ctx, w.path)
	if err != nil {
		return true, err
	}

	w.synced = true
	w.lastCrc = crc
	return true, nil
}

// Watch starts watching in the background and returns once the watch is
// in place. It stops when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Editors often replace files by rename, so watch the directory.
	err = fw.Add(filepath.Dir(w.path))
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	go w.loop(ctx, fw)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.mergeEventsDelay)
			} else {
				timer.Reset(w.mergeEventsDelay)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", "path", w.path, "error", err)
		case <-fire:
			fire = nil
			ran, err := w.Sync(ctx)
			if err != nil {
				w.log.Error("failed to process changed file", "path", w.path, "error", err)
				continue
			}
			if ran {
				w.log.Info("processed changed file", "path", w.path)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}

	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
