// Package watch runs a handler for subtitle files that appear in a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mgpai22/subkit/internal/logging"
	"github.com/mgpai22/subkit/internal/subtitle"
)

const defaultDebounce = 500 * time.Millisecond

// Handler processes one settled file. Errors are logged; watching goes on.
type Handler func(ctx context.Context, path string) error

type Config struct {
	Dir string
	// quiet period after the last write before a file is handled
	Debounce time.Duration
	// handle files already in Dir when Run starts
	ProcessExisting bool
	// Accept filters paths; the default accepts every supported subtitle
	// extension
	Accept func(path string) bool
	Logger *logging.Logger
}

type Watcher struct {
	dir             string
	debounce        time.Duration
	processExisting bool
	accept          func(string) bool
	handler         Handler
	logger          *logging.Logger
	watcher         *fsnotify.Watcher
}

func New(cfg Config, handler Handler) (*Watcher, error) {
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch path is not a directory: %s", cfg.Dir)
	}
	if handler == nil {
		return nil, fmt.Errorf("watch handler is nil")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(cfg.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", cfg.Dir, err)
	}

	w := &Watcher{
		dir:             cfg.Dir,
		debounce:        cfg.Debounce,
		processExisting: cfg.ProcessExisting,
		accept:          cfg.Accept,
		handler:         handler,
		logger:          cfg.Logger,
		watcher:         fsw,
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	if w.accept == nil {
		w.accept = isSubtitleFile
	}
	if w.logger == nil {
		w.logger = logging.Nop()
	}
	return w, nil
}

// Run blocks until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if w.processExisting {
		if err := w.handleExisting(ctx); err != nil {
			return err
		}
	}

	w.logger.Infow("Watching directory", "dir", w.dir)

	tick := w.debounce / 2
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.accept(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("File watcher error", "error", err)

		case now := <-ticker.C:
			for _, path := range settled(pending, now, w.debounce) {
				delete(pending, path)
				w.handle(ctx, path)
			}
		}
	}
}

// paths quiet for at least debounce, sorted for stable handling order
func settled(pending map[string]time.Time, now time.Time, debounce time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= debounce {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	return ready
}

func (w *Watcher) handleExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to list watch directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if w.accept(path) {
			w.handle(ctx, path)
		}
	}
	return nil
}

func (w *Watcher) handle(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}
	if err := w.handler(ctx, path); err != nil {
		w.logger.Warnw("Failed to process file", "path", path, "error", err)
		return
	}
	w.logger.Infow("Processed file", "path", path)
}

func isSubtitleFile(path string) bool {
	_, err := subtitle.FormatFromPath(path)
	return err == nil
}
