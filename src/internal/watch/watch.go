// Package watch re-runs a callback when watched source files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/VectorBits/solo/src/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches the parent directories of a set of files, so that editors
// replacing a file by rename are still seen, and reports changes to those
// files only.
type Watcher struct {
	w        *fsnotify.Watcher
	files    map[string]struct{}
	Debounce time.Duration
}

func New(files []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &Watcher{w: w, files: make(map[string]struct{}), Debounce: DefaultDebounce}
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		fw.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return fw, nil
}

// Run blocks until ctx is done, calling onChange with the absolute path of
// every watched file that was written, created or renamed into place. Paths
// changed within one debounce window are reported once, in sorted order.
func (fw *Watcher) Run(ctx context.Context, onChange func(path string)) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := fw.files[abs]; !ok {
				continue
			}
			logger.Debug("watch: %s %s", ev.Op, abs)
			pending[abs] = struct{}{}
			timer.Reset(fw.Debounce)
		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]struct{})
			for _, p := range paths {
				onChange(p)
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

func (fw *Watcher) Close() error { return fw.w.Close() }
