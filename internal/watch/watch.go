// Package watch reports batches of changed source files under a directory
// tree, debounced so that an editor's burst of writes triggers one
// rebuild.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"wss/internal/project"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 250 * time.Millisecond

type Options struct {
	Debounce time.Duration
	// Skip lists directories that are never watched, such as the output
	// directory.
	Skip []string
	// Ready, when set, is called once every directory is being watched.
	Ready func()
}

// Run watches root until ctx is done, calling onChange with the sorted
// paths of .wss files that were created, written, removed or renamed
// since the previous call. Directories created later are watched too.
func Run(ctx context.Context, root string, opts Options, onChange func(changed []string)) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	skip := make(map[string]bool, len(opts.Skip))
	for _, s := range opts.Skip {
		if abs, err := filepath.Abs(s); err == nil {
			skip[filepath.Clean(abs)] = true
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, root, skip); err != nil {
		return err
	}
	if opts.Ready != nil {
		opts.Ready()
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	pending := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
					_ = addRecursive(watcher, path, skip)
					continue
				}
			}
			if filepath.Ext(path) != project.SourceExt {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if len(pending) > 0 {
				stopTimer(timer)
			}
			pending[path] = true
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(changed)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string, skip map[string]bool) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || skip[filepath.Clean(path)]) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
