// Package watch re-runs a conversion whenever the watched log file changes.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay coalesces the bursts of write events an append produces.
const debounceDelay = 500 * time.Millisecond

// File watches path and calls fn after each (debounced) change until ctx is
// cancelled. The parent directory is watched so the file may be replaced or
// recreated without losing the watch. Errors from fn are logged, not fatal.
func File(ctx context.Context, path string, log *zap.SugaredLogger, fn func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	log.Infof("watching %s for changes", path)

	target := filepath.Base(path)
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %v", err)

		case <-timer.C:
			if err := fn(); err != nil {
				log.Warnf("reconvert failed: %v", err)
			}
		}
	}
}
