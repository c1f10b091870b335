package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/stylist-cli/internal/logger"
)

// Watch reloads the store whenever the config file changes on disk and then
// calls onChange. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself: editors and
// Save replace the file, which would drop a file-level watch.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}
	logger.Debug("watching %s", s.filePath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.isConfigChange(event) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.Warn("reload %s: %v", s.filePath, err)
				continue
			}
			logger.Debug("reloaded %s (%s)", s.filePath, event.Op)
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

// isConfigChange reports whether event alters the config file's content.
func (s *ConfigStore) isConfigChange(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
