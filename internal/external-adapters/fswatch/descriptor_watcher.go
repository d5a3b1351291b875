// Package fswatch notifies about changes to descriptor files.
package fswatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ochairo/variants/internal/domain/interfaces"
)

// DefaultDebounce coalesces the bursts of events editors produce on save
const DefaultDebounce = 300 * time.Millisecond

// DescriptorWatcher calls back when a single file is written, created, renamed or removed.
// The parent directory is watched so that atomic replace-on-save is seen too.
type DescriptorWatcher struct {
	debounce time.Duration
	logger   interfaces.Logger
}

// NewDescriptorWatcher creates a watcher; debounce <= 0 selects DefaultDebounce
func NewDescriptorWatcher(debounce time.Duration, logger interfaces.Logger) *DescriptorWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &DescriptorWatcher{debounce: debounce, logger: logger.Named("watch")}
}

// Watch blocks until ctx is done, invoking onChange after each debounced change of path
func (w *DescriptorWatcher) Watch(ctx context.Context, path string, onChange func()) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	//nolint:errcheck // Defer close
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching descriptor", interfaces.F("path", path))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&relevant == 0 {
				continue
			}
			w.logger.Debug("descriptor event", interfaces.F("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", interfaces.F("error", err.Error()))
		case <-timer.C:
			onChange()
		}
	}
}
