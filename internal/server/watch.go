package server

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher logs external edits to the task file while the server runs.
// The store re-reads the file on every operation, so a change made by
// another process (or a text editor) is picked up automatically; the log
// line just makes it visible.
type fileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	done    chan struct{}
}

func newFileWatcher(path string, logger *slog.Logger) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory: the task file may not exist yet, and editors
	// often replace files instead of writing in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &fileWatcher{
		path:    path,
		watcher: watcher,
		logger:  logger,
		done:    make(chan struct{}),
	}, nil
}

func (f *fileWatcher) start() {
	go func() {
		for {
			select {
			case <-f.done:
				return
			case event, ok := <-f.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(f.path) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
					f.logger.Info("task file changed on disk", "path", f.path, "op", event.Op.String())
				}
			case err, ok := <-f.watcher.Errors:
				if !ok {
					return
				}
				f.logger.Warn("task file watcher error", "error", err)
			}
		}
	}()
}

func (f *fileWatcher) stop() {
	close(f.done)
	_ = f.watcher.Close()
}
