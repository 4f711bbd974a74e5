package sitepress

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// WatchTree invalidates the tree cache whenever anything under the root
// changes, so navigation stays fresh without the collaborator calling
// InvalidateTree after every external edit. Newly created directories are
// added to the watch as they appear.
//
// The returned stop function releases the watcher.
func (s *Site) WatchTree() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watchDirs(w, s.Root); err != nil {
		w.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				s.InvalidateTree()
				if ev.Op.Has(fsnotify.Create) {
					if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
						if addErr := watchDirs(w, ev.Name); addErr != nil {
							slog.Warn("watch add failed", "dir", ev.Name, "error", addErr)
						}
					}
				}
			case werr, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Warn("tree watcher error", "error", werr)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		w.Close()
	}, nil
}

// watchDirs registers root and every directory below it. fsnotify watches
// are not recursive.
func watchDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}
