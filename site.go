package sitepress

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/eringen/sitepress/scaffold"
)

// Site is the handle on one site root. It owns the tree cache and the
// optional history store. The compiler never mutates anything under the
// root; mutations happen only through the page and image operations below,
// each of which invalidates the tree cache.
//
// A Site assumes a single logical owner: callers must serialize builds and
// deploys against the same root.
type Site struct {
	Root string // absolute path to the source tree

	cfg     SiteConfig
	tree    treeCache
	history *History
}

// Open returns a handle on an existing site root.
func Open(root string, opts ...Option) (*Site, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &FileError{Op: "open", Path: root, Err: err}
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, &FileError{Op: "open", Path: root, Err: err}
	}
	if !fi.IsDir() {
		return nil, &PolicyError{Reason: fmt.Sprintf("site root %s is not a directory", root)}
	}
	return newSite(abs, opts)
}

// Create scaffolds a new site in root, which must exist and be empty, and
// returns a handle on it. The scaffold provides a default layout, a stub
// deploy script, and starter content.
func Create(root string, opts ...Option) (*Site, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &FileError{Op: "open", Path: root, Err: err}
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, &FileError{Op: "open", Path: root, Err: err}
	}
	if len(entries) > 0 {
		return nil, &PolicyError{
			Reason: fmt.Sprintf("%s is not empty; refusing to scaffold a site over existing files", root),
		}
	}
	if err := writeScaffold(abs); err != nil {
		return nil, err
	}
	return newSite(abs, opts)
}

func newSite(abs string, opts []Option) (*Site, error) {
	s := &Site{Root: abs}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.setDefaults()
	if s.cfg.HistoryPath != "" {
		h, err := OpenHistory(s.cfg.HistoryPath)
		if err != nil {
			return nil, err
		}
		s.history = h
	}
	return s, nil
}

// Close releases the site's resources. The root itself is untouched.
func (s *Site) Close() error {
	if s.history != nil {
		return s.history.Close()
	}
	return nil
}

// Config returns the site's effective configuration.
func (s *Site) Config() SiteConfig { return s.cfg }

// CreatePage creates an empty file or directory at name under parent
// (relative to the root; empty parent means the root itself). It refuses to
// overwrite and invalidates the tree cache on success.
func (s *Site) CreatePage(ft FileType, name, parent string) error {
	rel := path.Join(parent, name)
	if !isWithin(s.Root, filepath.Join(s.Root, filepath.FromSlash(rel))) {
		return &PolicyError{Reason: fmt.Sprintf("refusing to create %s outside the site root", rel)}
	}
	target := filepath.Join(s.Root, filepath.FromSlash(rel))
	if _, err := os.Stat(target); err == nil {
		return &PolicyError{Reason: fmt.Sprintf("can't create %s because it already exists", rel)}
	}

	var err error
	switch ft {
	case FileTypeDir:
		err = os.Mkdir(target, 0o755)
	default:
		err = os.WriteFile(target, nil, 0o644)
	}
	if err != nil {
		return &FileError{Op: "create", Path: rel, Err: err}
	}
	s.InvalidateTree()
	return nil
}

// DeletePage removes a file, or a directory and everything under it, and
// invalidates the tree cache.
func (s *Site) DeletePage(rel string) error {
	target := filepath.Join(s.Root, filepath.FromSlash(rel))
	if err := os.RemoveAll(target); err != nil {
		return &FileError{Op: "delete", Path: rel, Err: err}
	}
	s.InvalidateTree()
	return nil
}

// RenamePage renames a file or directory in place, keeping its parent
// directory, and invalidates the tree cache.
func (s *Site) RenamePage(rel, newName string) error {
	oldAbs := filepath.Join(s.Root, filepath.FromSlash(rel))
	newAbs := filepath.Join(filepath.Dir(oldAbs), newName)
	if err := os.Rename(oldAbs, newAbs); err != nil {
		return &FileError{Op: "rename", Path: rel, Err: err}
	}
	s.InvalidateTree()
	return nil
}

func (s *Site) recordOutcome(op string, opErr error, detail string) {
	if s.history == nil {
		return
	}
	if opErr != nil {
		detail = opErr.Error()
	}
	if err := s.history.Record(op, opErr == nil, detail); err != nil {
		slog.Warn("history record failed", "op", op, "error", err)
	}
}

func writeScaffold(root string) error {
	return fs.WalkDir(scaffold.Templates, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel("templates", p)
		if err != nil {
			return err
		}
		out := filepath.Join(root, rel)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if mkErr := os.Mkdir(out, 0o755); mkErr != nil {
				return &FileError{Op: "create", Path: rel, Err: mkErr}
			}
			return nil
		}
		data, err := scaffold.Templates.ReadFile(p)
		if err != nil {
			return &FileError{Op: "read", Path: rel, Err: err}
		}
		mode := os.FileMode(0o644)
		if strings.HasSuffix(rel, ".sh") {
			mode = 0o755
		}
		if err := os.WriteFile(out, data, mode); err != nil {
			return &FileError{Op: "write", Path: rel, Err: err}
		}
		return nil
	})
}
