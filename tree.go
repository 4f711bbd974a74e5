package sitepress

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// treeCache is the lazily built snapshot of the site's directory structure.
// It exists for navigation (tree widgets, the tree CLI command) and is never
// consulted by builds, which re-walk the live filesystem instead.
type treeCache struct {
	mu      sync.Mutex
	entries []TreeEntry
	valid   bool
}

// Tree returns the depth-first site listing, building it on first use and
// after every invalidation. Dot-prefixed names are excluded; underscore
// paths are included, since the tree is for navigation rather than
// rendering. The returned slice is the caller's to keep.
func (s *Site) Tree() ([]TreeEntry, error) {
	s.tree.mu.Lock()
	defer s.tree.mu.Unlock()
	if !s.tree.valid {
		entries := []TreeEntry{{Kind: TreeDirOpen, Path: "."}}
		if err := walkTree(s.Root, "", &entries); err != nil {
			return nil, err
		}
		entries = append(entries, TreeEntry{Kind: TreeDirClose})
		s.tree.entries = entries
		s.tree.valid = true
	}
	out := make([]TreeEntry, len(s.tree.entries))
	copy(out, s.tree.entries)
	return out, nil
}

// InvalidateTree marks the cached listing stale; the next Tree call rebuilds
// it. Every mutating Site operation calls this as a postcondition.
func (s *Site) InvalidateTree() {
	s.tree.mu.Lock()
	s.tree.entries = nil
	s.tree.valid = false
	s.tree.mu.Unlock()
}

func walkTree(root, rel string, entries *[]TreeEntry) error {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return &FileError{Op: "read", Path: relOrDot(rel), Err: err}
	}
	for _, entry := range dirEntries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		childRel := path.Join(rel, name)
		if entry.IsDir() {
			*entries = append(*entries, TreeEntry{Kind: TreeDirOpen, Path: childRel})
			if err := walkTree(root, childRel, entries); err != nil {
				return err
			}
			*entries = append(*entries, TreeEntry{Kind: TreeDirClose})
		} else {
			*entries = append(*entries, TreeEntry{Kind: TreeFile, Path: childRel})
		}
	}
	return nil
}
