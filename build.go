package sitepress

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Build compiles the site and writes it into target. The target must be
// disjoint from the site root: building into the root (or a parent of it)
// would delete the sources during the clean step. Any existing content in
// target is removed first, so a build is always a full, consistent output.
//
// A render error anywhere aborts the build with nothing considered valid;
// partially written output may remain in target but the error is returned.
func (s *Site) Build(target string) error {
	err := s.build(target)
	s.recordOutcome("build", err, target)
	return err
}

func (s *Site) build(target string) error {
	if err := validateTarget(s.Root, target); err != nil {
		return err
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return &FileError{Op: "create", Path: target, Err: err}
	}
	if err := cleanDir(target); err != nil {
		return err
	}
	actions, err := s.Compile()
	if err != nil {
		return err
	}
	return s.apply(actions, target)
}

// validateTarget rejects a target equal to, inside, or containing the root.
func validateTarget(root, target string) error {
	targetAbs, err := filepath.Abs(target)
	if err != nil {
		return &FileError{Op: "open", Path: target, Err: err}
	}
	if isWithin(root, targetAbs) || isWithin(targetAbs, root) {
		return &PolicyError{
			Reason: fmt.Sprintf("build target %s overlaps the site root %s", target, root),
		}
	}
	return nil
}

func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// cleanDir removes everything inside dir, leaving dir itself in place.
func cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &FileError{Op: "read", Path: dir, Err: err}
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(child); err != nil {
			return &FileError{Op: "delete", Path: child, Err: err}
		}
	}
	return nil
}

func (s *Site) apply(actions []RenderOutput, target string) error {
	for _, action := range actions {
		dst := filepath.Join(target, filepath.FromSlash(action.Path))
		switch action.Kind {
		case KindRendered:
			if err := os.WriteFile(dst, action.Content, 0o644); err != nil {
				return &FileError{Op: "write", Path: action.Path, Err: err}
			}
		case KindRaw:
			src := filepath.Join(s.Root, filepath.FromSlash(action.Path))
			if err := copyFile(src, dst, action.Path); err != nil {
				return err
			}
		case KindDir:
			// Parent directories exist already: Compile emits a directory's
			// action before anything inside it.
			if err := os.Mkdir(dst, 0o755); err != nil {
				return &FileError{Op: "create", Path: action.Path, Err: err}
			}
		}
	}
	return nil
}

func copyFile(src, dst, rel string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return &FileError{Op: "copy", Path: rel, Err: err}
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return &FileError{Op: "copy", Path: rel, Err: err}
	}
	return nil
}
