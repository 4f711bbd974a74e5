package sitepress

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Compile walks the live filesystem depth-first, parent before children, and
// returns the ordered action list for a full build. A directory's KindDir
// action always precedes the actions for its contents, so applying the list
// in order never writes into a directory that does not exist yet.
//
// Compile never consults the tree cache; builds always see the live tree.
// The first error aborts the whole compilation.
func (s *Site) Compile() ([]RenderOutput, error) {
	var actions []RenderOutput
	if err := s.compileDir("", &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (s *Site) compileDir(rel string, actions *[]RenderOutput) error {
	abs := filepath.Join(s.Root, filepath.FromSlash(rel))
	entries, err := os.ReadDir(abs)
	if err != nil {
		return &FileError{Op: "read", Path: relOrDot(rel), Err: err}
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		childRel := path.Join(rel, name)
		out, err := Resolve(s.Root, childRel)
		if err != nil {
			return err
		}
		if out.Kind == KindNone {
			continue
		}
		*actions = append(*actions, out)
		if out.Kind == KindDir {
			if err := s.compileDir(childRel, actions); err != nil {
				return err
			}
		}
	}
	return nil
}

func relOrDot(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
