package sitepress

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resolve classifies one path relative to root and produces its build
// output. Rules, in order: any segment equal to ".." or starting with "_"
// yields KindNone; an existing directory yields KindDir; a .md source is
// rendered; anything else is KindRaw when the source exists and KindNone
// when it does not.
func Resolve(root, rel string) (RenderOutput, error) {
	return resolve(root, rel, false)
}

// ResolvePreview is Resolve with the live-preview extension: a request for
// foo.html that does not exist as a raw file is re-resolved as foo.md and
// rendered. Editors write .md, browsers ask for .html; this bridges the two
// without letting the rules drift from the build path.
func ResolvePreview(root, rel string) (RenderOutput, error) {
	return resolve(root, rel, true)
}

func resolve(root, rel string, preview bool) (RenderOutput, error) {
	if skippedPath(rel) {
		return RenderOutput{Kind: KindNone}, nil
	}
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if fi, err := os.Stat(abs); err == nil && fi.IsDir() {
		return RenderOutput{Kind: KindDir, Path: rel}, nil
	}
	if path.Ext(rel) == ".md" {
		return renderPage(root, rel)
	}
	if fileExists(abs) {
		return RenderOutput{Kind: KindRaw, Path: rel}, nil
	}
	if preview && path.Ext(rel) == ".html" {
		md := strings.TrimSuffix(rel, ".html") + ".md"
		if fileExists(filepath.Join(root, filepath.FromSlash(md))) {
			return renderPage(root, md)
		}
	}
	return RenderOutput{Kind: KindNone}, nil
}

// skippedPath reports whether any segment is ".." or starts with "_".
// Traversal attempts and private segments (layouts, scripts, drafts) are
// invisible to both build and preview.
func skippedPath(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." || strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}

func fileExists(abs string) bool {
	fi, err := os.Stat(abs)
	return err == nil && !fi.IsDir()
}
