package sitepress

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func mustOpen(t *testing.T, root string, opts ...Option) *Site {
	t.Helper()
	site, err := Open(root, opts...)
	if err != nil {
		t.Fatalf("open site %s: %v", root, err)
	}
	t.Cleanup(func() { site.Close() })
	return site
}
