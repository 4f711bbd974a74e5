package sitepress

import (
	"errors"
	"strings"
	"testing"
)

func renderFile(t *testing.T, rel string) RenderOutput {
	t.Helper()
	out, err := Resolve("testdata/site", rel)
	if err != nil {
		t.Fatalf("resolve %s: %v", rel, err)
	}
	return out
}

func TestRenderingMarkdown(t *testing.T) {
	out := renderFile(t, "index.md")
	if out.Kind != KindRendered {
		t.Fatalf("expected rendered output, got kind %d", out.Kind)
	}
	if out.Path != "index.html" {
		t.Fatalf("expected output path index.html, got %s", out.Path)
	}
	content := string(out.Content)
	if !strings.HasPrefix(content, "<!DOCTYPE html>") {
		t.Fatalf("expected layout to lead the output, got %q", content[:40])
	}
	if !strings.Contains(content, "Pest Toast") {
		t.Fatalf("expected title substitution in output")
	}
	if !strings.Contains(content, `<code class="language-rust">`) {
		t.Fatalf("expected code fence language tag in output")
	}
	if !strings.Contains(content, "<table>") {
		t.Fatalf("expected rendered table in output")
	}
}

func TestNoLayout(t *testing.T) {
	out := renderFile(t, "nolayout.md")
	if out.Kind != KindRendered {
		t.Fatalf("expected rendered output, got kind %d", out.Kind)
	}
	if !strings.HasPrefix(string(out.Content), "<p>This file has no layout") {
		t.Fatalf("expected bare conversion with no layout, got %q", out.Content)
	}
}

func TestUnderscorePathsProduceNothing(t *testing.T) {
	for _, rel := range []string{"_skipped.md", "_layouts/default.html"} {
		if out := renderFile(t, rel); out.Kind != KindNone {
			t.Fatalf("expected no output for %s, got kind %d", rel, out.Kind)
		}
	}
}

func TestHidden(t *testing.T) {
	out := renderFile(t, "hidden.md")
	if out.Kind != KindHidden {
		t.Fatalf("expected hidden output, got kind %d", out.Kind)
	}
	content := string(out.Content)
	if !strings.HasPrefix(content, "<!DOCTYPE html>") {
		t.Fatalf("expected hidden page to use its layout")
	}
	if !strings.Contains(content, "This file should render to hidden") {
		t.Fatalf("expected hidden page content to be rendered")
	}
}

func TestRawFile(t *testing.T) {
	out := renderFile(t, "raw.txt")
	if out.Kind != KindRaw || out.Path != "raw.txt" {
		t.Fatalf("expected raw passthrough for raw.txt, got %+v", out)
	}
}

func TestDotDotProducesNothing(t *testing.T) {
	// Existence is irrelevant: traversal segments are invisible everywhere.
	if out := renderFile(t, "../go.mod"); out.Kind != KindNone {
		t.Fatalf("expected no output for traversal path, got kind %d", out.Kind)
	}
	out, err := ResolvePreview("testdata/site", "dir/../../go.mod")
	if err != nil {
		t.Fatalf("preview resolve: %v", err)
	}
	if out.Kind != KindNone {
		t.Fatalf("expected no output for traversal path in preview, got kind %d", out.Kind)
	}
}

func TestDirectory(t *testing.T) {
	out := renderFile(t, "dir")
	if out.Kind != KindDir || out.Path != "dir" {
		t.Fatalf("expected dir output, got %+v", out)
	}
}

func TestMissingRawProducesNothing(t *testing.T) {
	if out := renderFile(t, "missing.txt"); out.Kind != KindNone {
		t.Fatalf("expected no output for missing raw file, got kind %d", out.Kind)
	}
}

func TestPreviewFallsBackToMarkdown(t *testing.T) {
	// No index.html exists on disk, so a full build resolves nothing...
	if out := renderFile(t, "index.html"); out.Kind != KindNone {
		t.Fatalf("expected no output for index.html in build mode, got kind %d", out.Kind)
	}
	// ...but preview re-resolves the request as index.md.
	out, err := ResolvePreview("testdata/site", "index.html")
	if err != nil {
		t.Fatalf("preview resolve: %v", err)
	}
	if out.Kind != KindRendered {
		t.Fatalf("expected preview fallback to render index.md, got kind %d", out.Kind)
	}
	if !strings.Contains(string(out.Content), "Pest Toast") {
		t.Fatalf("expected fallback to carry rendered markdown")
	}
}

func TestPreviewMissingHTMLIsNotFound(t *testing.T) {
	out, err := ResolvePreview("testdata/site", "nope.html")
	if err != nil {
		t.Fatalf("preview resolve: %v", err)
	}
	if out.Kind != KindNone {
		t.Fatalf("expected no output when neither .html nor .md exist, got kind %d", out.Kind)
	}
}

func TestBrokenFrontmatterIsParseError(t *testing.T) {
	_, err := Resolve("testdata/badsite", "broken.md")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.Path != "broken.md" {
		t.Fatalf("expected error to name broken.md, got %s", parseErr.Path)
	}
}

func TestMissingLayoutIsFileError(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, root, "page.md", "---\nlayout: _layouts/gone.html\n---\n\nbody\n")

	_, err := Resolve(root, "page.md")
	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected FileError, got %v", err)
	}
	if fileErr.Path != "_layouts/gone.html" {
		t.Fatalf("expected error to name the layout path, got %s", fileErr.Path)
	}
}
