package sitepress

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func newImageSite(t *testing.T) *Site {
	t.Helper()
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "images"), 0o755); err != nil {
		t.Fatalf("mkdir images: %v", err)
	}
	return mustOpen(t, root)
}

func TestSaveImageWritesUniqueName(t *testing.T) {
	site := newImageSite(t)

	rel, err := site.SaveImage(pngBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("save image: %v", err)
	}
	if !regexp.MustCompile(`^images/image_[0-9a-f]{8}\.png$`).MatchString(rel) {
		t.Fatalf("unexpected image name %q", rel)
	}
	if _, err := os.Stat(filepath.Join(site.Root, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("expected image on disk: %v", err)
	}

	entries, err := site.Tree()
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if !containsPath(entries, TreeFile, rel) {
		t.Fatalf("expected saved image in the tree listing")
	}
}

func TestSaveImageDownscalesWideImages(t *testing.T) {
	site := newImageSite(t)

	rel, err := site.SaveImage(pngBytes(t, 1200, 600))
	if err != nil {
		t.Fatalf("save image: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(site.Root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode saved image: %v", err)
	}
	if got := img.Bounds().Dx(); got != 800 {
		t.Fatalf("expected width scaled to 800, got %d", got)
	}
	if got := img.Bounds().Dy(); got != 400 {
		t.Fatalf("expected height scaled proportionally to 400, got %d", got)
	}
}

func TestSaveImageRequiresImagesDir(t *testing.T) {
	site := mustOpen(t, t.TempDir())

	_, err := site.SaveImage(pngBytes(t, 10, 10))
	var policyErr *PolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected PolicyError without an images directory, got %v", err)
	}
}

func TestSaveImageRejectsGarbage(t *testing.T) {
	site := newImageSite(t)

	_, err := site.SaveImage([]byte("not an image"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for undecodable data, got %v", err)
	}
}
