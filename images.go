package sitepress

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path"
	"path/filepath"

	"golang.org/x/image/draw"
)

// SaveImage decodes image data (PNG, JPEG, or GIF), downscales it if it is
// wider than the configured maximum, and writes it as PNG into the site's
// images directory under a fresh unique name. It returns the new file's
// path relative to the root and invalidates the tree cache.
//
// Where the bytes come from (clipboard, drag-and-drop) is the
// collaborator's business; this only handles the intake.
func (s *Site) SaveImage(data []byte) (string, error) {
	dir := filepath.Join(s.Root, filepath.FromSlash(s.cfg.ImagesDir))
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return "", &PolicyError{Reason: fmt.Sprintf("this site has no %s directory", s.cfg.ImagesDir)}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", &ParseError{Path: s.cfg.ImagesDir, Err: fmt.Errorf("decode image: %w", err)}
	}

	bounds := img.Bounds()
	if w := bounds.Dx(); w > s.cfg.MaxImageWidth {
		newH := bounds.Dy() * s.cfg.MaxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, s.cfg.MaxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	name, err := uniqueImageName(dir)
	if err != nil {
		return "", err
	}
	rel := path.Join(s.cfg.ImagesDir, name)
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		return "", &FileError{Op: "write", Path: rel, Err: err}
	}
	s.InvalidateTree()
	return rel, nil
}

// uniqueImageName picks an image_XXXXXXXX.png name not already present in
// dir.
func uniqueImageName(dir string) (string, error) {
	for {
		suffix := make([]byte, 4)
		if _, err := rand.Read(suffix); err != nil {
			return "", err
		}
		name := "image_" + hex.EncodeToString(suffix) + ".png"
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			return name, nil
		}
	}
}
