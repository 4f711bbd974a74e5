package sitepress

import "os"

// SiteConfig holds settings for the preview server and the supporting
// stores. The zero value is usable; setDefaults fills in the rest.
type SiteConfig struct {
	Addr            string // preview listen address (default ":3000")
	DefaultDocument string // source served for "/" (default "index.md")
	HistoryPath     string // SQLite build/deploy log; empty disables it
	ImagesDir       string // image intake directory under the root (default "images")
	MaxImageWidth   int    // saved images wider than this are downscaled (default 800)
}

func (c *SiteConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DefaultDocument == "" {
		c.DefaultDocument = "index.md"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "images"
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = 800
	}
}

// Option configures additional Site behavior.
type Option func(*Site)

// WithConfig replaces the site's configuration wholesale. Defaults are
// applied afterwards, so zero fields still get their usual values.
func WithConfig(cfg SiteConfig) Option {
	return func(s *Site) {
		s.cfg = cfg
	}
}

// WithHistory enables the SQLite build/deploy log at path.
func WithHistory(path string) Option {
	return func(s *Site) {
		s.cfg.HistoryPath = path
	}
}

// EnvOr returns the value of the environment variable key, or fallback if
// it is empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
