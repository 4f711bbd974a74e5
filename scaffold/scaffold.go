// Package scaffold provides the embedded starter files written into a
// freshly created site root.
package scaffold

import "embed"

// Templates contains the starter site: a default layout, a stub deploy
// script, and the asset/image directories.
//
//go:embed all:templates
var Templates embed.FS
