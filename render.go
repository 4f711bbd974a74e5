package sitepress

import (
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/eringen/sitepress/markdown"
)

// Layout placeholders, replaced verbatim with no escaping.
const (
	titlePlaceholder   = "$title"
	contentPlaceholder = "$content"
)

// renderPage renders one Markdown source relative to root. The output path
// is the source path with its extension swapped to .html; a frontmatter
// published: false turns the result into KindHidden.
func renderPage(root, rel string) (RenderOutput, error) {
	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return RenderOutput{}, &FileError{Op: "read", Path: rel, Err: err}
	}

	raw, body, had, err := markdown.Split(src)
	if err != nil {
		return RenderOutput{}, &ParseError{Path: rel, Err: err}
	}
	html, err := markdown.ToHTML(body)
	if err != nil {
		return RenderOutput{}, &ParseError{Path: rel, Err: err}
	}

	out := htmlPath(rel)
	if !had {
		return RenderOutput{Kind: KindRendered, Path: out, Content: html}, nil
	}

	fm, err := markdown.Parse(raw)
	if err != nil {
		return RenderOutput{}, &ParseError{Path: rel, Err: err}
	}

	page := html
	if fm.Layout != "" {
		layout, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(fm.Layout)))
		if err != nil {
			return RenderOutput{}, &FileError{Op: "read", Path: fm.Layout, Err: err}
		}
		page = applyLayout(layout, fm.Title, html)
	}

	kind := KindRendered
	if !fm.IsPublished() {
		kind = KindHidden
	}
	return RenderOutput{Kind: kind, Path: out, Content: page}, nil
}

func applyLayout(layout []byte, title string, content []byte) []byte {
	page := bytes.ReplaceAll(layout, []byte(titlePlaceholder), []byte(title))
	return bytes.ReplaceAll(page, []byte(contentPlaceholder), content)
}

// htmlPath swaps the extension of a slash-separated relative path for .html.
func htmlPath(rel string) string {
	return strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
}
