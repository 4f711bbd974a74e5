// Package markdown converts site sources to HTML. It handles the optional
// YAML frontmatter block and renders the remaining body with Goldmark,
// including GitHub-flavored tables and fenced code blocks whose language tag
// survives into the emitted HTML as a language-* class.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// Frontmatter is the optional structured block at the top of a Markdown
// source. All fields are optional; a page with no published field is
// published.
type Frontmatter struct {
	Layout    string `yaml:"layout"`    // relative path to an HTML template
	Title     string `yaml:"title"`     // substituted for $title in the layout
	Published *bool  `yaml:"published"` // nil means true
}

// IsPublished reports whether the page should appear in build output.
func (f Frontmatter) IsPublished() bool {
	return f.Published == nil || *f.Published
}

// Sources are authored content; raw HTML passes through unescaped.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// ToHTML renders a Markdown body (frontmatter already removed) to HTML.
func ToHTML(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ErrMissingClosingDelimiter indicates a document that opened a frontmatter
// block with --- but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter opened with --- but never closed")

// Split separates a `---` delimited YAML frontmatter block from the body.
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content []byte) (frontmatter, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		// Empty frontmatter block.
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
	}
	// Closing fence at end of input with no trailing newline.
	if tail := []byte(nl + "---"); bytes.HasSuffix(rest, tail) {
		return rest[:len(rest)-3], []byte{}, true, nil
	}
	return nil, nil, false, ErrMissingClosingDelimiter
}

// Parse unmarshals raw frontmatter (delimiters already removed).
func Parse(frontmatter []byte) (Frontmatter, error) {
	var out Frontmatter
	if err := yaml.Unmarshal(frontmatter, &out); err != nil {
		return Frontmatter{}, err
	}
	return out, nil
}

// Component wraps already-rendered HTML as a templ component.
func Component(html string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}

func detectNewline(content []byte) string {
	for i, b := range content {
		if b == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			return "\r\n"
		}
		if b == '\n' {
			return "\n"
		}
	}
	return "\n"
}
