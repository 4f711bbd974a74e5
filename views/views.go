// Package views provides the preview server's own chrome pages as templ
// components. Site content never passes through here; these render only
// when there is nothing of the user's to show.
package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// NotFound renders the preview server's 404 page.
func NotFound(path string) templ.Component {
	return page("Not found", fmt.Sprintf(
		"<h1>Not found</h1><p>Nothing renders at <code>%s</code>.</p>"+
			"<p>Underscore-prefixed paths are never served.</p>",
		html.EscapeString(path)))
}

// ServerError renders the preview server's 500 page. The error text is
// included so a broken source is diagnosable straight from the browser.
func ServerError(detail string) templ.Component {
	return page("Render error", fmt.Sprintf(
		"<h1>Render error</h1><pre>%s</pre>", html.EscapeString(detail)))
}

func page(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			"<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>%s</body></html>\n",
			html.EscapeString(title), body)
		return err
	})
}
