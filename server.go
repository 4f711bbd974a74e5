package sitepress

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/sitepress/markdown"
	"github.com/eringen/sitepress/views"
)

// PreviewServer serves a live preview of the site during editing. Every
// request re-reads the filesystem through ResolvePreview, so edits show up
// on the next refresh with no rebuild step. Requests share nothing but the
// immutable root path, which makes unlimited read concurrency safe.
type PreviewServer struct {
	site *Site
	echo *echo.Echo
}

// NewPreviewServer builds the preview server for a site. Call Start to
// listen and Shutdown to stop it.
func NewPreviewServer(site *Site) *PreviewServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))

	p := &PreviewServer{site: site, echo: e}
	e.GET("/*", p.handle)
	return p
}

// handle resolves one request path to at most one render output. Errors are
// isolated per request: a broken source yields a 500 for that request only.
func (p *PreviewServer) handle(c echo.Context) error {
	rel := strings.TrimPrefix(c.Request().URL.Path, "/")
	if rel == "" {
		rel = p.site.cfg.DefaultDocument
	}

	out, err := ResolvePreview(p.site.Root, rel)
	if err != nil {
		return renderStatus(c, http.StatusInternalServerError, views.ServerError(err.Error()))
	}

	switch out.Kind {
	case KindRendered, KindHidden:
		return renderStatus(c, http.StatusOK, markdown.Component(string(out.Content)))
	case KindRaw:
		return c.File(filepath.Join(p.site.Root, filepath.FromSlash(out.Path)))
	default:
		// KindNone and KindDir: nothing to serve.
		return renderStatus(c, http.StatusNotFound, views.NotFound(rel))
	}
}

// Handler exposes the underlying HTTP handler, mainly for tests.
func (p *PreviewServer) Handler() http.Handler { return p.echo }

// Start listens on addr until Shutdown is called.
func (p *PreviewServer) Start(addr string) error {
	if err := p.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server. A running deploy job is unaffected; its
// scratch-directory cleanup is the deploy pipeline's own responsibility.
func (p *PreviewServer) Shutdown(ctx context.Context) error {
	return p.echo.Shutdown(ctx)
}

// renderStatus writes a templ component with the given HTTP status.
func renderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
