package sitepress

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func previewRequest(t *testing.T, site *Site, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	NewPreviewServer(site).Handler().ServeHTTP(rec, req)
	return rec
}

func TestPreviewRendersMarkdownForHTMLRequest(t *testing.T) {
	site := mustOpen(t, "testdata/site")
	rec := previewRequest(t, site, "/index.html")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Pest Toast") {
		t.Fatalf("expected rendered markdown in the response")
	}
}

func TestPreviewServesDefaultDocument(t *testing.T) {
	site := mustOpen(t, "testdata/site")
	rec := previewRequest(t, site, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Pest Toast") {
		t.Fatalf("expected / to serve the default document")
	}
}

func TestPreviewServesHiddenPages(t *testing.T) {
	site := mustOpen(t, "testdata/site")
	rec := previewRequest(t, site, "/hidden.html")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected hidden pages served in preview, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "This file should render to hidden") {
		t.Fatalf("expected hidden page content")
	}
}

func TestPreviewRawPassthrough(t *testing.T) {
	site := mustOpen(t, "testdata/site")
	rec := previewRequest(t, site, "/raw.txt")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for raw file, got %d", rec.Code)
	}
	if rec.Body.String() != "just some raw bytes\n" {
		t.Fatalf("expected byte-for-byte passthrough, got %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected original content type, got %q", ct)
	}
}

func TestPreviewNotFound(t *testing.T) {
	site := mustOpen(t, "testdata/site")
	for _, path := range []string{"/_layouts/default.html", "/dir", "/nope.html"} {
		rec := previewRequest(t, site, path)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", path, rec.Code)
		}
	}
}

func TestPreviewRenderErrorIsIsolated(t *testing.T) {
	site := mustOpen(t, "testdata/badsite")

	rec := previewRequest(t, site, "/broken.md")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a broken source, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "broken.md") {
		t.Fatalf("expected the error text to name the source")
	}

	// The failure affects that request only.
	rec = previewRequest(t, site, "/nope.html")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected later requests unaffected, got %d", rec.Code)
	}
}
