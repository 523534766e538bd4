package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperifyio/gopagepdf/internal/cache"
)

func TestGet_ReturnsHTMLBody(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "gopagepdf-test/1.0"}
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(string(body), "ok") {
		t.Fatalf("body = %q", body)
	}
	if gotUA != "gopagepdf-test/1.0" {
		t.Fatalf("user agent = %q", gotUA)
	}
}

func TestGet_NonSuccessStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestGet_RejectsNonHTMLContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	c := &Client{}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error for non-HTML content type")
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	if _, err := c.Get(context.Background(), "ftp://example.com/file"); err == nil {
		t.Fatalf("expected error for ftp scheme")
	}
}

func TestGet_ConditionalRevalidationServesCachedBody(t *testing.T) {
	const page = "<html><body>cached</body></html>"
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	c := &Client{Cache: &cache.HTTPCache{Dir: t.TempDir()}}
	ctx := context.Background()

	first, err := c.Get(ctx, srv.URL)
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	second, err := c.Get(ctx, srv.URL)
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if string(first) != page || string(second) != page {
		t.Fatalf("bodies differ from page: %q / %q", first, second)
	}
	if requests != 2 {
		t.Fatalf("requests = %d, want 2 (fetch then revalidate)", requests)
	}
}
