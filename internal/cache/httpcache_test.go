package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := &HTTPCache{Dir: dir}
	ctx := context.Background()

	url := "https://example.com/page"
	body := []byte("<html><body>hi</body></html>")
	if err := c.Save(ctx, url, "text/html", `"etag-1"`, "Mon, 02 Jan 2006 15:04:05 GMT", body); err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := c.LoadMeta(ctx, url)
	if err != nil {
		t.Fatalf("LoadMeta: %v", err)
	}
	if meta.ETag != `"etag-1"` || meta.URL != url || meta.ContentType != "text/html" {
		t.Fatalf("meta = %+v", meta)
	}

	got, err := c.LoadBody(ctx, url)
	if err != nil {
		t.Fatalf("LoadBody: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("body = %q, want %q", got, body)
	}
}

func TestLoadMeta_MissingEntry(t *testing.T) {
	c := &HTTPCache{Dir: t.TempDir()}
	if _, err := c.LoadMeta(context.Background(), "https://example.com/none"); err == nil {
		t.Fatalf("expected error for missing entry")
	}
}

func TestPurgeByAge_RemovesOnlyExpired(t *testing.T) {
	dir := t.TempDir()
	c := &HTTPCache{Dir: dir}
	ctx := context.Background()

	if err := c.Save(ctx, "https://example.com/old", "text/html", "", "", []byte("old")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := c.Save(ctx, "https://example.com/new", "text/html", "", "", []byte("new")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Backdate the first entry's SavedAt.
	oldKey := c.key("https://example.com/old")
	metaPath := filepath.Join(dir, oldKey+".meta.json")
	b, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		t.Fatalf("unmarshal meta: %v", err)
	}
	e.SavedAt = time.Now().UTC().Add(-48 * time.Hour)
	b, _ = json.Marshal(&e)
	if err := os.WriteFile(metaPath, b, 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	removed, err := PurgeByAge(dir, 24*time.Hour)
	if err != nil {
		t.Fatalf("PurgeByAge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := c.LoadBody(ctx, "https://example.com/old"); err == nil {
		t.Fatalf("expired body should be gone")
	}
	if got, err := c.LoadBody(ctx, "https://example.com/new"); err != nil || string(got) != "new" {
		t.Fatalf("fresh entry should survive: %v %q", err, got)
	}
}

func TestClearDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := &HTTPCache{Dir: dir}
	if err := c.Save(context.Background(), "https://example.com/", "text/html", "", "", []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := ClearDir(dir); err != nil {
		t.Fatalf("ClearDir: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("dir should be recreated: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("dir should be empty, has %d entries", len(entries))
	}
}
