package index

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/frederikprijck/ng-morph/internal/builder"
	"github.com/frederikprijck/ng-morph/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractSymbols(t *testing.T) {
	doc, err := builder.ParseAndBuild("test.html", `<div><app-card #card></app-card><div></div></div>`)
	if err != nil {
		t.Fatalf("ParseAndBuild error: %v", err)
	}
	syms := ExtractSymbols(doc)

	sort.Strings(syms.Tags)
	if len(syms.Tags) != 2 || syms.Tags[0] != "app-card" || syms.Tags[1] != "div" {
		t.Errorf("expected deduped tags [app-card div], got %v", syms.Tags)
	}
	if len(syms.References) != 1 || syms.References[0] != "card" {
		t.Errorf("expected reference card, got %v", syms.References)
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", `<div #top></div>`)
	writeFile(t, dir, "sub/b.html", `<app-card></app-card>`)
	writeFile(t, dir, "ignored.txt", `<div></div>`)

	pi := NewProjectIndex(nil)
	if err := pi.ScanDirectory(dir, config.Default()); err != nil {
		t.Fatalf("ScanDirectory error: %v", err)
	}

	syms, ok := pi.File(a)
	if !ok {
		t.Fatal("a.html should be indexed")
	}
	if len(syms.References) != 1 || syms.References[0] != "top" {
		t.Errorf("unexpected references %v", syms.References)
	}

	paths := pi.FilesWithTag("app-card")
	if len(paths) != 1 || filepath.Base(paths[0]) != "b.html" {
		t.Errorf("unexpected files for app-card: %v", paths)
	}
	if got := pi.FilesWithTag("table"); len(got) != 0 {
		t.Errorf("expected no files for table, got %v", got)
	}

	count := 0
	pi.Each(func(*FileSymbols) { count++ })
	if count != 2 {
		t.Errorf("expected 2 indexed files, got %d", count)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache error: %v", err)
	}
	defer cache.Close()

	if err := cache.Store("a.html", 100, []string{"div", "span"}, []string{"top"}); err != nil {
		t.Fatalf("Store error: %v", err)
	}

	tags, refs, ok := cache.Lookup("a.html", 100)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(tags) != 2 || tags[0] != "div" || len(refs) != 1 || refs[0] != "top" {
		t.Errorf("unexpected cached symbols %v %v", tags, refs)
	}

	// A changed mtime invalidates the entry.
	if _, _, ok := cache.Lookup("a.html", 200); ok {
		t.Error("expected cache miss for stale mtime")
	}
	if _, _, ok := cache.Lookup("missing.html", 100); ok {
		t.Error("expected cache miss for unknown path")
	}

	// Storing again overwrites in place.
	if err := cache.Store("a.html", 200, []string{"p"}, nil); err != nil {
		t.Fatalf("Store error: %v", err)
	}
	tags, refs, ok = cache.Lookup("a.html", 200)
	if !ok || len(tags) != 1 || tags[0] != "p" || refs != nil {
		t.Errorf("unexpected updated symbols %v %v", tags, refs)
	}
}

func TestScanDirectoryUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.html", `<div></div>`)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	cache, err := OpenCache(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatalf("OpenCache error: %v", err)
	}
	defer cache.Close()

	// Pre-seed the cache with symbols the file does not contain; a hit is
	// visible because parsing is skipped.
	if err := cache.Store(path, info.ModTime().UnixNano(), []string{"cached-tag"}, nil); err != nil {
		t.Fatal(err)
	}

	pi := NewProjectIndex(cache)
	if err := pi.ScanDirectory(dir, config.Default()); err != nil {
		t.Fatalf("ScanDirectory error: %v", err)
	}
	syms, ok := pi.File(path)
	if !ok {
		t.Fatal("a.html should be indexed")
	}
	if len(syms.Tags) != 1 || syms.Tags[0] != "cached-tag" {
		t.Errorf("expected cached symbols to win, got %v", syms.Tags)
	}
}
