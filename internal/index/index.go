// Package index maintains a project-wide view of template files: which tags
// and reference names each file declares. Parsed symbols are cached in a
// SQLite database keyed by path and mtime, so unchanged files are not
// re-parsed across runs.
package index

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/frederikprijck/ng-morph/internal/builder"
	"github.com/frederikprijck/ng-morph/internal/config"
	"github.com/frederikprijck/ng-morph/internal/logger"
	"github.com/frederikprijck/ng-morph/internal/template"
)

type FileSymbols struct {
	Path       string
	Tags       []string
	References []string
}

type ProjectIndex struct {
	files map[string]*FileSymbols
	cache *Cache
	mu    sync.RWMutex
}

// NewProjectIndex creates an index. cache may be nil to disable persistence.
func NewProjectIndex(cache *Cache) *ProjectIndex {
	return &ProjectIndex{files: make(map[string]*FileSymbols), cache: cache}
}

// ScanDirectory indexes every template file under rootPath, using the cache
// where mtimes match.
func (pi *ProjectIndex) ScanDirectory(rootPath string, cfg *config.Config) error {
	var files []string
	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && hasExtension(info.Name(), cfg.Extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	results := make(chan *FileSymbols, len(files))
	var wg sync.WaitGroup
	sem := make(chan struct{}, 8) // Limit concurrency

	for _, f := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			syms, err := pi.indexFile(path)
			if err != nil {
				logger.Printf("indexing %s failed: %v\n", path, err)
				return
			}
			results <- syms
		}(f)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for syms := range results {
		pi.mu.Lock()
		pi.files[syms.Path] = syms
		pi.mu.Unlock()
	}
	return nil
}

func (pi *ProjectIndex) indexFile(path string) (*FileSymbols, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	mtime := info.ModTime().UnixNano()

	if pi.cache != nil {
		if tags, refs, ok := pi.cache.Lookup(path, mtime); ok {
			return &FileSymbols{Path: path, Tags: tags, References: refs}, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := builder.ParseAndBuild(path, string(content))
	if err != nil {
		return nil, err
	}
	syms := ExtractSymbols(doc)

	if pi.cache != nil {
		if err := pi.cache.Store(path, mtime, syms.Tags, syms.References); err != nil {
			logger.Printf("caching %s failed: %v\n", path, err)
		}
	}
	return syms, nil
}

// ExtractSymbols collects the tag and reference names declared in doc.
func ExtractSymbols(doc *template.Document) *FileSymbols {
	syms := &FileSymbols{Path: doc.File()}
	seenTags := make(map[string]bool)
	collect := func(n template.Node) {
		el, ok := n.(template.ElementLike)
		if !ok {
			return
		}
		if tag := el.TagName(); !seenTags[tag] {
			seenTags[tag] = true
			syms.Tags = append(syms.Tags, tag)
		}
		for _, ref := range el.References() {
			syms.References = append(syms.References, ref.Name())
		}
	}
	for _, root := range doc.Roots() {
		collect(root)
		for _, d := range root.Descendants(nil) {
			collect(d)
		}
	}
	return syms
}

// File returns the indexed symbols for path.
func (pi *ProjectIndex) File(path string) (*FileSymbols, bool) {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	syms, ok := pi.files[path]
	return syms, ok
}

// Each calls fn for every indexed file.
func (pi *ProjectIndex) Each(fn func(*FileSymbols)) {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	for _, syms := range pi.files {
		fn(syms)
	}
}

// FilesWithTag returns every indexed file using tag.
func (pi *ProjectIndex) FilesWithTag(tag string) []string {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	var paths []string
	for path, syms := range pi.files {
		for _, t := range syms.Tags {
			if t == tag {
				paths = append(paths, path)
				break
			}
		}
	}
	return paths
}

func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
