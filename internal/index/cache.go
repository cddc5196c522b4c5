package index

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Cache persists per-file symbols keyed by path and mtime.
type Cache struct {
	db *sql.DB
}

func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS files (
		path  TEXT PRIMARY KEY,
		mtime INTEGER NOT NULL,
		tags  TEXT NOT NULL,
		refs  TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached symbols for path when the stored mtime matches.
func (c *Cache) Lookup(path string, mtime int64) (tags, refs []string, ok bool) {
	var storedMtime int64
	var tagsCSV, refsCSV string
	row := c.db.QueryRow(`SELECT mtime, tags, refs FROM files WHERE path = ?`, path)
	if err := row.Scan(&storedMtime, &tagsCSV, &refsCSV); err != nil {
		return nil, nil, false
	}
	if storedMtime != mtime {
		return nil, nil, false
	}
	return splitCSV(tagsCSV), splitCSV(refsCSV), true
}

func (c *Cache) Store(path string, mtime int64, tags, refs []string) error {
	_, err := c.db.Exec(
		`INSERT INTO files (path, mtime, tags, refs) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET mtime = excluded.mtime, tags = excluded.tags, refs = excluded.refs`,
		path, mtime, strings.Join(tags, ","), strings.Join(refs, ","))
	return err
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
