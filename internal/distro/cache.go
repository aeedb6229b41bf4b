package distro

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const cacheFile = "distribution.db"

const cacheSchema = `
CREATE TABLE IF NOT EXISTS distribution_cache (
	url        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	fetched_at INTEGER NOT NULL
);
`

// Cache stores the last fetched distribution body per URL so the launcher
// can start without network access.
type Cache struct {
	conn *sql.DB
}

// CacheEntry is one cached distribution body
type CacheEntry struct {
	URL       string
	Body      []byte
	FetchedAt time.Time
}

// Fresh reports whether the entry is younger than ttl
func (e *CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	if e == nil {
		return false
	}
	return now.Sub(e.FetchedAt) < ttl
}

// OpenCache opens (creating if needed) the cache database in baseDir
func OpenCache(baseDir string) (*Cache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	conn, err := sql.Open("sqlite", filepath.Join(baseDir, cacheFile))
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	// Enable WAL mode for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := conn.Exec(cacheSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Cache{conn: conn}, nil
}

// Close closes the database
func (c *Cache) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Get returns the cached entry for url, or nil when there is none
func (c *Cache) Get(url string) (*CacheEntry, error) {
	if c == nil {
		return nil, nil
	}
	var (
		body      []byte
		fetchedAt int64
	)
	err := c.conn.QueryRow(
		`SELECT body, fetched_at FROM distribution_cache WHERE url = ?`, url,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}
	return &CacheEntry{URL: url, Body: body, FetchedAt: time.Unix(fetchedAt, 0)}, nil
}

// Put stores body as the latest distribution for url
func (c *Cache) Put(url string, body []byte, fetchedAt time.Time) error {
	if c == nil {
		return nil
	}
	_, err := c.conn.Exec(
		`INSERT INTO distribution_cache (url, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, fetchedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}
