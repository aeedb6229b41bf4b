// Package distro loads the server catalog (the "distribution") from a remote
// URL or local file, caching the last good copy in sqlite.
package distro

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/marcus/lobby/internal/models"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodySize    = 8 << 20
)

// FetchError is returned when the catalog endpoint answers with a non-200 status
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch distribution %s: unexpected status %d", e.URL, e.Status)
}

// Source resolves the distribution. It is safe for concurrent use.
type Source struct {
	url    string
	client *http.Client
	cache  *Cache
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu   sync.Mutex
	dist *models.Distribution
}

// Option configures a Source
type Option func(*Source)

// WithHTTPClient sets the HTTP client used for remote catalogs
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.client = c
		}
	}
}

// WithCache enables the sqlite fallback cache
func WithCache(c *Cache) Option {
	return func(s *Source) {
		s.cache = c
	}
}

// WithTTL sets how long a cached body is used without refetching
func WithTTL(ttl time.Duration) Option {
	return func(s *Source) {
		s.ttl = ttl
	}
}

// New creates a Source for the given URL or file path
func New(location string, opts ...Option) *Source {
	s := &Source{
		url:    location,
		client: &http.Client{Timeout: defaultTimeout},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the catalog location
func (s *Source) URL() string {
	return s.url
}

// Distribution returns the catalog, loading it on first use
func (s *Source) Distribution(ctx context.Context) (*models.Distribution, error) {
	s.mu.Lock()
	d := s.dist
	s.mu.Unlock()
	if d != nil {
		return d, nil
	}
	return s.load(ctx, false)
}

// Refresh bypasses the memoized and cached copies and fetches again
func (s *Source) Refresh(ctx context.Context) (*models.Distribution, error) {
	return s.load(ctx, true)
}

func (s *Source) load(ctx context.Context, force bool) (*models.Distribution, error) {
	key := "cached"
	if force {
		key = "refresh"
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		d, err := s.resolve(ctx, force)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.dist = d
		s.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Distribution), nil
}

func (s *Source) resolve(ctx context.Context, force bool) (*models.Distribution, error) {
	entry, err := s.cache.Get(s.url)
	if err != nil {
		slog.Warn("distribution cache read failed", "err", err)
		entry = nil
	}

	if !force && s.ttl > 0 && entry.Fresh(s.now(), s.ttl) {
		if d, err := Parse(entry.Body); err == nil {
			slog.Debug("distribution from cache", "url", s.url, "fetched_at", entry.FetchedAt)
			return d, nil
		}
	}

	body, fetchErr := s.fetch(ctx)
	if fetchErr == nil {
		d, err := Parse(body)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Put(s.url, body, s.now()); err != nil {
			slog.Warn("distribution cache write failed", "err", err)
		}
		return d, nil
	}

	if entry != nil {
		if d, err := Parse(entry.Body); err == nil {
			slog.Warn("using stale distribution", "url", s.url, "err", fetchErr, "fetched_at", entry.FetchedAt)
			return d, nil
		}
	}
	return nil, fetchErr
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	if s.url == "" {
		return nil, fmt.Errorf("no distribution URL configured")
	}

	if path, ok := localPath(s.url); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read distribution: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch distribution: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: s.url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read distribution: %w", err)
	}
	return data, nil
}

// localPath reports whether location names a file rather than an http(s) URL
func localPath(location string) (string, bool) {
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return strings.TrimPrefix(location, "file://"), true
		}
		return u.Path, true
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return "", false
	}
	return location, true
}

// Parse decodes a distribution document
func Parse(data []byte) (*models.Distribution, error) {
	var d models.Distribution
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse distribution: %w", err)
	}
	return &d, nil
}
