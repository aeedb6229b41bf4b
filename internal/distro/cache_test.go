package distro

import (
	"testing"
	"time"
)

func TestCacheGetMissing(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	entry, err := cache.Get("https://example.com/missing.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Errorf("expected nil entry, got %+v", entry)
	}
}

func TestCachePutOverwrites(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	url := "https://example.com/distribution.json"
	first := time.Unix(1700000000, 0)
	second := first.Add(time.Hour)

	if err := cache.Put(url, []byte("one"), first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put(url, []byte("two"), second); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry, err := cache.Get(url)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(entry.Body) != "two" {
		t.Errorf("Body: got %q, want %q", entry.Body, "two")
	}
	if !entry.FetchedAt.Equal(second) {
		t.Errorf("FetchedAt: got %v, want %v", entry.FetchedAt, second)
	}
}

func TestCacheEntryFresh(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name  string
		entry *CacheEntry
		want  bool
	}{
		{"nil entry", nil, false},
		{"recent", &CacheEntry{FetchedAt: now.Add(-time.Minute)}, true},
		{"expired", &CacheEntry{FetchedAt: now.Add(-7 * time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Fresh(now, 6*time.Hour); got != tt.want {
				t.Errorf("Fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var cache *Cache
	if err := cache.Put("u", []byte("x"), time.Now()); err != nil {
		t.Errorf("Put on nil cache: %v", err)
	}
	entry, err := cache.Get("u")
	if entry != nil || err != nil {
		t.Errorf("Get on nil cache: %+v, %v", entry, err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("Close on nil cache: %v", err)
	}
}
